package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/kgzivf/blogbackend/cmd/blogctl/output"
	"github.com/kgzivf/blogbackend/internal"
	"github.com/kgzivf/blogbackend/internal/blog"
	"github.com/kgzivf/blogbackend/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var (
	// posts flags
	postsLimit int
	postsAll   bool
	searchLang string
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Read posts through the configured blog backend",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBlogService(cmd.Context(), func(ctx context.Context, service *blog.Service) error {
			var (
				posts []blog.Post
				err   error
			)
			if postsAll {
				posts, err = service.GetAdminPosts(ctx, postsLimit)
			} else {
				posts, err = service.GetAllPosts(ctx, postsLimit)
			}
			if err != nil {
				return err
			}
			return printPosts(posts, blog.LangZH)
		})
	},
}

var postsSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search published posts by title and content",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := strings.Join(args, " ")
		lang := blog.ParseLanguage(searchLang)
		return withBlogService(cmd.Context(), func(ctx context.Context, service *blog.Service) error {
			posts, err := service.SearchPosts(ctx, term, lang, postsLimit)
			if err != nil {
				return err
			}
			return printPosts(posts, lang)
		})
	},
}

func init() {
	rootCmd.AddCommand(postsCmd)
	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsSearchCmd)

	postsCmd.PersistentFlags().IntVar(&postsLimit, "limit", blog.DefaultListLimit, "maximum number of posts")
	postsListCmd.Flags().BoolVar(&postsAll, "all", false, "include unpublished posts")
	postsSearchCmd.Flags().StringVar(&searchLang, "lang", "zh", "search language [zh | en]")
}

func withBlogService(ctx context.Context, fn func(ctx context.Context, service *blog.Service) error) error {
	var pool *pgxpool.Pool
	if cfg.Backend == config.BackendSQL {
		var err error
		if pool, err = openPool(ctx); err != nil {
			return err
		}
		defer pool.Close()
	}

	backend, err := internal.NewBlogBackend(cfg, internal.BlogBackendDeps{
		Pool:    pool,
		Metrics: cliMetrics(),
	})
	if err != nil {
		return err
	}

	if err := fn(ctx, backend.Service); err != nil {
		output.Error("%s backend: %s", cfg.Backend, err)
		return err
	}
	return nil
}

func printPosts(posts []blog.Post, lang blog.Language) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(posts)
	}

	if len(posts) == 0 {
		output.Warning("no posts")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tSLUG\tCATEGORY\tTITLE\tCREATED")
	for _, p := range posts {
		status := "ok"
		if !p.Published {
			status = "draft"
		}
		created := ""
		if p.CreatedAt != nil {
			created = p.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", output.StatusIcon(status), p.Slug, p.Category, p.Title(lang), created)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	output.Muted("%d posts from the %s backend", len(posts), cfg.Backend)
	return nil
}
