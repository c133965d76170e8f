package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kgzivf/blogbackend/cmd/blogctl/output"
	"github.com/kgzivf/blogbackend/internal/transport"

	"github.com/spf13/cobra"
)

const diagnosePath = "blog_posts?select=id&limit=1"

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Probe every REST route of the configured deployment",
	Long: `Calls each REST route on its own, without falling through to the next,
and prints how it answered. Use it to find which network path works from
the current host.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiagnose(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
}

type probeReport struct {
	Route     string `json:"route"`
	URL       string `json:"url"`
	Status    int    `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func runDiagnose(ctx context.Context) error {
	exec, err := transport.NewRESTExecutor(transport.NewRESTExecutorParams{
		Routes:  transport.RoutesFor(cfg.Deployment, cfg.REST),
		AnonKey: cfg.REST.AnonKey,
		Timeout: cfg.REST.Timeout.Duration,
		Metrics: cliMetrics(),
	})
	if err != nil {
		output.Error("no REST routes for deployment [%s]: %s", cfg.Deployment, err)
		return err
	}

	results := exec.Probe(ctx, diagnosePath)
	reports := make([]probeReport, 0, len(results))
	healthy := 0
	for _, res := range results {
		r := probeReport{
			Route:     res.Route.Name,
			URL:       res.Route.URL(diagnosePath),
			Status:    res.Status,
			LatencyMS: res.Latency.Milliseconds(),
		}
		if res.Err != nil {
			r.Error = res.Err.Error()
		} else {
			healthy++
		}
		reports = append(reports, r)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		output.Section(fmt.Sprintf("Routes for deployment [%s]", cfg.Deployment))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\tROUTE\tSTATUS\tLATENCY\tURL")
		for _, r := range reports {
			status := "ok"
			if r.Error != "" {
				status = "failed"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				output.StatusIcon(status), r.Route, r.Status, time.Duration(r.LatencyMS)*time.Millisecond, r.URL)
		}
		_ = w.Flush()
		for _, r := range reports {
			if r.Error != "" {
				output.Muted("%s: %s", r.Route, r.Error)
			}
		}
		fmt.Println()
	}

	if healthy == 0 {
		output.Error("no route answered")
		return errors.New("all routes failed")
	}
	output.Success("%d of %d routes answered", healthy, len(reports))
	return nil
}
