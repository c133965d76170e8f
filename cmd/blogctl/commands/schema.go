package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/kgzivf/blogbackend/cmd/blogctl/output"
	"github.com/kgzivf/blogbackend/internal/db"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the blog schema",
}

var schemaApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create the blog tables, indexes and seed authors",
	Long: `Applies the embedded schema statement by statement. Statements whose
object already exists are reported as skipped; any other failure stops the
run with exit status 1.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchemaApply(cmd.Context())
	},
}

var schemaPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the embedded schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(db.Schema())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaApplyCmd)
	schemaCmd.AddCommand(schemaPrintCmd)
}

func firstLine(stmt string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(stmt), "\n")
	return line
}

func runSchemaApply(ctx context.Context) error {
	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	output.Section("Applying schema")
	results, err := db.ApplyStatements(ctx, pool, db.Statements())

	var applied, skipped int
	for _, res := range results {
		switch {
		case res.Err == nil:
			applied++
			fmt.Printf("%s %s\n", output.StatusIcon("applied"), firstLine(res.Statement))
		case res.Skipped:
			skipped++
			fmt.Printf("%s %s\n", output.StatusIcon("skipped"), firstLine(res.Statement))
			output.Muted("    %s", res.Err)
		default:
			fmt.Printf("%s %s\n", output.StatusIcon("failed"), firstLine(res.Statement))
		}
	}
	fmt.Println()

	if err != nil {
		output.Error("schema apply failed: %s", err)
		return err
	}
	output.Success("%d applied, %d skipped", applied, skipped)
	return nil
}
