package commands

import (
	"fmt"
	"os"

	"github.com/kgzivf/blogbackend/internal/config"
	"github.com/kgzivf/blogbackend/internal/telemetry/metrics"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// global flags
	env        string
	configPath string
	envFile    string
	verbose    bool
	jsonOutput bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Operator tool for the blog backend",
	Long: `blogctl checks and maintains the blog backend using the same TOML
config and environment variables as the service.

Examples:
  blogctl ping                      # test the database connection
  blogctl schema apply              # create tables, indexes and seed authors
  blogctl diagnose                  # probe every REST route of the deployment
  blogctl posts list --all          # list drafts and published posts
  blogctl posts search 试管 --lang zh`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}

		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}

		var err error
		cfg, err = config.Load(env, configPath)
		return err
	},
}

// Execute runs the root command and exits with 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "config section [dev | development | prod | production]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file with secrets")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
}

// cliMetrics feeds the executors a private registry that is never served.
func cliMetrics() *metrics.Manager {
	return metrics.NewManager("blogctl", "cli", prometheus.NewRegistry())
}
