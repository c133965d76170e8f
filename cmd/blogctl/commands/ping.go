package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kgzivf/blogbackend/cmd/blogctl/output"
	"github.com/kgzivf/blogbackend/internal/db"
	"github.com/kgzivf/blogbackend/internal/transport"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test the database connection",
	Long: `Connects with the database url resolved for the configured deployment
and reports the server version, time and connection type.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPing(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	dbURL := cfg.DatabaseURL()
	if dbURL == "" {
		return nil, errors.New("no database url configured, set DATABASE_URL")
	}
	return db.NewDBPool(ctx, db.NewDBPoolParams{
		URL:             dbURL,
		MinConns:        1,
		MaxConns:        cfg.Database.PoolMax,
		MaxConnIdleTime: cfg.Database.PoolIdleTimeout.Duration,
	})
}

func runPing(ctx context.Context) error {
	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	exec := transport.NewSQLExecutor(transport.NewSQLExecutorParams{
		DB:             pool,
		ConnectionType: cfg.ConnectionType(),
		Metrics:        cliMetrics(),
	})
	info, err := exec.TestConnection(ctx)
	if err != nil {
		output.Error("connection failed: %s", err)
		return fmt.Errorf("ping: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	output.Success("connected (%s)", info.ConnectionType)
	output.Info("version: %s", info.Version)
	output.Muted("server time: %s", info.ServerTime.Format("2006-01-02 15:04:05 MST"))
	return nil
}
