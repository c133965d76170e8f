package commands

import (
	"fmt"

	"github.com/kgzivf/blogbackend/pkg"

	"github.com/spf13/cobra"
)

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key <admin key>",
	Short: "Print the bcrypt hash to put in BLOG_ADMIN_KEY_HASH",
	Args:  cobra.ExactArgs(1),
	// needs no config
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := pkg.HashAPIKey(args[0])
		if err != nil {
			return fmt.Errorf("hash key: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashKeyCmd)
}
