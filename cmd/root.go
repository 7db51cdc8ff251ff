package cmd

import (
	"fmt"
	"os"

	"table-compare/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "table-compare",
	Short: "Table Comparison Service",
	Long: `table-compare compares two versions of a tabular dataset by a shared join key.
Datasets can be CSV files, CSV objects in S3/MinIO storage or database tables.
Records are classified as Added, Deleted, Modified or Unchanged, reviewed with
accept/reject decisions and exported as CSV.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config gives readable timestamps for CLI users.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
