package cmd

import (
	"context"
	"fmt"

	"table-compare/core/config"
	"table-compare/core/logger"
	"table-compare/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var datasetsPrefix string

// datasetsCmd lists the CSV objects that can be used as s3: locators.
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List CSV datasets in the storage bucket",
	RunE:  runDatasets,
}

func init() {
	datasetsCmd.Flags().StringVar(&datasetsPrefix, "prefix", "", "Only list objects under this prefix")
	RootCmd.AddCommand(datasetsCmd)
}

func runDatasets(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	keys, err := storage.ListKeys(context.Background(), client, cfg.Storage.Bucket, datasetsPrefix, ".csv")
	if err != nil {
		return err
	}
	l.Debug("Listed datasets", zap.String("bucket", cfg.Storage.Bucket), zap.Int("count", len(keys)))

	for _, key := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "s3:%s\n", key)
	}
	return nil
}
