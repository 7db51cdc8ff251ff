package cmd

import (
	"context"
	"fmt"
	"slices"

	"table-compare/core/config"
	"table-compare/core/logger"
	"table-compare/core/tablediff"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// fieldsCmd lists the fields of two datasets.
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the fields of two datasets",
	Long: `List the fields of the old dataset with their type, whether they can be used
as join field (present in both datasets) and whether they are significant by default.`,
	RunE: runFields,
}

func init() {
	fieldsCmd.Flags().StringVar(&oldRef, "old", "", "Old dataset locator")
	fieldsCmd.Flags().StringVar(&newRef, "new", "", "New dataset locator")
	_ = fieldsCmd.MarkFlagRequired("old")
	_ = fieldsCmd.MarkFlagRequired("new")

	RootCmd.AddCommand(fieldsCmd)
}

func runFields(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	oldLoc, newLoc, err := parseLocators(oldRef, newRef)
	if err != nil {
		return err
	}
	opener, _, err := openBackends(cfg, l, oldLoc, newLoc)
	if err != nil {
		return err
	}
	oldDS, newDS, err := opener.OpenPair(ctx, oldLoc, newLoc)
	if err != nil {
		return err
	}

	names := tablediff.FieldNames(oldDS.Fields())
	candidates := tablediff.JoinCandidates(oldDS.Fields(), newDS.Fields())
	significant := tablediff.DefaultSelection(names, cfg.Compare.Ignored())

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Field", "Type", "Join Candidate", "Significant")
	for _, f := range oldDS.Fields() {
		row := []string{f.Name, f.Type, yesNo(slices.Contains(candidates, f.Name)), yesNo(significant.Has(f.Name))}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(names) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Default join field: %s\n", names[0])
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
