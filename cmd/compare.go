package cmd

import (
	"context"
	"fmt"
	"os"

	"table-compare/core/config"
	"table-compare/core/logger"
	"table-compare/core/tablediff"
	"table-compare/core/utils"
	"table-compare/feature/compare"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	oldRef       string
	newRef       string
	joinField    string
	fieldList    string
	allFields    bool
	showList     string
	acceptKeys   []string
	rejectKeys   []string
	acceptAll    bool
	rejectAll    bool
	exportPath   string
	uploadObject string
	summaryOnly  bool
)

// compareCmd compares two datasets and prints the report.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two versions of a dataset",
	Long: `Compare two datasets by a join field and print the classified records.

Datasets are given as locators:
  data/old.csv, file:data/old.csv   local CSV file
  s3:parcels/2024.csv               CSV object in the storage bucket
  db:parcels_2024                   database table

Examples:
  # Compare two CSV files on the id field
  compare --old old.csv --new new.csv --join id

  # Only area and owner decide whether a record is Modified
  compare --old old.csv --new new.csv --fields area,owner

  # Accept every change except parcel 12 and export the result
  compare --old db:parcels_v1 --new db:parcels_v2 --accept-all --reject 12 --export reviewed.csv

  # Upload the Added and Modified records to the storage bucket
  compare --old s3:v1.csv --new s3:v2.csv --show added,modified --upload review.csv`,
	RunE: runCompare,
}

func init() {
	flags := compareCmd.Flags()
	flags.StringVar(&oldRef, "old", "", "Old dataset locator")
	flags.StringVar(&newRef, "new", "", "New dataset locator")
	flags.StringVar(&joinField, "join", "", "Join field (default: first field of the old dataset)")
	flags.StringVar(&fieldList, "fields", "", "Comma separated significant fields (default: all but ignored fields)")
	flags.BoolVar(&allFields, "all-fields", false, "Mark every field significant")
	flags.StringVar(&showList, "show", "", "Comma separated statuses to show and export (default: all)")
	flags.StringSliceVar(&acceptKeys, "accept", nil, "Accept the records with these keys")
	flags.StringSliceVar(&rejectKeys, "reject", nil, "Reject the records with these keys")
	flags.BoolVar(&acceptAll, "accept-all", false, "Accept every Added and Modified record")
	flags.BoolVar(&rejectAll, "reject-all", false, "Reject every Added and Modified record")
	flags.StringVar(&exportPath, "export", "", "Write the decision-resolved CSV export to this path")
	flags.StringVar(&uploadObject, "upload", "", "Upload the export to the storage bucket under this object name")
	flags.BoolVar(&summaryOnly, "summary", false, "Print only the summary")
	_ = compareCmd.MarkFlagRequired("old")
	_ = compareCmd.MarkFlagRequired("new")
	compareCmd.MarkFlagsMutuallyExclusive("fields", "all-fields")
	compareCmd.MarkFlagsMutuallyExclusive("accept-all", "reject-all")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
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

	filter, err := tablediff.ParseFilter(showList)
	if err != nil {
		return fmt.Errorf("invalid --show: %w", err)
	}

	oldLoc, newLoc, err := parseLocators(oldRef, newRef)
	if err != nil {
		return err
	}

	opener, client, err := openBackends(cfg, l, oldLoc, newLoc)
	if err != nil {
		return err
	}

	svc := compare.NewService(opener, client, cfg.Storage.Bucket, cfg.Compare, l)
	sess, err := svc.Create(ctx, &compare.CompareRequest{
		Old:       oldLoc,
		New:       newLoc,
		JoinField: joinField,
		Fields:    utils.SplitList(fieldList),
		AllFields: allFields,
	})
	if err != nil {
		return err
	}

	if err := applyDecisions(svc, sess.ID); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var renderErr error
	sess.View(func(report *tablediff.Report, decisions *tablediff.DecisionStore) {
		if !summaryOnly {
			renderErr = compare.Render(out, report, decisions, filter)
		}
		compare.RenderSummary(out, report, decisions)
	})
	if renderErr != nil {
		return fmt.Errorf("failed to render report: %w", renderErr)
	}

	if exportPath != "" {
		if err := sess.Export(exportPath, filter); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported to %s\n", exportPath)
	}

	if uploadObject != "" {
		res, err := svc.Upload(ctx, sess.ID, &compare.ExportRequest{Object: uploadObject, Show: showList})
		if err != nil {
			return err
		}
		l.Info("Export uploaded", zap.String("bucket", res.Bucket), zap.String("object", res.Object))
		fmt.Fprintf(out, "Uploaded to s3://%s/%s\n", res.Bucket, res.Object)
	}

	return nil
}

// applyDecisions applies the bulk decision first so --accept and --reject can
// override it. --reject wins over --accept for the same key.
func applyDecisions(svc *compare.Service, id string) error {
	bulk := ""
	switch {
	case acceptAll:
		bulk = "accept"
	case rejectAll:
		bulk = "reject"
	}
	if bulk != "" {
		if _, err := svc.DecideAll(id, &compare.DecisionAllRequest{Decision: bulk}); err != nil {
			return err
		}
	}

	for _, d := range []struct {
		dec  string
		keys []string
	}{{"accept", acceptKeys}, {"reject", rejectKeys}} {
		dec, keys := d.dec, d.keys
		if len(keys) == 0 {
			continue
		}
		res, err := svc.Decide(id, &compare.DecisionRequest{Keys: keys, Decision: dec})
		if err != nil {
			return err
		}
		if res.Applied < len(keys) {
			fmt.Fprintf(os.Stderr, "%d of %d keys to %s matched no Added or Modified record\n", len(keys)-res.Applied, len(keys), dec)
		}
	}
	return nil
}
