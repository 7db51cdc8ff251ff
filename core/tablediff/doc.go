// Package tablediff compares two versions of a tabular dataset that share a join key.
//
// Each join key is classified as Added, Deleted, Modified or Unchanged. Modified
// records carry field-level change pairs (old, new) for the significant fields that
// differ. Reviewers accept or reject Added and Modified records, and the export
// resolves every change pair to the side chosen by the decision.
//
// # Architecture
//
// The package consists of five parts:
//
//  1. Value and Equal: a variant scalar (null, number, string, date, datetime) with a
//     type-tolerant comparison. Numeric-looking values compare within 1e-10, everything
//     else compares as trimmed, case-sensitive strings.
//
//  2. Index: reads a Dataset into a Snapshot keyed by the join field. Duplicate keys are
//     last-write-wins and counted in Snapshot.Duplicates.
//
//  3. Compare: builds the union of keys of two snapshots, classifies each key and
//     returns a Report sorted by ascending key.
//
// 4. DecisionStore: per-key Pending/Accepted/Rejected state and value resolution.
//
// 5. Export: CSV output honouring a FilterState and the decisions.
//
// Session ties these together as the state of one comparison and exposes the host
// actions (compare, decide, export, change significant fields).
//
// # Usage Example
//
//	session := tablediff.NewSession(cfg.Compare, logger)
//	report, err := session.Compare(ctx, oldDataset, newDataset, "key", nil)
//	if err != nil {
//	    return err
//	}
//
//	// Accept every modification, reject one addition
//	session.SetDecisionAll([]tablediff.Status{tablediff.StatusModified}, tablediff.DecisionAccepted)
//	session.SetDecisionByText(tablediff.DecisionRejected, "42")
//
//	// Export everything except unchanged rows
//	filter := tablediff.FilterOf(tablediff.StatusAdded, tablediff.StatusDeleted, tablediff.StatusModified)
//	err = session.Export("comparison_results.csv", filter)
package tablediff
