package tablediff

import (
	"fmt"
	"strings"
)

// Decision is the review state of an actionable record.
type Decision string

const (
	DecisionPending  Decision = "Pending"
	DecisionAccepted Decision = "Accepted"
	DecisionRejected Decision = "Rejected"
)

// ParseDecision parses a decision label, case-insensitively.
// "accept" and "reject" are accepted as aliases.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "reset":
		return DecisionPending, nil
	case "accepted", "accept":
		return DecisionAccepted, nil
	case "rejected", "reject":
		return DecisionRejected, nil
	default:
		return "", fmt.Errorf("unknown decision %q", s)
	}
}

// DecisionStore tracks accept/reject decisions for the records of one report.
// Only Added and Modified records can hold a non-pending decision; attempts to
// decide any other record are ignored.
type DecisionStore struct {
	report    *Report
	decisions map[keyID]Decision
}

// NewDecisionStore creates a store with every record of report pending.
func NewDecisionStore(report *Report) *DecisionStore {
	return &DecisionStore{
		report:    report,
		decisions: make(map[keyID]Decision),
	}
}

// Get returns the decision for key. Unknown keys are pending.
func (d *DecisionStore) Get(key Value) Decision {
	if dec, ok := d.decisions[idOf(key)]; ok {
		return dec
	}
	return DecisionPending
}

// Set records dec for key and reports whether it was applied.
// Keys that are unknown or not Added/Modified are left untouched.
func (d *DecisionStore) Set(key Value, dec Decision) bool {
	rec, ok := d.report.Find(key)
	if !ok || !rec.Status.Actionable() {
		return false
	}
	d.put(rec.Key, dec)
	return true
}

// SetMany applies dec to each key and returns how many were applied.
func (d *DecisionStore) SetMany(keys []Value, dec Decision) int {
	applied := 0
	for _, key := range keys {
		if d.Set(key, dec) {
			applied++
		}
	}
	return applied
}

// SetAll applies dec to every record whose status is in statuses.
// Statuses other than Added and Modified are ignored. An empty statuses list
// means both Added and Modified.
func (d *DecisionStore) SetAll(statuses []Status, dec Decision) int {
	if len(statuses) == 0 {
		statuses = []Status{StatusModified, StatusAdded}
	}
	want := make(map[Status]bool, len(statuses))
	for _, s := range statuses {
		if s.Actionable() {
			want[s] = true
		}
	}

	applied := 0
	for _, rec := range d.report.Records {
		if want[rec.Status] {
			d.put(rec.Key, dec)
			applied++
		}
	}
	return applied
}

// Reset sets every decision back to pending.
func (d *DecisionStore) Reset() {
	d.decisions = make(map[keyID]Decision)
}

// Counts returns the number of actionable records per decision.
func (d *DecisionStore) Counts() map[Decision]int {
	counts := map[Decision]int{
		DecisionPending:  0,
		DecisionAccepted: 0,
		DecisionRejected: 0,
	}
	for _, rec := range d.report.Records {
		if rec.Status.Actionable() {
			counts[d.Get(rec.Key)]++
		}
	}
	return counts
}

// ResolvedValue returns the authoritative value of cell i of rec.
// A change pair resolves to the old value when rejected and to the new value
// otherwise; single values are unaffected by decisions.
func (d *DecisionStore) ResolvedValue(rec DiffRecord, i int) Value {
	cell := rec.Cells[i]
	if cell.Changed && d.Get(rec.Key) == DecisionRejected {
		return cell.OldValue()
	}
	return cell.Value
}

func (d *DecisionStore) put(key Value, dec Decision) {
	id := idOf(key)
	if dec == DecisionPending {
		delete(d.decisions, id)
		return
	}
	d.decisions[id] = dec
}
