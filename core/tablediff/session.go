package tablediff

import (
	"context"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Session holds the state of one comparison: the compared datasets, the join
// field, the significant field selection, the latest report and its decisions.
//
// Every host action (compare, decide, export, reselect fields) goes through a
// Session. A new comparison replaces the report and decisions atomically, so
// readers see either the previous or the new complete result.
type Session struct {
	// ID uniquely identifies the session.
	ID string

	// Created is the time the session was created.
	Created time.Time

	logger  *zap.Logger
	ignored []string

	mu        sync.RWMutex
	oldDS     Dataset
	newDS     Dataset
	joinField string
	selection FieldSelection
	report    *Report
	decisions *DecisionStore
	filter    FilterState
	touched   time.Time
}

// NewSession creates an empty session.
func NewSession(cfg Config, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now()
	id := uuid.NewString()
	return &Session{
		ID:      id,
		Created: now,
		logger:  logger.With(zap.String("session", id)),
		ignored: cfg.Ignored(),
		filter:  ShowAll(),
		touched: now,
	}
}

// Compare compares oldDS with newDS and replaces the session result.
//
// An empty joinField falls back to the first field of the old schema. A nil
// significant selection keeps the session's current selection, or the default
// selection on the first run. On error the previous result is left untouched.
func (s *Session) Compare(ctx context.Context, oldDS, newDS Dataset, joinField string, significant FieldSelection) (*Report, error) {
	s.mu.RLock()
	if significant == nil && s.selection != nil {
		significant = s.selection
	}
	s.mu.RUnlock()

	report, sel, err := s.run(ctx, oldDS, newDS, joinField, significant)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.oldDS = oldDS
	s.newDS = newDS
	s.joinField = report.JoinField
	s.selection = sel
	s.report = report
	s.decisions = NewDecisionStore(report)
	s.touched = time.Now()
	s.mu.Unlock()

	return report, nil
}

// Recompare re-runs the comparison with the current datasets and settings.
// Without a prior comparison it returns (nil, nil).
func (s *Session) Recompare(ctx context.Context) (*Report, error) {
	s.mu.RLock()
	oldDS, newDS, joinField := s.oldDS, s.newDS, s.joinField
	s.mu.RUnlock()

	if oldDS == nil || newDS == nil {
		return nil, nil
	}
	return s.Compare(ctx, oldDS, newDS, joinField, nil)
}

// SetSignificantFields replaces the significant field selection and re-runs
// the comparison when a prior result exists. If the re-run fails the previous
// selection and result are kept.
func (s *Session) SetSignificantFields(ctx context.Context, sel FieldSelection) (*Report, error) {
	if sel == nil {
		sel = FieldSelection{}
	}

	s.mu.Lock()
	oldDS, newDS, joinField := s.oldDS, s.newDS, s.joinField
	hasResult := s.report != nil && oldDS != nil && newDS != nil
	if !hasResult {
		s.selection = sel.Clone()
	}
	s.touched = time.Now()
	s.mu.Unlock()

	s.logger.Info("Significant fields updated", zap.Int("count", len(sel)), zap.Bool("recompare", hasResult))
	if !hasResult {
		return nil, nil
	}
	return s.Compare(ctx, oldDS, newDS, joinField, sel.Clone())
}

// SetJoinField changes the join field and re-runs the comparison when a prior result exists.
func (s *Session) SetJoinField(ctx context.Context, joinField string) (*Report, error) {
	s.mu.RLock()
	oldDS, newDS := s.oldDS, s.newDS
	s.mu.RUnlock()

	if oldDS == nil || newDS == nil {
		s.mu.Lock()
		s.joinField = joinField
		s.mu.Unlock()
		return nil, nil
	}
	return s.Compare(ctx, oldDS, newDS, joinField, nil)
}

// SetDecision records dec for the given keys and returns how many were applied.
// Keys of Deleted or Unchanged records are ignored.
func (s *Session) SetDecision(dec Decision, keys ...Value) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.report.Len() == 0 {
		return 0, ErrNoData
	}
	s.touched = time.Now()
	return s.decisions.SetMany(keys, dec), nil
}

// SetDecisionByText is SetDecision for keys given in their display form.
// Keys that match no record are ignored.
func (s *Session) SetDecisionByText(dec Decision, keys ...string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.report.Len() == 0 {
		return 0, ErrNoData
	}
	s.touched = time.Now()

	applied := 0
	for _, text := range keys {
		rec, ok := s.report.Lookup(text)
		if ok && s.decisions.Set(rec.Key, dec) {
			applied++
		}
	}
	return applied, nil
}

// SetDecisionAll applies dec to every record whose status is in statuses.
// Only Added and Modified are honoured.
func (s *Session) SetDecisionAll(statuses []Status, dec Decision) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.report.Len() == 0 {
		return 0, ErrNoData
	}
	s.touched = time.Now()
	return s.decisions.SetAll(statuses, dec), nil
}

// SetFilter stores the session's current filter.
func (s *Session) SetFilter(f FilterState) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// Filter returns the session's current filter.
func (s *Session) Filter() FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Export writes the decision-resolved export of the visible records to path.
func (s *Session) Export(path string, filter FilterState) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ExportFile(path, s.report, filter, s.decisions); err != nil {
		return err
	}
	s.logger.Info("Exported comparison", zap.String("path", path))
	return nil
}

// ExportTo writes the decision-resolved export of the visible records to w.
func (s *Session) ExportTo(w io.Writer, filter FilterState) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Export(w, s.report, filter, s.decisions)
}

// View calls fn with the current report and decisions under a read lock.
// fn must not retain either value. Both are nil before the first comparison.
func (s *Session) View(fn func(report *Report, decisions *DecisionStore)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.report, s.decisions)
}

// Report returns the current report, or nil before the first comparison.
func (s *Session) Report() *Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// JoinField returns the join field of the last comparison.
func (s *Session) JoinField() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.joinField
}

// Selection returns a copy of the significant field selection.
func (s *Session) Selection() FieldSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selection == nil {
		return nil
	}
	return s.selection.Clone()
}

// Datasets returns the datasets of the last comparison.
func (s *Session) Datasets() (Dataset, Dataset) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.oldDS, s.newDS
}

// Touch marks the session as used.
func (s *Session) Touch() {
	s.mu.Lock()
	s.touched = time.Now()
	s.mu.Unlock()
}

// LastUsed returns the time of the last mutating call or Touch.
func (s *Session) LastUsed() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.touched
}

// run validates the inputs, indexes both datasets concurrently and diffs them.
func (s *Session) run(ctx context.Context, oldDS, newDS Dataset, joinField string, significant FieldSelection) (*Report, FieldSelection, error) {
	oldFields := oldDS.Fields()
	joinField, err := ResolveJoinField(joinField, oldFields)
	if err != nil {
		return nil, nil, err
	}

	fields := FieldNames(oldFields)
	if !slices.Contains(fields, joinField) {
		return nil, nil, invalidJoinField(joinField, oldDS.Name())
	}
	if !slices.Contains(FieldNames(newDS.Fields()), joinField) {
		return nil, nil, invalidJoinField(joinField, newDS.Name())
	}

	if significant == nil {
		significant = DefaultSelection(fields, s.ignored)
	}

	var oldSnap, newSnap *Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		oldSnap, err = Index(gctx, oldDS, fields, joinField)
		return err
	})
	g.Go(func() error {
		var err error
		newSnap, err = Index(gctx, newDS, fields, joinField)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for _, snap := range []*Snapshot{oldSnap, newSnap} {
		if snap.Duplicates > 0 {
			s.logger.Warn("Duplicate join keys, last record wins",
				zap.String("dataset", snap.Name),
				zap.String("join_field", joinField),
				zap.Int("duplicates", snap.Duplicates))
		}
	}

	report := Compare(oldSnap, newSnap, fields, significant)
	report.JoinField = joinField

	s.logger.Info("Comparison complete",
		zap.String("old", oldDS.Name()),
		zap.String("new", newDS.Name()),
		zap.String("join_field", joinField),
		zap.Int("total", report.Summary.Total),
		zap.Int("added", report.Summary.Added),
		zap.Int("deleted", report.Summary.Deleted),
		zap.Int("modified", report.Summary.Modified),
		zap.Int("unchanged", report.Summary.Unchanged),
	)

	return report, significant.Clone(), nil
}
