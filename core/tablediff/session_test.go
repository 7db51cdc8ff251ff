package tablediff

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// failingDataset fails while scanning.
type failingDataset struct {
	*MemoryDataset
	err error
}

func (f *failingDataset) Scan(ctx context.Context, fn func(Record) error) error {
	return f.err
}

// flakyDataset fails every scan after the first one.
type flakyDataset struct {
	*MemoryDataset
	scans int
}

func (f *flakyDataset) Scan(ctx context.Context, fn func(Record) error) error {
	f.scans++
	if f.scans > 1 {
		return errors.New("source went away")
	}
	return f.MemoryDataset.Scan(ctx, fn)
}

func newTestSession() *Session {
	return NewSession(Config{}, zap.NewNop())
}

func TestSession_Compare(t *testing.T) {
	s := newTestSession()
	oldDS, newDS := scenarioDatasets()

	report, err := s.Compare(context.Background(), oldDS, newDS, "key", NewFieldSelection("val"))
	require.NoError(t, err)

	assert.Equal(t, "key", report.JoinField)
	assert.Equal(t, map[string]Status{"1": StatusUnchanged, "2": StatusDeleted, "3": StatusAdded}, statusesByKey(report))
	assert.Same(t, report, s.Report())
	assert.NotEmpty(t, s.ID)
}

func TestSession_Compare_DefaultJoinFieldAndSelection(t *testing.T) {
	s := newTestSession()
	fields := []Field{{Name: "id"}, {Name: "name"}, {Name: "modified_date"}}
	oldDS := NewMemoryDataset("old", fields, Record{"id": Number(1), "name": String("a"), "modified_date": String("2020")})
	newDS := NewMemoryDataset("new", fields, Record{"id": Number(1), "name": String("a"), "modified_date": String("2024")})

	report, err := s.Compare(context.Background(), oldDS, newDS, "", nil)
	require.NoError(t, err)

	assert.Equal(t, "id", report.JoinField, "falls back to the first old field")
	assert.Equal(t, []string{"name"}, report.Significant)
	assert.Equal(t, StatusUnchanged, report.Records[0].Status)
	assert.Equal(t, NewFieldSelection("name"), s.Selection())
}

func TestSession_Compare_Errors(t *testing.T) {
	oldDS, newDS := scenarioDatasets()
	noKey := NewMemoryDataset("narrow", []Field{{Name: "name"}, {Name: "val"}})
	empty := NewMemoryDataset("empty", nil)
	broken := &failingDataset{MemoryDataset: newDS, err: errors.New("disk on fire")}

	tests := []struct {
		name      string
		oldDS     Dataset
		newDS     Dataset
		joinField string
		wantErr   error
		wantText  string
	}{
		{"unknown join field", oldDS, newDS, "missing", ErrInvalidJoinField, ""},
		{"join field absent from new", oldDS, noKey, "key", ErrInvalidJoinField, "narrow"},
		{"empty schema", empty, newDS, "", ErrNoFields, ""},
		{"scan failure", oldDS, broken, "key", nil, "disk on fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			first, err := s.Compare(context.Background(), oldDS, newDS, "key", nil)
			require.NoError(t, err)

			_, err = s.Compare(context.Background(), tt.oldDS, tt.newDS, tt.joinField, nil)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantText != "" {
				assert.Contains(t, err.Error(), tt.wantText)
			}
			assert.Same(t, first, s.Report(), "failed comparison keeps the previous result")
		})
	}
}

func TestSession_SetSignificantFields(t *testing.T) {
	s := newTestSession()
	ctx := context.Background()

	report, err := s.SetSignificantFields(ctx, NewFieldSelection("name"))
	require.NoError(t, err)
	assert.Nil(t, report, "no comparison yet")

	oldDS := NewMemoryDataset("old", scenarioFields, row("1", "A", "10"))
	newDS := NewMemoryDataset("new", scenarioFields, row("1", "A", "99"))

	report, err = s.Compare(ctx, oldDS, newDS, "key", nil)
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, report.Records[0].Status, "stored selection is reused")

	report, err = s.SetSignificantFields(ctx, NewFieldSelection("val"))
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, StatusModified, report.Records[0].Status)
	assert.Same(t, report, s.Report())
}

func TestSession_SetSignificantFields_FailedRerunKeepsSelection(t *testing.T) {
	s := newTestSession()
	ctx := context.Background()

	oldDS := &flakyDataset{MemoryDataset: NewMemoryDataset("old", scenarioFields, row("1", "A", "10"))}
	newDS := NewMemoryDataset("new", scenarioFields, row("1", "B", "10"))

	first, err := s.Compare(ctx, oldDS, newDS, "key", NewFieldSelection("val"))
	require.NoError(t, err)

	_, err = s.SetSignificantFields(ctx, NewFieldSelection("name"))
	require.Error(t, err)

	assert.Same(t, first, s.Report())
	assert.Equal(t, NewFieldSelection("val"), s.Selection())
	assert.Equal(t, s.Report().Significant, s.Selection().Ordered(FieldNames(scenarioFields)))
}

func TestSession_DecisionsResetOnCompare(t *testing.T) {
	s := newTestSession()
	ctx := context.Background()
	oldDS := NewMemoryDataset("old", scenarioFields, row("1", "A", "10"))
	newDS := NewMemoryDataset("new", scenarioFields, row("1", "A", "11"), row("2", "B", "20"))

	_, err := s.Compare(ctx, oldDS, newDS, "key", NewFieldSelection("val"))
	require.NoError(t, err)

	applied, err := s.SetDecisionAll(nil, DecisionRejected)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	_, err = s.Recompare(ctx)
	require.NoError(t, err)

	s.View(func(report *Report, decisions *DecisionStore) {
		for _, rec := range report.Records {
			assert.Equal(t, DecisionPending, decisions.Get(rec.Key))
		}
	})
}

func TestSession_SetDecisionByText(t *testing.T) {
	s := newTestSession()
	oldDS, newDS := scenarioDatasets()

	_, err := s.SetDecisionByText(DecisionAccepted, "3")
	assert.ErrorIs(t, err, ErrNoData)

	_, err = s.Compare(context.Background(), oldDS, newDS, "key", NewFieldSelection("val"))
	require.NoError(t, err)

	applied, err := s.SetDecisionByText(DecisionAccepted, "3", "2", "nope")
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	applied, err = s.SetDecision(DecisionRejected, String("3"))
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
}

func TestSession_Export(t *testing.T) {
	s := newTestSession()
	path := filepath.Join(t.TempDir(), "out.csv")

	assert.ErrorIs(t, s.Export(path, ShowAll()), ErrNoData)

	oldDS, newDS := scenarioDatasets()
	_, err := s.Compare(context.Background(), oldDS, newDS, "key", NewFieldSelection("val"))
	require.NoError(t, err)

	require.NoError(t, s.Export(path, ShowAll()))

	var buf bytes.Buffer
	require.NoError(t, s.ExportTo(&buf, FilterState{}))
	assert.Equal(t, "Status,key,name,val,Decision\n", buf.String())
}

func TestSession_SetJoinField(t *testing.T) {
	s := newTestSession()
	ctx := context.Background()
	oldDS, newDS := scenarioDatasets()

	_, err := s.Compare(ctx, oldDS, newDS, "key", NewFieldSelection("val"))
	require.NoError(t, err)

	report, err := s.SetJoinField(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, "name", report.JoinField)
	assert.Equal(t, "name", s.JoinField())
	assert.Equal(t, map[string]Status{"A": StatusUnchanged, "B": StatusDeleted, "C": StatusAdded}, statusesByKey(report))
}
