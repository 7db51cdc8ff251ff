package tablediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decisionFixture(t *testing.T) (*Report, *DecisionStore) {
	t.Helper()
	oldDS := NewMemoryDataset("old", scenarioFields,
		row("1", "A", "10"),
		row("2", "B", "20"),
		row("4", "D", "40"),
	)
	newDS := NewMemoryDataset("new", scenarioFields,
		row("1", "A", "15"),
		row("3", "C", "30"),
		row("4", "D", "40"),
	)
	report := compareDatasets(t, oldDS, newDS, NewFieldSelection("val"))
	require.Equal(t, map[string]Status{
		"1": StatusModified,
		"2": StatusDeleted,
		"3": StatusAdded,
		"4": StatusUnchanged,
	}, statusesByKey(report))
	return report, NewDecisionStore(report)
}

func TestDecisionStore_DefaultsToPending(t *testing.T) {
	_, store := decisionFixture(t)

	for _, key := range []string{"1", "2", "3", "4", "unknown"} {
		assert.Equal(t, DecisionPending, store.Get(String(key)))
	}
}

func TestDecisionStore_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		applied bool
	}{
		{"modified", "1", true},
		{"added", "3", true},
		{"deleted is not actionable", "2", false},
		{"unchanged is not actionable", "4", false},
		{"unknown key", "99", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, store := decisionFixture(t)

			assert.Equal(t, tt.applied, store.Set(String(tt.key), DecisionAccepted))
			want := DecisionPending
			if tt.applied {
				want = DecisionAccepted
			}
			assert.Equal(t, want, store.Get(String(tt.key)))
		})
	}
}

func TestDecisionStore_SetAll(t *testing.T) {
	_, store := decisionFixture(t)

	assert.Equal(t, 1, store.SetAll([]Status{StatusAdded, StatusDeleted, StatusUnchanged}, DecisionRejected))
	assert.Equal(t, DecisionRejected, store.Get(String("3")))
	assert.Equal(t, DecisionPending, store.Get(String("1")))
	assert.Equal(t, DecisionPending, store.Get(String("2")))

	assert.Equal(t, 2, store.SetAll(nil, DecisionAccepted))
	assert.Equal(t, map[Decision]int{DecisionPending: 0, DecisionAccepted: 2, DecisionRejected: 0}, store.Counts())

	store.Reset()
	assert.Equal(t, DecisionPending, store.Get(String("1")))
}

func TestDecisionStore_SetMany(t *testing.T) {
	_, store := decisionFixture(t)

	applied := store.SetMany([]Value{String("1"), String("2"), String("3")}, DecisionRejected)
	assert.Equal(t, 2, applied)

	store.Set(String("1"), DecisionPending)
	assert.Equal(t, DecisionPending, store.Get(String("1")))
}

func TestDecisionStore_ResolvedValue(t *testing.T) {
	report, store := decisionFixture(t)
	val := report.FieldIndex("val")
	name := report.FieldIndex("name")

	modified, _ := report.Lookup("1")

	assert.Equal(t, String("15"), store.ResolvedValue(modified, val), "pending resolves to new")

	store.Set(modified.Key, DecisionAccepted)
	assert.Equal(t, String("15"), store.ResolvedValue(modified, val))

	store.Set(modified.Key, DecisionRejected)
	assert.Equal(t, String("10"), store.ResolvedValue(modified, val))
	assert.Equal(t, String("A"), store.ResolvedValue(modified, name), "single values ignore decisions")

	added, _ := report.Lookup("3")
	store.Set(added.Key, DecisionRejected)
	assert.Equal(t, String("30"), store.ResolvedValue(added, val))
}

func TestParseDecision(t *testing.T) {
	for in, want := range map[string]Decision{
		"accept":   DecisionAccepted,
		"Accepted": DecisionAccepted,
		"REJECT":   DecisionRejected,
		"pending":  DecisionPending,
	} {
		got, err := ParseDecision(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseDecision("maybe")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus(" modified ")
	assert.True(t, ok)
	assert.Equal(t, StatusModified, st)

	_, ok = ParseStatus("changed")
	assert.False(t, ok)
}
