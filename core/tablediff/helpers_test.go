package tablediff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

var scenarioFields = []Field{{Name: "key"}, {Name: "name"}, {Name: "val"}}

func row(key, name, val string) Record {
	return Record{"key": String(key), "name": String(name), "val": String(val)}
}

// scenarioDatasets returns the reference old/new pair:
// key 1 in both, key 2 only in old, key 3 only in new.
func scenarioDatasets() (*MemoryDataset, *MemoryDataset) {
	oldDS := NewMemoryDataset("old", scenarioFields,
		row("1", "A", "10"),
		row("2", "B", "20"),
	)
	newDS := NewMemoryDataset("new", scenarioFields,
		row("1", "A", "10"),
		row("3", "C", "30"),
	)
	return oldDS, newDS
}

func mustIndex(t *testing.T, ds Dataset, joinField string) *Snapshot {
	t.Helper()
	snap, err := Index(context.Background(), ds, FieldNames(ds.Fields()), joinField)
	require.NoError(t, err)
	return snap
}

func compareDatasets(t *testing.T, oldDS, newDS Dataset, significant FieldSelection) *Report {
	t.Helper()
	fields := FieldNames(oldDS.Fields())
	return Compare(mustIndex(t, oldDS, "key"), mustIndex(t, newDS, "key"), fields, significant)
}

func statusesByKey(r *Report) map[string]Status {
	out := make(map[string]Status, len(r.Records))
	for _, rec := range r.Records {
		out[rec.Key.String()] = rec.Status
	}
	return out
}
