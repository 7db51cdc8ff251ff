package tablediff

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompare_Scenario covers one unchanged, one deleted and one added key.
func TestCompare_Scenario(t *testing.T) {
	oldDS, newDS := scenarioDatasets()

	report := compareDatasets(t, oldDS, newDS, NewFieldSelection("val"))

	require.Len(t, report.Records, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{
		report.Records[0].Key.String(),
		report.Records[1].Key.String(),
		report.Records[2].Key.String(),
	})
	assert.Equal(t, map[string]Status{
		"1": StatusUnchanged,
		"2": StatusDeleted,
		"3": StatusAdded,
	}, statusesByKey(report))

	assert.Equal(t, 1, report.Summary.Added)
	assert.Equal(t, 1, report.Summary.Deleted)
	assert.Equal(t, 0, report.Summary.Modified)
	assert.Equal(t, 1, report.Summary.Unchanged)
	assert.Equal(t, 3, report.Summary.Total)
}

func TestCompare_NumericTolerance(t *testing.T) {
	oldDS := NewMemoryDataset("old", scenarioFields, row("1", "A", "10.0"))
	newDS := NewMemoryDataset("new", scenarioFields, row("1", "A", "10"))

	report := compareDatasets(t, oldDS, newDS, NewFieldSelection("val"))

	require.Len(t, report.Records, 1)
	assert.Equal(t, StatusUnchanged, report.Records[0].Status)
}

func TestCompare_ModifiedCells(t *testing.T) {
	oldDS := NewMemoryDataset("old", scenarioFields, row("1", "A", "10"))
	newDS := NewMemoryDataset("new", scenarioFields, row("1", "B", "11"))

	// Only val is significant: name differs but is shown as the new single value.
	report := compareDatasets(t, oldDS, newDS, NewFieldSelection("val"))

	require.Len(t, report.Records, 1)
	rec := report.Records[0]
	assert.Equal(t, StatusModified, rec.Status)

	name := rec.Cells[report.FieldIndex("name")]
	assert.False(t, name.Changed)
	assert.Equal(t, String("B"), name.Value)

	val := rec.Cells[report.FieldIndex("val")]
	assert.True(t, val.Changed)
	require.NotNil(t, val.Old)
	assert.Equal(t, String("10"), *val.Old)
	assert.Nil(t, name.Old)
	assert.Equal(t, String("11"), val.New())

	assert.Equal(t, []string{"val"}, rec.ChangedFields(report.Fields))
	assert.Equal(t, map[string]int{"val": 1}, report.Summary.FieldChanges)
}

// TestCompare_AllSignificantDifferencesHighlighted ensures every differing
// significant field gets a change pair, not only the first one found.
func TestCompare_AllSignificantDifferencesHighlighted(t *testing.T) {
	oldDS := NewMemoryDataset("old", scenarioFields, row("1", "A", "10"))
	newDS := NewMemoryDataset("new", scenarioFields, row("1", "B", "11"))

	report := compareDatasets(t, oldDS, newDS, NewFieldSelection("name", "val"))

	assert.Equal(t, []string{"name", "val"}, report.Records[0].ChangedFields(report.Fields))
}

func TestCompare_NonSignificantDifferencesIgnored(t *testing.T) {
	oldDS := NewMemoryDataset("old", scenarioFields, row("1", "A", "10"), row("2", "B", "20"))
	newDS := NewMemoryDataset("new", scenarioFields, row("1", "Z", "10"), row("2", "Y", "20"))

	report := compareDatasets(t, oldDS, newDS, NewFieldSelection("val"))

	for _, rec := range report.Records {
		assert.Equal(t, StatusUnchanged, rec.Status)
		assert.Empty(t, rec.ChangedFields(report.Fields))
	}
}

// TestCompare_SelectionIndependence checks that the field selection only moves
// records between Modified and Unchanged, and that restoring it is idempotent.
func TestCompare_SelectionIndependence(t *testing.T) {
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

	original := compareDatasets(t, oldDS, newDS, NewFieldSelection("name", "val"))
	assert.Equal(t, StatusModified, statusesByKey(original)["1"])

	empty := compareDatasets(t, oldDS, newDS, FieldSelection{})
	for key, st := range statusesByKey(empty) {
		switch statusesByKey(original)[key] {
		case StatusAdded, StatusDeleted:
			assert.Equal(t, statusesByKey(original)[key], st, "key %s", key)
		default:
			assert.Equal(t, StatusUnchanged, st, "key %s", key)
		}
	}
	for _, rec := range empty.Records {
		assert.Empty(t, rec.ChangedFields(empty.Fields))
	}

	restored := compareDatasets(t, oldDS, newDS, NewFieldSelection("name", "val"))
	assert.Equal(t, original.Records, restored.Records)
	assert.Equal(t, original.Summary, restored.Summary)
}

func TestCompare_DeletedAndAddedDisplayValues(t *testing.T) {
	oldDS, newDS := scenarioDatasets()

	report := compareDatasets(t, oldDS, newDS, NewFieldSelection("val"))

	deleted, ok := report.Find(String("2"))
	require.True(t, ok)
	assert.Equal(t, String("B"), deleted.Cells[report.FieldIndex("name")].Value)

	added, ok := report.Lookup("3")
	require.True(t, ok)
	assert.Equal(t, String("30"), added.Cells[report.FieldIndex("val")].Value)
}

func TestCompare_MissingFieldInNewRecord(t *testing.T) {
	oldDS := NewMemoryDataset("old", scenarioFields, row("1", "A", "10"))
	newDS := NewMemoryDataset("new", []Field{{Name: "key"}, {Name: "val"}},
		Record{"key": String("1"), "val": String("10")},
	)

	report := compareDatasets(t, oldDS, newDS, NewFieldSelection("name", "val"))

	rec := report.Records[0]
	assert.Equal(t, StatusUnchanged, rec.Status, "fields missing on one side are not compared")
	assert.Equal(t, String("A"), rec.Cells[report.FieldIndex("name")].Value, "falls back to the old value")
}

func TestCompare_KeyOrdering(t *testing.T) {
	fields := []Field{{Name: "key"}, {Name: "val"}}
	oldDS := NewMemoryDataset("old", fields,
		Record{"key": Number(10), "val": String("a")},
		Record{"key": Number(2), "val": String("b")},
		Record{"key": String("b"), "val": String("c")},
	)
	newDS := NewMemoryDataset("new", fields,
		Record{"key": String("a"), "val": String("d")},
		Record{"key": Null(), "val": String("e")},
		Record{"key": Number(2.5), "val": String("f")},
	)

	report := compareDatasets(t, oldDS, newDS, AllFields([]string{"key", "val"}))

	var keys []string
	for _, rec := range report.Records {
		keys = append(keys, rec.Key.Kind().String()+":"+rec.Key.String())
	}
	assert.Equal(t, []string{"null:", "number:2", "number:2.5", "number:10", "string:a", "string:b"}, keys)
}

func TestCompare_Empty(t *testing.T) {
	oldDS := NewMemoryDataset("old", scenarioFields)
	newDS := NewMemoryDataset("new", scenarioFields)

	report := compareDatasets(t, oldDS, newDS, NewFieldSelection("val"))
	assert.Zero(t, report.Len())
	assert.Equal(t, []string{"val"}, report.Significant)
}

// TestCompare_TextKeysMeetNumericKeys compares a text-keyed dataset (CSV) with
// a number-keyed one (database table).
func TestCompare_TextKeysMeetNumericKeys(t *testing.T) {
	fields := []Field{{Name: "key"}, {Name: "val"}}
	oldDS := NewMemoryDataset("old.csv", fields,
		Record{"key": String("1"), "val": String("10")},
		Record{"key": String("2"), "val": String("20")},
		Record{"key": String("10"), "val": String("100")},
	)
	newDS := NewMemoryDataset("parcels", fields,
		Record{"key": Int(1), "val": Int(10)},
		Record{"key": Int(2), "val": Int(21)},
		Record{"key": Int(3), "val": Int(30)},
	)

	report := compareDatasets(t, oldDS, newDS, NewFieldSelection("val"))

	assert.Equal(t, map[string]Status{
		"1":  StatusUnchanged,
		"2":  StatusModified,
		"3":  StatusAdded,
		"10": StatusDeleted,
	}, statusesByKey(report))

	var order []string
	for _, rec := range report.Records {
		order = append(order, rec.Key.String())
	}
	assert.Equal(t, []string{"1", "2", "3", "10"}, order, "text keys sort numerically next to numeric keys")

	rec, ok := report.Find(String("10"))
	require.True(t, ok)
	assert.Equal(t, StatusDeleted, rec.Status)
}

func TestCompare_LargeIntegerKeys(t *testing.T) {
	fields := []Field{{Name: "key"}, {Name: "val"}}
	oldDS := NewMemoryDataset("old", fields,
		Record{"key": FromAny(int64(9007199254740992)), "val": String("a")},
		Record{"key": FromAny(int64(9007199254740993)), "val": String("b")},
	)
	newDS := NewMemoryDataset("new", fields,
		Record{"key": FromAny(int64(9007199254740993)), "val": String("b")},
	)

	report := compareDatasets(t, oldDS, newDS, NewFieldSelection("val"))
	assert.Equal(t, map[string]Status{
		"9007199254740992": StatusDeleted,
		"9007199254740993": StatusUnchanged,
	}, statusesByKey(report))
}

func TestCell_JSON(t *testing.T) {
	out, err := json.Marshal(Cell{Value: String("a")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"a"}`, string(out))

	old := String("x")
	out, err = json.Marshal(Cell{Value: String("y"), Old: &old, Changed: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"y","old":"x","changed":true}`, string(out))
}
