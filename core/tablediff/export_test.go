package tablediff

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, data string) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExport(t *testing.T) {
	report, store := decisionFixture(t)
	store.Set(String("1"), DecisionRejected)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, report, ShowAll(), store))

	assert.Equal(t, [][]string{
		{"Status", "key", "name", "val", "Decision"},
		{"Modified", "1", "A", "10", "Rejected"},
		{"Deleted", "2", "B", "20", "Pending"},
		{"Added", "3", "C", "30", "Pending"},
		{"Unchanged", "4", "D", "40", "Pending"},
	}, readCSV(t, buf.String()))
}

func TestExport_Filter(t *testing.T) {
	report, store := decisionFixture(t)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, report, FilterOf(StatusAdded, StatusModified), store))

	rows := readCSV(t, buf.String())
	require.Len(t, rows, 3)
	assert.Equal(t, "Modified", rows[1][0])
	assert.Equal(t, "Added", rows[2][0])
}

// TestExport_AllFiltered documents that a fully filtered report exports its header only.
func TestExport_AllFiltered(t *testing.T) {
	report, store := decisionFixture(t)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, report, FilterState{}, store))

	assert.Equal(t, "Status,key,name,val,Decision\n", buf.String())
}

func TestExport_NoData(t *testing.T) {
	report := Compare(NewSnapshot("old"), NewSnapshot("new"), []string{"key"}, FieldSelection{})

	var buf bytes.Buffer
	assert.ErrorIs(t, Export(&buf, report, ShowAll(), nil), ErrNoData)
	assert.ErrorIs(t, Export(&buf, nil, ShowAll(), nil), ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestExport_Quoting(t *testing.T) {
	fields := []Field{{Name: "key"}, {Name: "note"}}
	oldDS := NewMemoryDataset("old", fields)
	newDS := NewMemoryDataset("new", fields, Record{"key": String("1"), "note": String(`say "hi", then leave`)})

	report := Compare(mustIndex(t, oldDS, "key"), mustIndex(t, newDS, "key"), []string{"key", "note"}, AllFields([]string{"note"}))

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, report, ShowAll(), nil))

	assert.Contains(t, buf.String(), `"say ""hi"", then leave"`)
	assert.Equal(t, `say "hi", then leave`, readCSV(t, buf.String())[1][2])
}

// TestExport_RoundTrip checks that accepting everything reproduces the new
// values and rejecting everything reproduces the old values of changed fields.
func TestExport_RoundTrip(t *testing.T) {
	oldDS := NewMemoryDataset("old", scenarioFields,
		row("1", "A", "10"),
		row("2", "B", "20"),
		row("3", "C", "30"),
	)
	newDS := NewMemoryDataset("new", scenarioFields,
		row("1", "A2", "11"),
		row("2", "B", "20"),
		row("3", "C3", "30"),
	)
	report := compareDatasets(t, oldDS, newDS, NewFieldSelection("name", "val"))
	store := NewDecisionStore(report)

	filter := FilterOf(StatusModified, StatusUnchanged)

	store.SetAll(nil, DecisionAccepted)
	var accepted bytes.Buffer
	require.NoError(t, Export(&accepted, report, filter, store))
	assert.Equal(t, [][]string{
		{"Status", "key", "name", "val", "Decision"},
		{"Modified", "1", "A2", "11", "Accepted"},
		{"Unchanged", "2", "B", "20", "Pending"},
		{"Modified", "3", "C3", "30", "Accepted"},
	}, readCSV(t, accepted.String()))

	store.SetAll(nil, DecisionRejected)
	var rejected bytes.Buffer
	require.NoError(t, Export(&rejected, report, filter, store))
	assert.Equal(t, [][]string{
		{"Status", "key", "name", "val", "Decision"},
		{"Modified", "1", "A", "10", "Rejected"},
		{"Unchanged", "2", "B", "20", "Pending"},
		{"Modified", "3", "C", "30", "Rejected"},
	}, readCSV(t, rejected.String()))
}

func TestExportFile(t *testing.T) {
	report, store := decisionFixture(t)
	path := filepath.Join(t.TempDir(), "comparison_results.csv")

	require.NoError(t, ExportFile(path, report, ShowAll(), store))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, readCSV(t, string(data)), 5)
}

func TestExportFile_Unwritable(t *testing.T) {
	report, store := decisionFixture(t)
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.csv")

	err := ExportFile(path, report, ShowAll(), store)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, path, ioErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
