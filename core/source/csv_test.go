package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"table-compare/core/tablediff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCSV(t *testing.T) {
	doc := "\ufeffid, name ,area\n1,Alpha,10.5\n2,,20\n3,\"Gamma, Inc\"\n"

	table, err := ParseCSV(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "area"}, tablediff.FieldNames(table.Fields))
	require.Len(t, table.Records, 3)

	assert.Equal(t, "Alpha", table.Records[0]["name"].String())
	assert.Equal(t, tablediff.KindString, table.Records[0]["area"].Kind())

	assert.True(t, table.Records[1]["name"].IsNull(), "empty cell is null")

	assert.Equal(t, "Gamma, Inc", table.Records[2]["name"].String())
	_, ok := table.Records[2]["area"]
	assert.False(t, ok, "short row leaves the field absent")
}

func TestParseCSV_Empty(t *testing.T) {
	table, err := ParseCSV(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, table.Fields)
	assert.Empty(t, table.Records)
}

func TestParseCSV_DuplicateHeader(t *testing.T) {
	_, err := ParseCSV(context.Background(), strings.NewReader("id,name,id\n1,a,1\n"))
	assert.ErrorContains(t, err, `duplicate field "id"`)
}

func TestFileDataset(t *testing.T) {
	path := writeFile(t, "old.csv", "id,name\n1,Alpha\n2,Beta\n")

	ds, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, ds.Name())
	assert.Equal(t, []string{"id", "name"}, tablediff.FieldNames(ds.Fields()))

	var names []string
	err = ds.Scan(context.Background(), func(rec tablediff.Record) error {
		names = append(names, rec["name"].String())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta"}, names)

	// A rescan sees the current file content.
	require.NoError(t, os.WriteFile(path, []byte("id,name\n1,Alpha\n"), 0o644))
	count := 0
	require.NoError(t, ds.Scan(context.Background(), func(tablediff.Record) error {
		count++
		return nil
	}))
	assert.Equal(t, 1, count)
}

func TestFileDataset_Missing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileDataset_Cancelled(t *testing.T) {
	var b strings.Builder
	b.WriteString("id\n")
	for i := 0; i < 500; i++ {
		b.WriteString("1\n")
	}
	ds, err := OpenFile(writeFile(t, "big.csv", b.String()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = ds.Scan(ctx, func(tablediff.Record) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileDataset_Compare(t *testing.T) {
	oldPath := writeFile(t, "old.csv", "id,name,area\n1,Alpha,10\n2,Beta,20\n3,Gamma,30\n")
	newPath := writeFile(t, "new.csv", "id,name,area\n1,Alpha,10.0\n2,Beta,25\n4,Delta,40\n")

	oldDS, err := OpenFile(oldPath)
	require.NoError(t, err)
	newDS, err := OpenFile(newPath)
	require.NoError(t, err)

	s := tablediff.NewSession(tablediff.Config{}, nil)
	report, err := s.Compare(context.Background(), oldDS, newDS, "id", nil)
	require.NoError(t, err)

	statuses := make(map[string]tablediff.Status)
	for _, rec := range report.Records {
		statuses[rec.Key.String()] = rec.Status
	}
	assert.Equal(t, map[string]tablediff.Status{
		"1": tablediff.StatusUnchanged,
		"2": tablediff.StatusModified,
		"3": tablediff.StatusDeleted,
		"4": tablediff.StatusAdded,
	}, statuses)
}
