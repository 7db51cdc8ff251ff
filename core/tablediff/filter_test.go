package tablediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in   string
		want FilterState
	}{
		{"", ShowAll()},
		{"added", FilterState{Added: true}},
		{"Added, modified", FilterState{Added: true, Modified: true}},
		{"deleted,unchanged,", FilterState{Deleted: true, Unchanged: true}},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFilter("added,renamed")
	assert.EqualError(t, err, `unknown status "renamed"`)
}

func TestFilterState_Visible(t *testing.T) {
	report, _ := decisionFixture(t)

	visible := FilterOf(StatusAdded, StatusDeleted).Visible(report)
	require.Len(t, visible, 2)
	assert.Equal(t, "2", visible[0].Key.String())
	assert.Equal(t, "3", visible[1].Key.String())

	assert.Len(t, ShowAll().Visible(report), 4)
	assert.Empty(t, FilterState{}.Visible(report))
	assert.Nil(t, ShowAll().Visible(nil))
}
