package compare

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"table-compare/core/tablediff"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderFixture(t *testing.T) *tablediff.Session {
	t.Helper()
	color.NoColor = true

	svc := newTestService(nil)
	oldLoc, newLoc := writeDatasets(t)
	sess, err := svc.Create(context.Background(), &CompareRequest{Old: oldLoc, New: newLoc, JoinField: "id"})
	require.NoError(t, err)
	_, err = sess.SetDecisionByText(tablediff.DecisionRejected, "2")
	require.NoError(t, err)
	return sess
}

func TestRender(t *testing.T) {
	sess := renderFixture(t)

	var buf bytes.Buffer
	sess.View(func(report *tablediff.Report, decisions *tablediff.DecisionStore) {
		require.NoError(t, Render(&buf, report, decisions, tablediff.FilterOf(tablediff.StatusModified, tablediff.StatusAdded)))
	})
	out := buf.String()

	assert.Contains(t, out, "20 -> 25")
	assert.Contains(t, out, "Rejected")
	assert.Contains(t, out, "Delta")
	assert.NotContains(t, out, "Gamma", "deleted row is filtered out")

	var rows []string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Modified") || strings.Contains(line, "Added") {
			rows = append(rows, line)
		}
	}
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0], "1")
	assert.Contains(t, rows[1], "2")
}

func TestRenderSummary(t *testing.T) {
	sess := renderFixture(t)

	var buf bytes.Buffer
	sess.View(func(report *tablediff.Report, decisions *tablediff.DecisionStore) {
		RenderSummary(&buf, report, decisions)
	})
	out := buf.String()

	assert.Contains(t, out, "Join field: id")
	assert.Contains(t, out, "Records: 4")
	assert.Contains(t, out, "Decisions: Pending 1  Accepted 0  Rejected 1")
	assert.Contains(t, out, "area: 1")
}
