package compare

import (
	"os"
	"path/filepath"
	"testing"

	"table-compare/core/source"
	"table-compare/core/storage"
	"table-compare/core/tablediff"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	oldCSV = "id,name,area\n1,Alpha,10\n2,Beta,20\n3,Gamma,30\n"
	newCSV = "id,name,area\n1,Alpha,10.0\n2,Beta,25\n4,Delta,40\n"
)

// writeDatasets writes the old and new CSV fixtures and returns their locators.
func writeDatasets(t *testing.T) (source.Locator, source.Locator) {
	t.Helper()
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.csv")
	newPath := filepath.Join(dir, "new.csv")
	require.NoError(t, os.WriteFile(oldPath, []byte(oldCSV), 0o644))
	require.NoError(t, os.WriteFile(newPath, []byte(newCSV), 0o644))
	return source.Locator{Kind: source.KindFile, Target: oldPath},
		source.Locator{Kind: source.KindFile, Target: newPath}
}

func newTestService(client storage.Client) *Service {
	cfg := tablediff.Config{SessionTTLSeconds: 60, ExportPrefix: "exports"}
	opener := &source.Opener{Storage: client, Bucket: "datasets"}
	return NewService(opener, client, "datasets", cfg, zap.NewNop())
}
