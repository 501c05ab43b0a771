package archive

import (
	"archive/zip"
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

// buildArchive assembles a zip payload shaped like a historical emissions download:
// one CSV file per month, all sharing the same header
func buildArchive(t *testing.T) []byte {
	files := []struct {
		name    string
		content string
	}{
		{
			name:    "CAISO_NORTH_2023-01.csv",
			content: "timestamp,MOER,version\n2023-01-01T00:00:00Z,850.1,3.0\n2023-01-01T00:05:00Z,849.7,3.0\n",
		},
		{
			name:    "CAISO_NORTH_2023-02.csv",
			content: "timestamp,MOER,version\n2023-02-01T00:00:00Z,790.2,3.0\n",
		},
	}

	buffer := new(bytes.Buffer)
	writer := zip.NewWriter(buffer)
	for _, file := range files {
		entry, err := writer.Create(file.name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(file.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buffer.Bytes()
}

func TestSaveExtractConcatenate(t *testing.T) {
	dir := t.TempDir()

	zipPath := filepath.Join(dir, "historical.zip")
	require.NoError(t, Save(zipPath, buildArchive(t)))

	extractDir := filepath.Join(dir, "historical")
	require.NoError(t, Extract(zipPath, extractDir))
	entries, err := os.ReadDir(extractDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	combinedPath := filepath.Join(dir, "combined.csv")
	require.NoError(t, Concatenate(extractDir, combinedPath))
	combined, err := os.ReadFile(combinedPath)
	require.NoError(t, err)
	assert.Equal(t,
		"timestamp,MOER,version\n"+
			"2023-01-01T00:00:00Z,850.1,3.0\n"+
			"2023-01-01T00:05:00Z,849.7,3.0\n"+
			"2023-02-01T00:00:00Z,790.2,3.0\n",
		string(combined),
	)
}

func TestSave_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "historical.zip")
	require.NoError(t, Save(path, []byte("payload")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), content)
}

func TestConcatenate_NoFiles(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, Concatenate(dir, filepath.Join(dir, "combined.csv")))
}
