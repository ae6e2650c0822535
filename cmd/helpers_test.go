package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simonvc/shopledger/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFileKeepsSuggestedNameInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	name, err := saveFile(&client.File{Name: "../../invoice-x.txt", Body: []byte("total")}, "")
	require.NoError(t, err)
	assert.Equal(t, "invoice-x.txt", name)

	body, err := os.ReadFile(filepath.Join(dir, "invoice-x.txt"))
	require.NoError(t, err)
	assert.Equal(t, "total", string(body))
}

func TestSaveFileHonoursExplicitPath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.xlsx")
	name, err := saveFile(&client.File{Name: "ignored.xlsx", Body: []byte("x")}, out)
	require.NoError(t, err)
	assert.Equal(t, out, name)
	assert.FileExists(t, out)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}
