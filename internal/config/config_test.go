package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ledger.db", cfg.DBPath)
	assert.Equal(t, ":8888", cfg.Addr)
	assert.Equal(t, "EGP", cfg.Currency)
	assert.Equal(t, 7, cfg.BackupKeep)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.False(t, cfg.BackupsEnabled())
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SHOPLEDGER_ADDR", ":9999")

	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SHOPLEDGER_CURRENCY=SAR\nBACKUP_CRON=0 3 * * *\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("SHOPLEDGER_CURRENCY")
		os.Unsetenv("BACKUP_CRON")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "SAR", cfg.Currency)
	assert.True(t, cfg.BackupsEnabled())

	_, err = Load(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SHOPLEDGER_CURRENCY", "XYZ")
	_, err := Load("")
	assert.Error(t, err)

	cfg := &Config{DBPath: "x", Currency: "EGP", BackupKeep: -1}
	assert.Error(t, cfg.Validate())
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
