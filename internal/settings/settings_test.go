package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/employee-directory/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := settings.Load(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), s)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	want := settings.Settings{
		ExportDir:       "/tmp/exports",
		BackupDir:       "/tmp/backups",
		BackupKeep:      5,
		CacheTTLSeconds: 60,
	}
	require.NoError(t, settings.Save(path, want))

	got, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_ttl_seconds: 30\n"), 0o644))

	s, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, s.CacheTTLSeconds)
	assert.Equal(t, settings.Default().ExportDir, s.ExportDir)
	assert.Equal(t, settings.Default().BackupKeep, s.BackupKeep)
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{не yaml"), 0o644))

	s, err := settings.Load(path)
	assert.Error(t, err)
	assert.Equal(t, settings.Default(), s)
}
