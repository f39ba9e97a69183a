package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReadDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "devdb"))

	settings, err := store.Read()
	require.NoError(t, err)

	assert.Equal(t, DefaultDomain, settings.Domain())
	assert.Equal(t, []interface{}{}, settings["paths"], "document shape matches a fresh install")
	assert.Equal(t, DefaultRootPassword, settings.RootPassword())
	assert.Equal(t, DefaultRootPassword, store.RootPassword())
}

func TestStore_WriteRead(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	content := `{"domain": "dev", "paths": ["/home/dev/sites"], "mysql": {"password": "old", "port": 3306}, "php": "8.3"}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0644))

	settings, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "dev", settings.Domain())
	assert.Equal(t, []interface{}{"/home/dev/sites"}, settings["paths"])
	assert.Equal(t, "old", settings.RootPassword())

	settings.SetRootPassword("secret")
	require.NoError(t, store.Write(settings))

	reread, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "secret", reread.RootPassword())
	assert.Equal(t, "8.3", reread["php"], "unknown keys are kept")
	assert.Equal(t, float64(3306), reread["mysql"].(map[string]interface{})["port"], "sibling keys are kept")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestStore_ReadMalformed(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, os.WriteFile(store.Path(), []byte("{"), 0644))

	_, err := store.Read()
	assert.Error(t, err)
	assert.Equal(t, DefaultRootPassword, store.RootPassword())
}

func TestSettings_SetRootPasswordOnEmpty(t *testing.T) {
	settings := Settings{}
	settings.SetRootPassword("secret")

	assert.Equal(t, "secret", settings.RootPassword())
}
