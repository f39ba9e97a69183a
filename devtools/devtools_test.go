package devtools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctomkow/devdb/conf"
	"github.com/ctomkow/devdb/db"
	"github.com/ctomkow/devdb/driver"
	"github.com/ctomkow/devdb/site"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDatabases struct{}

func (fakeDatabases) CreateDatabase(_ context.Context, name string) (string, error) {
	if name == "" {
		return "shop", nil
	}
	return name, nil
}

type fakeRunner struct{}

func (fakeRunner) RunAsUser(context.Context, ...string) (string, error) { return "", nil }

func newTestDevTools(t *testing.T, project string) *DevTools {
	t.Helper()

	store := conf.NewStore(t.TempDir())
	settings := conf.Settings{"domain": "test"}
	settings.SetRootPassword("secret")
	require.NoError(t, store.Write(settings))

	d := NewDevTools(store, site.NewSite(store), fakeDatabases{}, db.LocalEndpoint, fakeRunner{}, driver.Default())
	d.getwd = func() (string, error) { return project, nil }

	return d
}

func TestDevTools_ConfigureWithoutConfigurer(t *testing.T) {
	project := filepath.Join(t.TempDir(), "shop")
	require.NoError(t, os.MkdirAll(project, 0755))

	configured, err := newTestDevTools(t, project).Configure(context.Background())
	require.NoError(t, err)
	assert.False(t, configured)
}

func TestDevTools_ConfigureLaravel(t *testing.T) {
	project := filepath.Join(t.TempDir(), "shop")
	require.NoError(t, os.MkdirAll(filepath.Join(project, "public"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(project, "artisan"), nil, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(project, "public", "index.php"), nil, 0644))

	configured, err := newTestDevTools(t, project).Configure(context.Background())
	require.NoError(t, err)
	assert.True(t, configured)

	values, err := godotenv.Read(filepath.Join(project, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "http://shop.test", values["APP_URL"])
	assert.Equal(t, "shop", values["DB_DATABASE"])
	assert.Equal(t, "secret", values["DB_PASSWORD"])
}
