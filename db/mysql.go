// 2026 Craig Tomkow

package db

import (
	"context"
	"github.com/ctomkow/devdb/conf"
	"github.com/ctomkow/devdb/exec"
	"github.com/ctomkow/devdb/util"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const queryDatabaseExists = "SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?"

// Runner runs the external tools: git, mysqladmin and the import/export pipelines
type Runner interface {
	RunAsUser(ctx context.Context, command ...string) (string, error)
	Passthru(ctx context.Context, p exec.Pipeline) error
}

// SettingsStore reads and writes the whole settings document
type SettingsStore interface {
	Read() (conf.Settings, error)
	Write(settings conf.Settings) error
}

// Export is the outcome of ExportDatabase
type Export struct {
	Database string
	Filename string
}

// Mysql manages the lifecycle of project databases on the local server
type Mysql struct {
	conn     *Connection
	runner   Runner
	settings SettingsStore

	getwd func() (string, error)
	now   func() time.Time
}

// instantiate a new mysql manager. The manager owns conn; release it with Close
func NewMysql(conn *Connection, runner Runner, settings SettingsStore) *Mysql {
	return &Mysql{
		conn:     conn,
		runner:   runner,
		settings: settings,
		getwd:    os.Getwd,
		now:      time.Now,
	}
}

func (m *Mysql) Close() error {
	return m.conn.Close()
}

// SetRootPassword changes the root password with mysqladmin and stores the new one.
// The stored password is left untouched when mysqladmin fails.
func (m *Mysql) SetRootPassword(ctx context.Context, oldPwd string, newPwd string) error {
	_, err := m.runner.RunAsUser(ctx, "mysqladmin", "-u", "root", "--password="+oldPwd, "password", newPwd)
	if err != nil {
		glog.Warning("Setting mysql password for root user failed. ", err)
		return err
	}

	settings, err := m.settings.Read()
	if err != nil {
		return err
	}
	settings.SetRootPassword(newPwd)

	return m.settings.Write(settings)
}

// DirName returns the name of the git repository the working directory is in,
// falling back to the name of the working directory itself
func (m *Mysql) DirName(ctx context.Context) string {
	out, err := m.runner.RunAsUser(ctx, "git", "rev-parse", "--show-toplevel")
	if err == nil {
		if top := strings.TrimSpace(out); top != "" {
			return filepath.Base(top)
		}
	}

	wd, err := m.getwd()
	if err != nil {
		glog.Warning(err)
		return ""
	}

	return filepath.Base(strings.TrimSpace(wd))
}

// DatabaseName returns name, or the project's directory name when name is empty
func (m *Mysql) DatabaseName(ctx context.Context, name string) string {
	if name != "" {
		return name
	}

	name = m.DirName(ctx)
	glog.V(1).Info("resolved database name: " + name)

	return name
}

// create the database if it doesn't exist
func (m *Mysql) CreateDatabase(ctx context.Context, name string) (string, error) {
	name = m.DatabaseName(ctx, name)

	quoted, err := QuoteName(name)
	if err != nil {
		glog.Warning(err)
		return "", err
	}

	if err = m.conn.Exec(ctx, "CREATE DATABASE IF NOT EXISTS "+quoted); err != nil {
		return "", err
	}

	return name, nil
}

// drop the database
func (m *Mysql) DropDatabase(ctx context.Context, name string) (string, error) {
	name = m.DatabaseName(ctx, name)

	quoted, err := QuoteName(name)
	if err != nil {
		glog.Warning(err)
		return "", err
	}

	if err = m.conn.Exec(ctx, "DROP DATABASE "+quoted); err != nil {
		return "", err
	}

	return name, nil
}

// check the schema catalog for the database
func (m *Mysql) DatabaseExists(ctx context.Context, name string) (bool, error) {
	name = m.DatabaseName(ctx, name)

	count, err := m.conn.Count(ctx, queryDatabaseExists, name)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// drop the database and import it again from file
func (m *Mysql) ReimportDatabase(ctx context.Context, file string, name string) (string, error) {
	return m.ImportDatabase(ctx, file, name, true)
}

// ImportDatabase loads file into the database, creating it first. With drop the database is
// dropped beforehand; a failed drop is logged and the import carries on. Nothing is rolled back:
// a failed load after a drop leaves the database empty or absent.
func (m *Mysql) ImportDatabase(ctx context.Context, file string, name string, drop bool) (string, error) {
	name = m.DatabaseName(ctx, name)

	if _, err := os.Stat(file); err != nil {
		return "", err
	}

	if drop {
		if _, err := m.DropDatabase(ctx, name); err != nil {
			glog.Warning("could not drop " + name + " before import, continuing")
		}
	}

	if _, err := m.CreateDatabase(ctx, name); err != nil {
		return "", errors.Wrapf(err, "create %s", name)
	}

	p := exec.MysqlImport(file, m.conn.Endpoint().Socket, name)
	if err := m.runner.Passthru(ctx, p); err != nil {
		return "", errors.Wrapf(err, "import %s into %s", file, name)
	}

	return name, nil
}

// ExportDatabase dumps the database into a gzip compressed file.
// See ExportFilename for how the filename is chosen.
func (m *Mysql) ExportDatabase(ctx context.Context, filename string, name string) (*Export, error) {
	name = m.DatabaseName(ctx, name)
	if _, err := QuoteName(name); err != nil {
		glog.Warning(err)
		return nil, err
	}
	filename = ExportFilename(filename, name, m.now())

	if err := m.runner.Passthru(ctx, exec.MysqlExport(name, filename)); err != nil {
		return nil, errors.Wrapf(err, "export %s to %s", name, filename)
	}

	return &Export{Database: name, Filename: filename}, nil
}

// ExportFilename normalizes an export filename. An empty name or "-" becomes
// <database>-<timestamp>. Names without ".sql" get it appended, and the result always ends in ".gz".
// Normalizing an already normalized name returns it unchanged.
func ExportFilename(filename string, database string, now time.Time) string {
	if filename == "" || filename == "-" {
		filename = database + "-" + util.TimestampOf(now).Timestamp()
	}

	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".gz") {
		return filename
	}
	if !strings.Contains(lower, ".sql") {
		filename += ".sql"
	}

	return filename + ".gz"
}
