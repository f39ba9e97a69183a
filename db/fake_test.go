package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/ctomkow/devdb/conf"
	"github.com/ctomkow/devdb/exec"
	"github.com/go-sql-driver/mysql"
)

const fakeDriverName = "devdb-fake"

var (
	fakeServers   = map[string]*fakeServer{}
	fakeServersMu sync.Mutex

	createPattern = regexp.MustCompile("^CREATE DATABASE IF NOT EXISTS `([^`]+)`$")
	dropPattern   = regexp.MustCompile("^DROP DATABASE `([^`]+)`$")
)

func init() {
	sql.Register(fakeDriverName, fakeDriver{})
}

// fakeServer is an in-memory stand-in for the mysql server, keyed by DSN
type fakeServer struct {
	mu         sync.Mutex
	schemas    map[string]bool
	statements []string
	opens      int
	down       bool
}

func (s *fakeServer) log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.statements...)
}

func (s *fakeServer) setDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

type staticPassword string

func (p staticPassword) RootPassword() string { return string(p) }

// newFakeConnection returns a Connection talking to a fresh fakeServer
func newFakeConnection(t *testing.T, schemas ...string) (*Connection, *fakeServer) {
	t.Helper()

	endpoint := LocalEndpoint
	endpoint.Host = strings.ReplaceAll(t.Name(), "/", "_")
	endpoint.Socket = ""

	conn := NewConnection(endpoint, staticPassword(""))
	conn.driverName = fakeDriverName

	srv := &fakeServer{schemas: map[string]bool{}}
	for _, schema := range schemas {
		srv.schemas[schema] = true
	}

	fakeServersMu.Lock()
	fakeServers[conn.DSN()] = srv
	fakeServersMu.Unlock()

	t.Cleanup(func() {
		_ = conn.Close()
		fakeServersMu.Lock()
		delete(fakeServers, conn.DSN())
		fakeServersMu.Unlock()
	})

	return conn, srv
}

type fakeDriver struct{}

func (fakeDriver) Open(dsn string) (driver.Conn, error) {
	fakeServersMu.Lock()
	srv := fakeServers[dsn]
	fakeServersMu.Unlock()
	if srv == nil {
		return nil, fmt.Errorf("no fake server for %s", dsn)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.opens++
	if srv.down {
		return nil, &mysql.MySQLError{Number: 2002, Message: "Can't connect to local MySQL server"}
	}

	return &fakeConn{srv: srv}, nil
}

type fakeConn struct {
	srv *fakeServer
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("prepare not supported: %s", query)
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return nil, fmt.Errorf("transactions not supported")
}

func (c *fakeConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	c.srv.mu.Lock()
	defer c.srv.mu.Unlock()
	c.srv.statements = append(c.srv.statements, query)

	if m := createPattern.FindStringSubmatch(query); m != nil {
		c.srv.schemas[m[1]] = true
		return driver.RowsAffected(1), nil
	}
	if m := dropPattern.FindStringSubmatch(query); m != nil {
		if !c.srv.schemas[m[1]] {
			return nil, &mysql.MySQLError{Number: 1008, Message: "Can't drop database '" + m[1] + "'; database doesn't exist"}
		}
		delete(c.srv.schemas, m[1])
		return driver.RowsAffected(0), nil
	}

	return nil, &mysql.MySQLError{Number: 1064, Message: "You have an error in your SQL syntax"}
}

func (c *fakeConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.srv.mu.Lock()
	defer c.srv.mu.Unlock()
	c.srv.statements = append(c.srv.statements, query)

	if query != queryDatabaseExists || len(args) != 1 {
		return nil, &mysql.MySQLError{Number: 1064, Message: "You have an error in your SQL syntax"}
	}

	rows := &fakeRows{}
	if name, ok := args[0].Value.(string); ok && c.srv.schemas[name] {
		rows.values = append(rows.values, name)
	}

	return rows, nil
}

type fakeRows struct {
	values []string
	next   int
}

func (r *fakeRows) Columns() []string { return []string{"SCHEMA_NAME"} }

func (r *fakeRows) Close() error { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.next >= len(r.values) {
		return io.EOF
	}
	dest[0] = r.values[r.next]
	r.next++
	return nil
}

// fakeRunner records the external commands the manager asks for
type fakeRunner struct {
	commands  [][]string
	pipelines []exec.Pipeline

	outputs     map[string]string
	errs        map[string]error
	passthruErr error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{outputs: map[string]string{}, errs: map[string]error{}}
}

func (r *fakeRunner) RunAsUser(_ context.Context, command ...string) (string, error) {
	r.commands = append(r.commands, command)
	return r.outputs[command[0]], r.errs[command[0]]
}

func (r *fakeRunner) Passthru(_ context.Context, p exec.Pipeline) error {
	r.pipelines = append(r.pipelines, p)
	return r.passthruErr
}

// memorySettings keeps the settings document in memory
type memorySettings struct {
	settings conf.Settings
	writes   int
}

func (s *memorySettings) Read() (conf.Settings, error) {
	copied := conf.Settings{}
	for k, v := range s.settings {
		copied[k] = v
	}
	return copied, nil
}

func (s *memorySettings) Write(settings conf.Settings) error {
	s.settings = settings
	s.writes++
	return nil
}
