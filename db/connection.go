// 2026 Craig Tomkow

package db

import (
	"context"
	"database/sql"
	"github.com/go-sql-driver/mysql"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"net"
	"os"
	"regexp"
	"strconv"
)

// Endpoint is where the local database server listens
type Endpoint struct {
	Host   string
	Port   uint16
	Socket string
	User   string
	Schema string
}

// the local development server, as installed by the environment
var LocalEndpoint = Endpoint{
	Host:   "127.0.0.1",
	Port:   3306,
	Socket: "/tmp/mysql_3306.sock",
	User:   "root",
	Schema: "mysql",
}

var (
	ErrInvalidName  = errors.New("invalid database name")
	ErrNotConnected = errors.New("connection closed")

	// mysql database names map to directory names; '/', '\' and '.' are not allowed.
	// names are also passed to mysql and mysqldump, so they can't look like an option
	namePattern = regexp.MustCompile(`^[0-9A-Za-z_$][0-9A-Za-z_$-]{0,63}$`)
)

// PasswordSource returns the currently configured root password
type PasswordSource interface {
	RootPassword() string
}

// Connection is a lazily opened connection to the local server. Once opened it is reused
// until Close. A failed attempt is not remembered; the next call tries again.
type Connection struct {
	endpoint Endpoint
	password PasswordSource

	// the opened db connection
	connection *sql.DB
	closed     bool

	driverName string
}

func NewConnection(endpoint Endpoint, password PasswordSource) *Connection {
	return &Connection{
		endpoint:   endpoint,
		password:   password,
		driverName: "mysql",
	}
}

func (c *Connection) Endpoint() Endpoint {
	return c.endpoint
}

// DSN prefers the unix socket when it exists, tcp otherwise
func (c *Connection) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.endpoint.User
	cfg.Passwd = c.password.RootPassword()
	cfg.DBName = c.endpoint.Schema
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.endpoint.Host, strconv.FormatUint(uint64(c.endpoint.Port), 10))

	if c.endpoint.Socket != "" {
		if _, err := os.Stat(c.endpoint.Socket); err == nil {
			cfg.Net = "unix"
			cfg.Addr = c.endpoint.Socket
		}
	}

	return cfg.FormatDSN()
}

// DB returns the open connection, connecting on first use
func (c *Connection) DB(ctx context.Context) (*sql.DB, error) {
	if c.connection != nil {
		return c.connection, nil
	}
	if c.closed {
		return nil, ErrNotConnected
	}

	conn, err := sql.Open(c.driverName, c.DSN())
	if err != nil {
		glog.Warning("Failed to connect to database: ", err)
		return nil, err
	}

	// a single interactive caller; one server session is enough
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		glog.Warning("Failed to connect to database: ", err)
		_ = conn.Close()
		return nil, err
	}

	c.connection = conn

	return conn, nil
}

// Exec runs a statement. Failures are logged with the server's error and returned.
func (c *Connection) Exec(ctx context.Context, query string, args ...interface{}) error {
	conn, err := c.DB(ctx)
	if err != nil {
		return err
	}

	if _, err = conn.ExecContext(ctx, query, args...); err != nil {
		glog.Warning(err)
		return err
	}

	return nil
}

// Count runs a query and returns the number of rows it produced
func (c *Connection) Count(ctx context.Context, query string, args ...interface{}) (int, error) {
	conn, err := c.DB(ctx)
	if err != nil {
		return 0, err
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		glog.Warning(err)
		return 0, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			glog.Error(err)
		}
	}()

	count := 0
	for rows.Next() {
		count++
	}
	if err = rows.Err(); err != nil {
		glog.Warning(err)
		return 0, err
	}

	return count, nil
}

// Close releases the connection. The Connection can not be reopened afterwards.
func (c *Connection) Close() error {
	c.closed = true
	if c.connection == nil {
		return nil
	}

	err := c.connection.Close()
	c.connection = nil

	return err
}

// QuoteName validates a database name against the allow-list and quotes it for use as an identifier
func QuoteName(name string) (string, error) {
	if !namePattern.MatchString(name) {
		return "", errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return "`" + name + "`", nil
}
