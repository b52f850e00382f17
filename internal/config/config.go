package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Config represents the shell configuration.
type Config struct {
	Phoenix             Phoenix `mapstructure:"phoenix"`
	IgnoreAllNullColumn bool    `mapstructure:"ignore-all-null-column"`
	NullText            string  `mapstructure:"null-text"`
	Format              string  `mapstructure:"format"`
	Log                 Log     `mapstructure:"log"`
	History             History `mapstructure:"history"`
}

// Phoenix holds the engine connection settings.
type Phoenix struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// Keyring enables the password lookup in the OS keyring when Password
	// is empty.
	Keyring bool `mapstructure:"keyring"`
}

// Log configures the statement log.
type Log struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// History configures the interactive history file.
type History struct {
	File string `mapstructure:"file"`
}

// Connection represents a parsed engine connection URL.
type Connection struct {
	Driver   string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Params   url.Values
}

var defaultPorts = map[string]int{
	"postgres": 5432,
	"hive":     10000,
	"mysql":    3306,
}

var schemes = map[string]string{
	"postgres":   "postgres",
	"postgresql": "postgres",
	"hive":       "hive",
	"hive2":      "hive",
	"mysql":      "mysql",
}

// Connection builds the connection for the configured URL, with the
// configured credentials taking precedence over the ones in the URL.
func (c *Config) Connection() (Connection, error) {
	conn, err := ParseDSN(c.Phoenix.URL)
	if err != nil {
		return Connection{}, err
	}
	if c.Phoenix.Username != "" {
		conn.Username = c.Phoenix.Username
	}
	if c.Phoenix.Password != "" {
		conn.Password = c.Phoenix.Password
	}
	return conn, nil
}

// DSN builds a connection string for the connection's driver.
func (c Connection) DSN() string {
	scheme := c.Driver
	if scheme == "postgres" {
		scheme = "postgresql"
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     c.Host,
		Path:     "/" + c.Database,
		RawQuery: c.Params.Encode(),
	}
	if c.Port > 0 {
		u.Host += ":" + strconv.Itoa(c.Port)
	}
	if c.Username != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.Username, c.Password)
		} else {
			u.User = url.User(c.Username)
		}
	}
	return u.String()
}

// DisplayString returns a human-readable summary of the connection without
// the password.
func (c Connection) DisplayString() string {
	s := c.Host
	if c.Port > 0 {
		s += ":" + strconv.Itoa(c.Port)
	}
	s += "/" + c.Database
	if c.Username != "" {
		s = c.Username + "@" + s
	}
	return c.Driver + "://" + s
}

// ParseDSN parses an engine URL such as postgresql://user@host/db or
// hive://host:10000/default into a Connection. A leading "jdbc:" is
// accepted and ignored.
func ParseDSN(dsn string) (Connection, error) {
	u, err := url.Parse(strings.TrimPrefix(strings.TrimSpace(dsn), "jdbc:"))
	if err != nil {
		return Connection{}, fmt.Errorf("invalid DSN: %w", err)
	}

	driver, ok := schemes[strings.ToLower(u.Scheme)]
	if !ok {
		return Connection{}, fmt.Errorf("invalid DSN: unsupported scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return Connection{}, fmt.Errorf("invalid DSN: missing host")
	}

	conn := Connection{
		Driver:   driver,
		Host:     u.Hostname(),
		Database: strings.TrimPrefix(u.Path, "/"),
		Params:   u.Query(),
	}

	if u.User != nil {
		conn.Username = u.User.Username()
		if p, ok := u.User.Password(); ok {
			conn.Password = p
		}
	}

	if portStr := u.Port(); portStr != "" {
		if conn.Port, err = strconv.Atoi(portStr); err != nil {
			return Connection{}, fmt.Errorf("invalid DSN: bad port %q", portStr)
		}
	}
	if conn.Port == 0 {
		conn.Port = defaultPorts[driver]
	}

	return conn, nil
}
