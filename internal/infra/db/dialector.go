package db

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/controle-financeiro/api/config"
)

// Supported datasource dialects.
const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
	DialectSQLite   = "sqlite"
)

const sqliteForeignKeys = "_pragma=foreign_keys(1)"

// Datasource is a resolved driver DSN.
type Datasource struct {
	Dialect string
	DSN     string
}

// InMemory reports whether the datasource is a private in-memory SQLite database.
func (d Datasource) InMemory() bool {
	return d.Dialect == DialectSQLite && strings.Contains(d.DSN, ":memory:") && !strings.Contains(d.DSN, "cache=shared")
}

// ResolveDatasource picks the dialect from the DATABASE_URL scheme and builds its DSN.
// Credentials from the config are injected when the URL carries none, and
// production connections require TLS.
func ResolveDatasource(cfg *config.DatabaseConfig, production bool) (Datasource, error) {
	raw := strings.TrimSpace(cfg.URL)
	if raw == "" {
		return Datasource{}, errors.New("database URL is empty")
	}
	raw = strings.TrimPrefix(raw, "jdbc:")

	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return postgresDatasource(raw, cfg, production)
	case strings.HasPrefix(raw, "mysql://"):
		return mysqlDatasource(raw, cfg, production)
	case strings.HasPrefix(raw, "sqlite:"), strings.HasPrefix(raw, "file:"):
		return sqliteDatasource(raw), nil
	case !strings.Contains(raw, "://"):
		// A bare host/database is a PostgreSQL address.
		return postgresDatasource("postgres://"+raw, cfg, production)
	default:
		return Datasource{}, fmt.Errorf("unsupported database URL scheme in %q", redact(raw))
	}
}

func postgresDatasource(raw string, cfg *config.DatabaseConfig, production bool) (Datasource, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Datasource{}, fmt.Errorf("invalid postgres URL: %w", err)
	}
	applyCredentials(u, cfg)

	if production {
		query := u.Query()
		if query.Get("sslmode") == "" {
			query.Set("sslmode", "require")
			u.RawQuery = query.Encode()
		}
	}

	dsn, err := pq.ParseURL(u.String())
	if err != nil {
		return Datasource{}, fmt.Errorf("invalid postgres URL: %w", err)
	}
	return Datasource{Dialect: DialectPostgres, DSN: dsn}, nil
}

func mysqlDatasource(raw string, cfg *config.DatabaseConfig, production bool) (Datasource, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Datasource{}, fmt.Errorf("invalid mysql URL: %w", err)
	}
	applyCredentials(u, cfg)

	mc := mysqldriver.NewConfig()
	mc.Net = "tcp"
	mc.Addr = u.Host
	if u.Port() == "" {
		mc.Addr = u.Host + ":3306"
	}
	mc.DBName = strings.TrimPrefix(u.Path, "/")
	mc.User = u.User.Username()
	mc.Passwd, _ = u.User.Password()
	mc.ParseTime = true
	mc.Loc = time.UTC

	query := u.Query()
	if tls := query.Get("tls"); tls != "" {
		mc.TLSConfig = tls
		query.Del("tls")
	} else if production {
		mc.TLSConfig = "true"
	}
	if len(query) > 0 {
		mc.Params = make(map[string]string, len(query))
		for key := range query {
			mc.Params[key] = query.Get(key)
		}
	}

	return Datasource{Dialect: DialectMySQL, DSN: mc.FormatDSN()}, nil
}

func sqliteDatasource(raw string) Datasource {
	dsn := raw
	if !strings.HasPrefix(raw, "file:") {
		dsn = strings.TrimPrefix(strings.TrimPrefix(raw, "sqlite:"), "//")
	}
	if !strings.Contains(dsn, "foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + sqliteForeignKeys
	}
	return Datasource{Dialect: DialectSQLite, DSN: dsn}
}

// applyCredentials fills the user info from DATABASE_USERNAME/DATABASE_PASSWORD
// when the URL does not embed any.
func applyCredentials(u *url.URL, cfg *config.DatabaseConfig) {
	if u.User != nil && u.User.Username() != "" {
		return
	}
	if cfg.Username == "" {
		return
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
		return
	}
	u.User = url.User(cfg.Username)
}

// Dialector returns the gorm dialector for a resolved datasource.
func (d Datasource) Dialector() (gorm.Dialector, error) {
	switch d.Dialect {
	case DialectPostgres:
		return postgres.Open(d.DSN), nil
	case DialectMySQL:
		return mysql.Open(d.DSN), nil
	case DialectSQLite:
		return sqlite.Open(d.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", d.Dialect)
	}
}

// redact hides the password of a URL for error messages.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid>"
	}
	return u.Redacted()
}
