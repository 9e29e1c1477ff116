package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"chefwho/internal/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Normalize maps configured database names onto the driver families this package supports.
func Normalize(dbType string) (string, error) {
	switch strings.ToLower(dbType) {
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "mysql":
		return DriverMySQL, nil
	case "postgres", "postgresql", "pgx":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported driver: %s", dbType)
	}
}

// Open connects to the database selected by dbType using its entry in cfg.Databases.
func Open(dbType string, cfg *config.Config) (*sql.DB, error) {
	dbCfg, ok := cfg.Databases[dbType]
	if !ok {
		return nil, fmt.Errorf("database config for %s not found", dbType)
	}
	driver, err := Normalize(dbType)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	switch driver {
	case DriverSQLite:
		if dbCfg.DSN == "" {
			return nil, fmt.Errorf("sqlite dsn must be provided")
		}
		db, err = sql.Open("sqlite3", dbCfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		if dbCfg.DSN == ":memory:" {
			// every pooled connection would otherwise get its own empty database
			db.SetMaxOpenConns(1)
		}
	case DriverMySQL:
		dsn := dbCfg.DSN
		if dsn == "" {
			params := dbCfg.Params
			if params == "" {
				params = "parseTime=true"
			}
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
				dbCfg.Username,
				dbCfg.Password,
				dbCfg.Host,
				dbCfg.Port,
				dbCfg.DBName,
				params,
			)
		}
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql database: %w", err)
		}
	case DriverPostgres:
		if dbCfg.DSN == "" {
			return nil, fmt.Errorf("postgres dsn must be provided")
		}
		db, err = sql.Open("pgx", dbCfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
		db.SetMaxOpenConns(4)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Rebind rewrites '?' placeholders into the driver's native form.
func Rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// TextCast returns an expression that renders column as text on the given driver.
func TextCast(driver, column string) string {
	if driver == DriverMySQL {
		return fmt.Sprintf("CAST(%s AS CHAR)", column)
	}
	return fmt.Sprintf("CAST(%s AS TEXT)", column)
}

// Migrate ensures the items and chatlogs tables are present.
func Migrate(db *sql.DB, dbType string) error {
	driver, err := Normalize(dbType)
	if err != nil {
		return fmt.Errorf("unsupported driver for migration: %s", dbType)
	}
	var stmts []string
	switch driver {
	case DriverSQLite:
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS items (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id TEXT NOT NULL,
				name TEXT,
				days_left INTEGER,
				status TEXT,
				qty_value REAL,
				qty_unit TEXT,
				storage TEXT DEFAULT 'counter',
				updated_at DATETIME
			)`,
			`CREATE INDEX IF NOT EXISTS idx_items_user ON items(user_id)`,
			`CREATE TABLE IF NOT EXISTS chatlogs (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				message_type TEXT NOT NULL,
				name TEXT NOT NULL,
				message TEXT NOT NULL,
				created_at DATETIME NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_chatlogs_user ON chatlogs(user_id)`,
		}
	case DriverMySQL:
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS items (
				id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
				user_id VARCHAR(64) NOT NULL,
				name VARCHAR(255),
				days_left INT,
				status VARCHAR(64),
				qty_value DOUBLE,
				qty_unit VARCHAR(32),
				storage VARCHAR(64) DEFAULT 'counter',
				updated_at DATETIME NULL,
				PRIMARY KEY (id),
				INDEX idx_items_user (user_id)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS chatlogs (
				id CHAR(36) NOT NULL,
				user_id VARCHAR(64) NOT NULL,
				message_type VARCHAR(32) NOT NULL,
				name VARCHAR(255) NOT NULL,
				message TEXT NOT NULL,
				created_at DATETIME NOT NULL,
				PRIMARY KEY (id),
				INDEX idx_chatlogs_user (user_id)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		}
	case DriverPostgres:
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS items (
				id BIGSERIAL PRIMARY KEY,
				user_id UUID NOT NULL,
				name TEXT,
				days_left INTEGER,
				status TEXT,
				qty_value DOUBLE PRECISION,
				qty_unit TEXT,
				storage TEXT DEFAULT 'counter',
				updated_at TIMESTAMPTZ
			)`,
			`CREATE INDEX IF NOT EXISTS idx_items_user ON items(user_id)`,
			`CREATE TABLE IF NOT EXISTS chatlogs (
				id UUID PRIMARY KEY,
				user_id TEXT NOT NULL,
				message_type TEXT NOT NULL,
				name TEXT NOT NULL,
				message TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_chatlogs_user ON chatlogs(user_id)`,
		}
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate (%s): %w", driver, err)
		}
	}
	return nil
}
