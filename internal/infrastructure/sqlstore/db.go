// Package sqlstore implementa los puertos de persistencia sobre database/sql
// para MySQL (go-sql-driver) y SQLite (modernc, sin cgo).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/Lecheria-api/internal/domain/milk"
	"github.com/jhoicas/Lecheria-api/pkg/config"
)

// Querier lo cumplen *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open abre y verifica la conexión para el driver dado (mysql | sqlite).
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var name string
	switch driver {
	case config.DriverMySQL:
		name = "mysql"
	case config.DriverSQLite:
		name = "sqlite"
		if dir := filepath.Dir(dsn); dir != "." && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("sqlstore: driver no soportado %q", driver)
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == config.DriverSQLite {
		// SQLite admite un solo escritor.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// isUniqueViolation reconoce duplicados en MySQL (1062) y SQLite.
func isUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// dateParam serializa un día calendario como "YYYY-MM-DD"; funciona igual para DATE (MySQL) y TEXT (SQLite).
func dateParam(t time.Time) string {
	return milk.CalendarDate(t).Format(milk.DateLayout)
}

// parseDate interpreta la columna entry_date según lo que devuelva el driver.
func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return milk.CalendarDate(d), nil
	case string:
		return parseDateString(d)
	case []byte:
		return parseDateString(string(d))
	default:
		return time.Time{}, fmt.Errorf("entry_date: tipo no soportado %T", v)
	}
}

func parseDateString(s string) (time.Time, error) {
	if len(s) >= len(milk.DateLayout) {
		s = s[:len(milk.DateLayout)]
	}
	t, err := time.Parse(milk.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("entry_date %q: %w", s, err)
	}
	return t, nil
}

// parseTimestamp interpreta columnas DATETIME (time.Time, o texto en SQLite / MySQL sin parseTime).
func parseTimestamp(v any) time.Time {
	var s string
	switch d := v.(type) {
	case time.Time:
		return d
	case string:
		s = d
	case []byte:
		s = string(d)
	default:
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
