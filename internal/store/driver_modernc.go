//go:build !cgo_sqlite || !cgo

package store

import (
	"errors"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const driverName = "sqlite"

func dsn(path string) string {
	return path + "?_pragma=busy_timeout(5000)"
}

// isConstraintViolation reports CHECK and NOT NULL failures. A NaN rating
// binds as NULL, so it surfaces as the latter.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_CHECK, sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "check constraint failed") ||
		strings.Contains(msg, "not null constraint failed")
}
