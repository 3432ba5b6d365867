//go:build cgo_sqlite && cgo

package store

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

func dsn(path string) string {
	return path + "?_busy_timeout=5000"
}

// isConstraintViolation reports CHECK and NOT NULL failures. A NaN rating
// binds as NULL, so it surfaces as the latter.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "check constraint failed") ||
		strings.Contains(msg, "not null constraint failed")
}
