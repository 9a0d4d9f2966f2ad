// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrUniqueViolation is returned when a write violates a unique constraint.
var ErrUniqueViolation = errors.New("unique constraint violation")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// IsUniqueViolation reports whether err is a unique constraint failure from
// any supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUniqueViolation) {
		return true
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}

	// Other sqlite drivers (used in tests) only expose the message.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// wrapWriteErr tags unique violations with ErrUniqueViolation.
func wrapWriteErr(op string, err error) error {
	if IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrUniqueViolation, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
