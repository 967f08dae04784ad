// Package schema owns the DDL for the oleander schema. Applying it is a
// full reset, not a migration: existing state under the schema name is
// dropped and recreated unconditionally, so Reset is guarded behind an
// explicit confirmation and a live-data check.
package schema

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var ddl string

var (
	// ErrConfirmRequired indicates Reset was invoked without Options.Confirm.
	ErrConfirmRequired = errors.New("schema: reset requires explicit confirmation")
	// ErrLiveData indicates the users table still holds rows and Options.Force was not set.
	ErrLiveData = errors.New("schema: refusing to reset over live rows")
)

// Options guard the destructive reset.
type Options struct {
	// Confirm acknowledges that all existing state under the oleander
	// schema is dropped.
	Confirm bool
	// Force allows the drop even when live rows exist.
	Force bool
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Statements returns the DDL applied by Reset, in order.
func Statements() []string {
	var stmts []string
	for _, raw := range strings.Split(ddl, ";") {
		if stmt := strings.TrimSpace(raw); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// Reset drops and recreates the oleander schema. It refuses without
// Options.Confirm, and refuses while live rows exist unless Options.Force
// is also set.
func Reset(ctx context.Context, db dbtx, opts Options) error {
	if !opts.Confirm {
		return ErrConfirmRequired
	}
	if !opts.Force {
		count, err := liveRows(ctx, db)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w (%d users)", ErrLiveData, count)
		}
	}
	for _, stmt := range Statements() {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema: apply %q: %w", summarize(stmt), err)
		}
	}
	return nil
}

// Exists reports whether the oleander.users table is present.
func Exists(ctx context.Context, db dbtx) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, `SELECT to_regclass('oleander.users') IS NOT NULL`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("schema: check table: %w", err)
	}
	return exists, nil
}

func liveRows(ctx context.Context, db dbtx) (int64, error) {
	exists, err := Exists(ctx, db)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}
	var count int64
	if err := db.QueryRow(ctx, `SELECT count(*) FROM oleander.users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("schema: count users: %w", err)
	}
	return count, nil
}

func summarize(stmt string) string {
	fields := strings.Fields(stmt)
	if len(fields) > 3 {
		fields = fields[:3]
	}
	return strings.Join(fields, " ")
}
