package schema

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeDB struct {
	tableExists bool
	liveRows    int64
	executed    []string
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.executed = append(f.executed, sql)
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if strings.Contains(sql, "to_regclass") {
		return fakeRow{scan: func(dest ...any) error {
			*(dest[0].(*bool)) = f.tableExists
			return nil
		}}
	}
	return fakeRow{scan: func(dest ...any) error {
		*(dest[0].(*int64)) = f.liveRows
		return nil
	}}
}

func TestStatementsOrder(t *testing.T) {
	stmts := Statements()
	require.Len(t, stmts, 3)
	assert.True(t, strings.HasPrefix(stmts[0], "DROP SCHEMA IF EXISTS oleander"))
	assert.True(t, strings.HasPrefix(stmts[1], "CREATE SCHEMA oleander"))
	assert.True(t, strings.HasPrefix(stmts[2], "CREATE TABLE oleander.users"))
	assert.Contains(t, stmts[2], "username VARCHAR(200) NOT NULL UNIQUE")
}

func TestResetRequiresConfirmation(t *testing.T) {
	db := &fakeDB{}

	err := Reset(context.Background(), db, Options{})
	require.ErrorIs(t, err, ErrConfirmRequired)
	assert.Empty(t, db.executed, "no DDL may run without confirmation")
}

func TestResetRefusesLiveRows(t *testing.T) {
	db := &fakeDB{tableExists: true, liveRows: 7}

	err := Reset(context.Background(), db, Options{Confirm: true})
	require.ErrorIs(t, err, ErrLiveData)
	assert.Empty(t, db.executed)
}

func TestResetAppliesOnFreshDatabase(t *testing.T) {
	db := &fakeDB{tableExists: false}

	require.NoError(t, Reset(context.Background(), db, Options{Confirm: true}))
	assert.Equal(t, Statements(), db.executed)
}

func TestResetForceSkipsLiveRowGuard(t *testing.T) {
	db := &fakeDB{tableExists: true, liveRows: 7}

	require.NoError(t, Reset(context.Background(), db, Options{Confirm: true, Force: true}))
	assert.Equal(t, Statements(), db.executed)
}

func TestExists(t *testing.T) {
	exists, err := Exists(context.Background(), &fakeDB{tableExists: true})
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = Exists(context.Background(), &fakeDB{tableExists: false})
	require.NoError(t, err)
	assert.False(t, exists)
}
