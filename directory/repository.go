package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oleander-db/oleander/internal/platform/db"
)

// Repository defines persistence operations for the user directory.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Create(ctx context.Context, params CreateParams) (*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*User, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUsername(ctx context.Context, username string) error
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

const userColumns = "id, first_name, last_name, username, pwd"

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{db: pool, pool: pool}
}

// WithTx runs fn against a repository bound to a single transaction.
func (r *PGRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &PGRepository{db: tx, pool: r.pool})
	})
}

// Create inserts a row and returns it with the engine-assigned id. The
// unique index on username serializes racing inserts: one wins, the rest
// surface ErrUsernameTaken.
func (r *PGRepository) Create(ctx context.Context, params CreateParams) (*User, error) {
	query := `INSERT INTO oleander.users (first_name, last_name, username, pwd)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	user := &User{}
	err := r.db.QueryRow(ctx, query, params.FirstName, params.LastName, params.Username, params.Pwd).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Username, &user.Pwd)
	if err != nil {
		return nil, classifyWriteError("create user", err)
	}
	return user, nil
}

// Get fetches a user by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*User, error) {
	return r.getWhere(ctx, "id = $1", id)
}

// GetByUsername fetches a user by its unique username.
func (r *PGRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getWhere(ctx, "username = $1", username)
}

func (r *PGRepository) getWhere(ctx context.Context, cond string, arg any) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM oleander.users WHERE %s", userColumns, cond)

	user := &User{}
	err := r.db.QueryRow(ctx, query, arg).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Username, &user.Pwd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("directory: get user: %w", err)
	}
	return user, nil
}

// Update overwrites the fields set in params and returns the stored row.
func (r *PGRepository) Update(ctx context.Context, id int64, params UpdateParams) (*User, error) {
	var sets []string
	var args []any
	argPos := 1

	add := func(column string, value string) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}
	if params.FirstName != nil {
		add("first_name", *params.FirstName)
	}
	if params.LastName != nil {
		add("last_name", *params.LastName)
	}
	if params.Username != nil {
		add("username", *params.Username)
	}
	if params.Pwd != nil {
		add("pwd", *params.Pwd)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: update requires at least one field", ErrConstraint)
	}

	query := fmt.Sprintf("UPDATE oleander.users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), argPos, userColumns)
	args = append(args, id)

	user := &User{}
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Username, &user.Pwd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classifyWriteError("update user", err)
	}
	return user, nil
}

// Delete removes a row by id.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteWhere(ctx, "id = $1", id)
}

// DeleteByUsername removes a row by its unique username.
func (r *PGRepository) DeleteByUsername(ctx context.Context, username string) error {
	return r.deleteWhere(ctx, "username = $1", username)
}

func (r *PGRepository) deleteWhere(ctx context.Context, cond string, arg any) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM oleander.users WHERE "+cond, arg)
	if err != nil {
		return fmt.Errorf("directory: delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func classifyWriteError(op string, err error) error {
	if db.IsUniqueViolation(err) {
		return ErrUsernameTaken
	}
	if db.IsConstraintViolation(err) {
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return fmt.Errorf("directory: %s: %w", op, err)
}

var _ Repository = (*PGRepository)(nil)
