package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, IsUniqueViolation(wrapped))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23502"}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsConstraintViolation(t *testing.T) {
	for _, code := range []string{"22001", "23502", "23514"} {
		assert.True(t, IsConstraintViolation(&pgconn.PgError{Code: code}), code)
	}

	assert.False(t, IsConstraintViolation(&pgconn.PgError{Code: "23505"}), "unique violations are classified separately")
	assert.False(t, IsConstraintViolation(errors.New("plain error")))
}
