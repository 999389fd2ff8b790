package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "tasks_user_id_fkey"}
	checkErr := &pgconn.PgError{Code: "23514", ConstraintName: "tasks_completed_at_consistency"}
	otherPgErr := &pgconn.PgError{Code: "42P01"}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil passes through", in: nil, want: nil},
		{name: "no rows becomes not found", in: sql.ErrNoRows, want: store.ErrNotFound},
		{name: "unique violation becomes duplicate", in: uniqueErr, want: store.ErrDuplicate},
		{name: "foreign key violation becomes invalid entity", in: fkErr, want: store.ErrInvalidEntity},
		{name: "check violation becomes invalid entity", in: checkErr, want: store.ErrInvalidEntity},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tc.in)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
			// The driver error stays reachable for debugging.
			assert.ErrorIs(t, got, tc.in)
		})
	}

	// Unrecognized errors come back unchanged.
	assert.Equal(t, error(otherPgErr), MapError(otherPgErr))
	plain := errors.New("network down")
	assert.Equal(t, plain, MapError(plain))
}

func TestMapErrorWrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, MapError(wrapped), store.ErrDuplicate)
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
}

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrTaskNotFound))
	assert.ErrorIs(t,
		CheckRowsAffected(fakeResult{rows: 0}, store.ErrTaskNotFound),
		store.ErrTaskNotFound)
	assert.Error(t, CheckRowsAffected(fakeResult{err: errors.New("driver")}, store.ErrTaskNotFound))
	assert.Error(t, CheckRowsAffected(nil, store.ErrTaskNotFound))
}
