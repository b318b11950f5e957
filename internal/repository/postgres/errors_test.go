package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"queenzz/internal/domain"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"undefined table", &pgconn.PgError{Code: codeUndefinedTable}, ErrSchemaMissing},
		{"serialization failure", &pgconn.PgError{Code: codeSerializationFailure}, domain.ErrConflict},
		{"deadlock", fmt.Errorf("exec: %w", &pgconn.PgError{Code: codeDeadlockDetected}), domain.ErrConflict},
		{"other", errors.New("connection reset"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapError("save app data", tt.err)
			assert.Contains(t, err.Error(), "save app data")
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, isNoRows(errors.New("boom")))
}
