package pgrepo

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/fsdevblog/aether-shop/internal/domain"
)

func TestConvertErr(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "no rows",
			err:     pgx.ErrNoRows,
			wantErr: domain.ErrRecordNotFound,
		}, {
			name:    "unique violation",
			err:     &pgconn.PgError{Code: "23505"},
			wantErr: domain.ErrDuplicateKey,
		}, {
			name:    "check violation",
			err:     &pgconn.PgError{Code: "23514"},
			wantErr: domain.ErrValidation,
		}, {
			name:    "unknown pg error",
			err:     &pgconn.PgError{Code: "42P01"},
			wantErr: domain.ErrUnknown,
		}, {
			name:    "plain error",
			err:     errors.New("boom"),
			wantErr: domain.ErrUnknown,
		}, {
			name:    "nil",
			err:     nil,
			wantErr: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := convertErr(tc.err, "test %s", tc.name)
			if tc.wantErr == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.wantErr)
		})
	}
}
