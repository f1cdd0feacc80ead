package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Smith", want: "%smith%"},
		{in: "50%", want: `%50\%%`},
		{in: "a_b", want: `%a\_b%`},
		{in: `back\slash`, want: `%back\\slash%`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, likePattern(tt.in))
		})
	}
}

func TestSearchFilter(t *testing.T) {
	got := searchFilter([]string{"first_name", "email"}, 2)
	assert.Equal(t, "(LOWER(first_name) LIKE $2 OR LOWER(email) LIKE $2)", got)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := withTx(ctx, mock, func(tx pgx.Tx) error { return nil })
		assert.NoError(t, err)
	})

	t.Run("rollback on error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := withTx(ctx, mock, func(tx pgx.Tx) error { return boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("begin fails", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin().WillReturnError(errors.New("no conn"))

		err := withTx(ctx, mock, func(tx pgx.Tx) error { return nil })
		assert.ErrorContains(t, err, "failed to begin transaction")
	})
}
