package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateUniqueViolations(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"gorm translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), ErrDuplicate},
		{"postgres sqlstate", &pgconn.PgError{Code: "23505"}, ErrDuplicate},
		{"sqlite message", errors.New("constraint failed: UNIQUE constraint failed: supports.user_id, supports.requirement_id (2067)"), ErrDuplicate},
		{"other postgres error", &pgconn.PgError{Code: "23503"}, nil},
		{"plain error", errors.New("boom"), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translate(tc.err)
			if tc.want != nil {
				assert.ErrorIs(t, got, tc.want)
				return
			}
			assert.Equal(t, tc.err, got)
		})
	}

	assert.NoError(t, translate(nil))
}

func TestPage(t *testing.T) {
	assert.Equal(t, 0, Page{}.Offset())
	assert.Equal(t, 12, Page{}.Limit())
	assert.Equal(t, 40, Page{Page: 3, PerPage: 20}.Offset())
	assert.Equal(t, maxPerPage, Page{PerPage: 1000}.Limit())
}
