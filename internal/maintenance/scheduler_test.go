package maintenance

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeOrphans_DeletesPastRetention(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM images`).
		WithArgs("48 hours").
		WillReturnResult(sqlmock.NewResult(0, 3))

	s := NewScheduler(db, 48*time.Hour)
	n, err := s.PurgeOrphans(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewScheduler_DefaultsRetention(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM images`).
		WithArgs("72 hours").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := NewScheduler(db, 0)
	_, err = s.PurgeOrphans(t.Context())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
