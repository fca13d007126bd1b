package postgres

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesBothTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS projects`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS images`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(t.Context(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_StopsOnFirstFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS projects`).
		WillReturnError(errors.New("permission denied"))

	err = Migrate(t.Context(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create projects table")
	require.NoError(t, mock.ExpectationsWereMet())
}
