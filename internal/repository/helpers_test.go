package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/vegshop-golang/internal/database"
)

func newMockDB(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		raw.Close()
	})
	return sqlx.NewDb(raw, driver), mock
}

func newPostgresMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	return newMockDB(t, database.DriverPostgres)
}
