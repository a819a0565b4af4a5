package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *postgresStore) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db, mock, &postgresStore{db: gdb}
}

func TestPostgresTestConnection(t *testing.T) {
	db, mock, st := setupMockDB(t)
	defer db.Close()

	mock.ExpectPing()
	assert.True(t, st.TestConnection(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTestConnectionDown(t *testing.T) {
	db, mock, st := setupMockDB(t)

	mock.ExpectPing().WillReturnError(sql.ErrConnDone)
	assert.False(t, st.TestConnection(context.Background()))

	db.Close()
}

func TestPostgresDatabaseType(t *testing.T) {
	db, _, st := setupMockDB(t)
	defer db.Close()
	assert.Equal(t, "postgres", st.DatabaseType())
}

func TestPostgresFindUserByEmailNotFound(t *testing.T) {
	db, mock, st := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("nobody@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	user, err := st.FindUserByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateContractMissing(t *testing.T) {
	db, mock, st := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "contracts"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	contract, err := st.UpdateContract(context.Background(), "contract_999", map[string]any{
		"status": "SIGNED",
	})
	require.NoError(t, err)
	assert.Nil(t, contract)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "abc", likePattern("ABC"))
	assert.Equal(t, `100\%`, likePattern("100%"))
	assert.Equal(t, `a\_b`, likePattern("a_b"))
	assert.Equal(t, `c\\d`, likePattern(`c\d`))
	assert.Equal(t, "合同", likePattern("合同"))
}
