package persistence

import (
	"context"
	"regexp"
	"testing"
	"time"

	"gameshelf/internal/database"
	"gameshelf/internal/repositories"
	"gameshelf/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupSQLSlot(t *testing.T) (*SQLSlot, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	db := database.DB{SQL: gormDB}
	slot := NewSQLSlot(db, services.NewTransactionService(db), repositories.NewStateSlotRepository())
	return slot, mock
}

func TestSQLSlot_Write(t *testing.T) {
	slot, mock := setupSQLSlot(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "state_slots"`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), testKey, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := slot.Write(context.Background(), testKey, []byte(`{"wantToPlay":[],"finished":[],"abandoned":[]}`))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSlot_Read(t *testing.T) {
	slot, mock := setupSQLSlot(t)
	document := `{"wantToPlay":[],"finished":[],"abandoned":[]}`

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "state_slots" WHERE key = $1`)).
		WithArgs(testKey, 1).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "created_at", "updated_at", "key", "value"}).
				AddRow(1, time.Now(), time.Now(), testKey, []byte(document)),
		)

	data, found, err := slot.Read(context.Background(), testKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, document, string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSlot_ReadMissingRow(t *testing.T) {
	slot, mock := setupSQLSlot(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "state_slots" WHERE key = $1`)).
		WithArgs(testKey, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value"}))

	adapter := New(slot, testKey)
	state, err := adapter.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.WantToPlay)
	assert.NoError(t, mock.ExpectationsWereMet())
}
