package services

import (
	"context"
	"errors"
	"testing"

	"gameshelf/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gormDB, mock
}

func TestTransactionService_Execute(t *testing.T) {
	expectedError := errors.New("slot write failed")

	tests := []struct {
		name        string
		expect      func(mock sqlmock.Sqlmock)
		fn          func(ctx context.Context, tx *gorm.DB) error
		expectError string
	}{
		{
			name: "commits on success",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, tx *gorm.DB) error { return nil },
		},
		{
			name: "rolls back on error",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:          func(ctx context.Context, tx *gorm.DB) error { return expectedError },
			expectError: expectedError.Error(),
		},
		{
			name: "rolls back and recovers on panic",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:          func(ctx context.Context, tx *gorm.DB) error { panic("boom") },
			expectError: "panic during transaction",
		},
		{
			name: "reports a failed commit",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(errors.New("connection reset"))
			},
			fn:          func(ctx context.Context, tx *gorm.DB) error { return nil },
			expectError: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, mock := setupTestDB(t)
			tt.expect(mock)

			service := NewTransactionService(database.DB{SQL: gormDB})
			err := service.Execute(context.Background(), tt.fn)

			if tt.expectError == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.expectError)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
