// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-canvas-sync/internal/config"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/models"
)

func newMockDocumentRepo(t *testing.T) (*documentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	repo := &documentRepository{
		db:     &DB{DB: db, dialect: config.DriverPostgres, errorClassificator: NewPostgresErrorClassifier(), logger: l},
		logger: l,
	}
	return repo, mock
}

func newSQLiteDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewConnectSQLite(context.Background(), config.DB{Driver: config.DriverSQLite}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	return db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestLoadRoom_Success(t *testing.T) {
	repo, mock := newMockDocumentRepo(t)
	at := time.Now().UTC()

	rows := sqlmock.NewRows(roomDocumentColumns).
		AddRow("r1", models.CanvasDataKey, `{"objects":[]}`, int64(3), "a", at)
	mock.ExpectQuery("SELECT (.+) FROM room_documents WHERE room = \\$1").
		WithArgs("r1").
		WillReturnRows(rows)

	entries, err := repo.LoadRoom(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].Version)
	assert.JSONEq(t, `{"objects":[]}`, string(entries[0].Value))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRoom_QueryError(t *testing.T) {
	repo, mock := newMockDocumentRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM room_documents").
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.LoadRoom(context.Background(), "r1")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, err, ErrRetryable)
}

func TestLoadRoom_ScanError(t *testing.T) {
	repo, mock := newMockDocumentRepo(t)

	rows := sqlmock.NewRows(roomDocumentColumns).
		AddRow("r1", "k", "1", "not-a-number", "a", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM room_documents").WillReturnRows(rows)

	_, err := repo.LoadRoom(context.Background(), "r1")
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestSaveEntries_Transaction(t *testing.T) {
	repo, mock := newMockDocumentRepo(t)
	entries := []models.DocumentEntry{
		{Room: "r1", Key: "a", Value: json.RawMessage(`1`), Version: 1, UpdatedAt: time.Now()},
		{Room: "r1", Key: "b", Value: json.RawMessage(`2`), Version: 2, UpdatedAt: time.Now()},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO room_documents").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO room_documents").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveEntries(context.Background(), entries...))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEntries_Empty(t *testing.T) {
	repo, mock := newMockDocumentRepo(t)
	require.NoError(t, repo.SaveEntries(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEntries_Errors(t *testing.T) {
	entry := models.DocumentEntry{Room: "r1", Key: "a", Value: json.RawMessage(`1`), Version: 1}

	tests := []struct {
		name          string
		setup         func(mock sqlmock.Sqlmock)
		wantErr       error
		wantRetryable bool
	}{
		{
			name: "begin fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("boom"))
			},
			wantErr: ErrBeginningTransaction,
		},
		{
			name: "exec deadlock",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO room_documents").WillReturnError(pgError(pgerrcode.DeadlockDetected))
				mock.ExpectRollback()
			},
			wantErr:       ErrExecutingStatement,
			wantRetryable: true,
		},
		{
			name: "exec constraint",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO room_documents").WillReturnError(pgError(pgerrcode.NotNullViolation))
				mock.ExpectRollback()
			},
			wantErr: ErrExecutingStatement,
		},
		{
			name: "commit fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO room_documents").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(errors.New("boom"))
			},
			wantErr: ErrCommitingTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockDocumentRepo(t)
			tt.setup(mock)

			err := repo.SaveEntries(context.Background(), entry)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantRetryable, errors.Is(err, ErrRetryable))
		})
	}
}

func TestDocumentRepository_SQLiteRoundTrip(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewDocumentRepository(db, logger.Nop())
	ctx := context.Background()

	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveEntries(ctx,
		models.DocumentEntry{Room: "r1", Key: "b", Value: json.RawMessage(`2`), Version: 2, Origin: "x", UpdatedAt: at},
		models.DocumentEntry{Room: "r1", Key: "a", Value: json.RawMessage(`{"n":1}`), Version: 5, Origin: "y", UpdatedAt: at},
		models.DocumentEntry{Room: "r2", Key: "a", Value: json.RawMessage(`0`), Version: 1, UpdatedAt: at},
	))

	// an older version never overwrites a newer one
	require.NoError(t, repo.SaveEntries(ctx,
		models.DocumentEntry{Room: "r1", Key: "a", Value: json.RawMessage(`"stale"`), Version: 4, UpdatedAt: at},
		models.DocumentEntry{Room: "r1", Key: "b", Value: json.RawMessage(`3`), Version: 3, UpdatedAt: at},
	))

	entries, err := repo.LoadRoom(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "a", entries[0].Key)
	assert.JSONEq(t, `{"n":1}`, string(entries[0].Value))
	assert.Equal(t, int64(5), entries[0].Version)
	assert.Equal(t, "y", entries[0].Origin)

	assert.Equal(t, "b", entries[1].Key)
	assert.Equal(t, "3", string(entries[1].Value))
	assert.Equal(t, int64(3), entries[1].Version)

	missing, err := repo.LoadRoom(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing)
}
