// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return newSQLiteDB(conn, logger.Nop()), mock
}

func TestNewConnect_UnsupportedDriver(t *testing.T) {
	_, err := NewConnect(testContext(), config.DB{Driver: "oracle"}, logger.Nop())
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestDB_Upsert(t *testing.T) {
	db, mock := newTestDB(t)

	opt := models.Option{Name: "theme", Value: "dark", IsSynced: true, UTCDateModified: "now"}

	mock.ExpectExec(`INSERT INTO options \(is_synced,name,utc_date_modified,value\)`).
		WithArgs(int64(1), "theme", "now", "dark").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, db.Upsert(testContext(), models.EntityOptions, opt.Record()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_Upsert_Rejected(t *testing.T) {
	db, mock := newTestDB(t)

	err := db.Upsert(testContext(), "nope", models.Record{"id": "x"})
	require.ErrorIs(t, err, ErrUnknownTable)

	err = db.Upsert(testContext(), models.EntityNotes, models.Record{"title": "x"})
	require.ErrorIs(t, err, ErrEmptyRecord)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_Upsert_ExecError(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectExec("INSERT INTO notes").WillReturnError(errors.New("disk I/O error"))

	err := db.Upsert(testContext(), models.EntityNotes, models.Record{"note_id": "n1"})
	require.ErrorIs(t, err, ErrExecutingStatement)
}

func TestDB_MarkDeleted(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectExec(`UPDATE attributes SET is_deleted = \?, utc_date_modified = \?, delete_id = \? WHERE attribute_id = \?`).
		WithArgs(1, "utc", "del", "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, db.MarkDeleted(testContext(), models.EntityAttributes, "a1", "del", "utc", "local"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_Transactional(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock := newTestDB(t)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM blobs").WithArgs("b1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := db.Transactional(testContext(), func(ctx context.Context) error {
			return db.DeleteBlob(ctx, "b1")
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := newTestDB(t)
		boom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := db.Transactional(testContext(), func(ctx context.Context) error {
			return boom
		})
		require.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested calls share one transaction", func(t *testing.T) {
		db, mock := newTestDB(t)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM blobs").WithArgs("b1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM blobs").WithArgs("b2").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := db.Transactional(testContext(), func(ctx context.Context) error {
			if err := db.DeleteBlob(ctx, "b1"); err != nil {
				return err
			}
			return db.Transactional(ctx, func(ctx context.Context) error {
				return db.DeleteBlob(ctx, "b2")
			})
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock := newTestDB(t)

		mock.ExpectBegin().WillReturnError(errors.New("locked"))

		err := db.Transactional(testContext(), func(ctx context.Context) error { return nil })
		require.ErrorIs(t, err, ErrBeginningTransaction)
	})

	t.Run("commit failure", func(t *testing.T) {
		db, mock := newTestDB(t)

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("busy"))

		err := db.Transactional(testContext(), func(ctx context.Context) error { return nil })
		require.ErrorIs(t, err, ErrCommitingTransaction)
	})

	t.Run("busy database is retried", func(t *testing.T) {
		db, mock := newTestDB(t)
		busy := sqlite3.Error{Code: sqlite3.ErrBusy}

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM blobs").WithArgs("b1").WillReturnError(busy)
		mock.ExpectRollback()
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM blobs").WithArgs("b1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := db.Transactional(testContext(), func(ctx context.Context) error {
			return db.DeleteBlob(ctx, "b1")
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retries are bounded", func(t *testing.T) {
		db, mock := newTestDB(t)
		busy := sqlite3.Error{Code: sqlite3.ErrBusy}

		calls := 0
		for range txMaxRetries + 1 {
			mock.ExpectBegin()
			mock.ExpectRollback()
		}

		err := db.Transactional(testContext(), func(ctx context.Context) error {
			calls++
			return busy
		})
		require.ErrorIs(t, err, busy)
		assert.Equal(t, txMaxRetries+1, calls)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("permanent errors are not retried", func(t *testing.T) {
		db, mock := newTestDB(t)
		constraint := sqlite3.Error{Code: sqlite3.ErrConstraint}

		mock.ExpectBegin()
		mock.ExpectRollback()

		calls := 0
		err := db.Transactional(testContext(), func(ctx context.Context) error {
			calls++
			return constraint
		})
		require.ErrorIs(t, err, constraint)
		assert.Equal(t, 1, calls)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDB_LoadSnapshot(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery("SELECT .* FROM notes WHERE is_deleted").
		WillReturnRows(sqlmock.NewRows(models.NoteColumns).
			AddRow("root", "root", int64(0), "text", "text/html", "blob1", int64(0), nil,
				"2024-01-01 00:00:00.000+0000", "2024-01-01 00:00:00.000+0000",
				"2024-01-01 00:00:00.000Z", "2024-01-01 00:00:00.000Z"))
	mock.ExpectQuery("SELECT .* FROM branches WHERE is_deleted").
		WillReturnRows(sqlmock.NewRows(models.BranchColumns).
			AddRow("none_root", "root", "none", nil, int64(0), int64(1), int64(0), nil, "2024-01-01 00:00:00.000Z"))
	mock.ExpectQuery("SELECT .* FROM attributes WHERE is_deleted").
		WillReturnRows(sqlmock.NewRows(models.AttributeColumns))
	mock.ExpectQuery("SELECT .* FROM options").
		WillReturnRows(sqlmock.NewRows(models.OptionColumns).AddRow("theme", "dark", int64(1), "now"))
	mock.ExpectQuery("SELECT .* FROM etapi_tokens WHERE is_deleted").
		WillReturnRows(sqlmock.NewRows(models.EtapiTokenColumns))

	snap, err := db.LoadSnapshot(testContext())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, snap.Notes, 1)
	assert.Equal(t, "root", snap.Notes[0].NoteID)
	assert.Equal(t, models.NoteTypeText, snap.Notes[0].Type)
	assert.Empty(t, snap.Notes[0].DeleteID)

	require.Len(t, snap.Branches, 1)
	assert.True(t, snap.Branches[0].IsExpanded)
	assert.Empty(t, snap.Branches[0].Prefix)

	assert.Empty(t, snap.Attributes)
	require.Len(t, snap.Options, 1)
	assert.True(t, snap.Options[0].IsSynced)
}

func TestDB_LoadSnapshot_QueryError(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery("SELECT .* FROM notes").WillReturnError(errors.New("no such table: notes"))

	_, err := db.LoadSnapshot(testContext())
	require.ErrorIs(t, err, ErrExecutingQuery)
}

func TestDB_GetNote_NotFound(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery("SELECT .* FROM notes WHERE note_id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(models.NoteColumns))

	_, err := db.GetNote(testContext(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDB_BlobExists(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery("SELECT 1 FROM blobs").WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT 1 FROM blobs").WithArgs("b2").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	ok, err := db.BlobExists(testContext(), "b1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.BlobExists(testContext(), "b2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDB_CountBlobReferences(t *testing.T) {
	db, mock := newTestDB(t)

	for i, table := range []string{"notes", "attachments", "revisions"} {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM " + table).
			WithArgs("b1").
			WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(i)))
	}

	n, err := db.CountBlobReferences(testContext(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_GetDeletedChildBranchIDs(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery("SELECT branch_id FROM branches").
		WithArgs("del", 1, "p1").
		WillReturnRows(sqlmock.NewRows([]string{"branch_id"}).AddRow("p1_a").AddRow("p1_b"))

	ids, err := db.GetDeletedChildBranchIDs(testContext(), "p1", "del")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1_a", "p1_b"}, ids)
}

func TestDB_GetEntityChange(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery("FROM entity_changes").
		WithArgs("n1", "notes").
		WillReturnRows(sqlmock.NewRows([]string{"entity_name", "entity_id", "hash", "is_erased", "is_synced", "utc_date_changed"}).
			AddRow("notes", "n1", "abc", int64(0), int64(1), "now"))

	change, err := db.GetEntityChange(testContext(), models.EntityNotes, "n1")
	require.NoError(t, err)
	assert.Equal(t, models.EntityChange{
		EntityName: models.EntityNotes, EntityID: "n1", Hash: "abc", IsSynced: true, UTCDateChanged: "now",
	}, change)
}

func TestDB_GetOwnerAttachments_ContentLength(t *testing.T) {
	db, mock := newTestDB(t)

	cols := append(append([]string{}, models.AttachmentColumns...), "content_length")
	mock.ExpectQuery("FROM attachments LEFT JOIN blobs").
		WithArgs(0, "n1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("a1", "n1", "file", "text/plain", "f.txt", int64(0), int64(10), "b1",
				int64(0), nil, "local", "utc", nil, int64(42)))

	atts, err := db.GetOwnerAttachments(testContext(), "n1")
	require.NoError(t, err)
	require.Len(t, atts, 1)
	assert.Equal(t, int64(42), atts[0].ContentLength)
	assert.Empty(t, atts[0].UTCDateScheduledForErasureSince)
}

func TestDB_Classify(t *testing.T) {
	db, _ := newTestDB(t)
	assert.Equal(t, NonRetryable, db.Classify(errors.New("x")))
	assert.Equal(t, Retryable, db.Classify(sqlite3.Error{Code: sqlite3.ErrLocked}))
}
