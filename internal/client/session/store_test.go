package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gynecare/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := OpenDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db), db
}

func sampleSession() *models.Session {
	return &models.Session{
		Token:       "T1",
		TokenExpiry: 1_700_003_600_000,
		User: models.User{
			ID:          7,
			Username:    "anna",
			Email:       "a@b.com",
			FirstName:   "Anna",
			LastName:    "Berg",
			Age:         29,
			PhoneNumber: "+4512345678",
		},
	}
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	want := sampleSession()
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("loaded session mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EmptyStoreReturnsNone(t *testing.T) {
	s, _ := newStore(t)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClear_ThenLoadReturnsNone(t *testing.T) {
	s, db := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSession()))
	require.NoError(t, s.Clear(ctx))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM session_kv`).Scan(&n))
	assert.Zero(t, n)
}

func TestLoad_UnparseableIsNone(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"broken user json", KeyUser, "{not json"},
		{"broken expiry", KeyTokenExpiry, "tomorrow"},
		{"empty token", KeyToken, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, db := newStore(t)
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, sampleSession()))

			_, err := db.Exec(`UPDATE session_kv SET value = ? WHERE key = ?`, tt.value, tt.key)
			require.NoError(t, err)

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestLoad_MissingKeyIsNone(t *testing.T) {
	s, db := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleSession()))

	_, err := db.Exec(`DELETE FROM session_kv WHERE key = ?`, KeyUser)
	require.NoError(t, err)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSave_NilSession(t *testing.T) {
	s, _ := newStore(t)
	require.ErrorIs(t, s.Save(context.Background(), nil), ErrStorage)
}

func TestSave_OverwritesPreviousSession(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSession()))

	next := sampleSession()
	next.Token = "T2"
	next.User.FirstName = "Anne"
	require.NoError(t, s.Save(ctx, next))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T2", got.Token)
	assert.Equal(t, "Anne", got.User.FirstName)
}

func TestSave_FailureRollsBackAndReportsStorageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO session_kv`).WithArgs(KeyToken, "T1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO session_kv`).WithArgs(KeyTokenExpiry, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO session_kv`).WithArgs(KeyUser, sqlmock.AnyArg()).WillReturnError(errors.New("database or disk is full"))
	mock.ExpectRollback()

	err = NewSQLiteStore(db).Save(context.Background(), sampleSession())
	require.ErrorIs(t, err, ErrStorage)
	require.Contains(t, err.Error(), "disk is full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClear_FailureReportsStorageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM session_kv`).WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	err = NewSQLiteStore(db).Clear(context.Background())
	require.ErrorIs(t, err, ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_FailureReportsStorageError(t *testing.T) {
	s, db := newStore(t)
	require.NoError(t, db.Close())

	_, err := s.Load(context.Background())
	require.ErrorIs(t, err, ErrStorage)
}
