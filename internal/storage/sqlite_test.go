package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*SQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLite(db), mock
}

func TestSQLite_Set_UpsertsValue(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store")).
		WithArgs(testKey, `{"duration":900}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Set(context.Background(), testKey, []byte(`{"duration":900}`)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_Get_ReturnsStoredValue(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store WHERE key=?")).
		WithArgs(testKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"duration":2700}`))

	value, ok, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"duration":2700}`, string(value))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_Get_NoRowsIsAbsent(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store")).
		WithArgs(testKey).
		WillReturnError(sql.ErrNoRows)

	value, ok, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestSQLite_Errors_AreWrapped(t *testing.T) {
	store, mock := newMockStore(t)
	diskErr := errors.New("disk I/O error")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store")).WillReturnError(diskErr)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store")).WillReturnError(diskErr)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_store")).WillReturnError(diskErr)

	_, _, err := store.Get(context.Background(), testKey)
	assert.ErrorIs(t, err, diskErr)
	assert.ErrorIs(t, store.Set(context.Background(), testKey, []byte("x")), diskErr)
	assert.ErrorIs(t, store.Delete(context.Background(), testKey), diskErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_Delete_RemovesKey(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_store WHERE key=?")).
		WithArgs(testKey).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), testKey))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "pomodoro.db")
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	exerciseStore(t, store)
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Set(context.Background(), testKey, []byte("kept")))
	value, ok, err := reopened.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kept", string(value))
}
