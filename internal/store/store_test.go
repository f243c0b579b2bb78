package store

import (
	"testing"

	"habit-tracker-api/internal/models"
	"habit-tracker-api/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	return New(db)
}

func TestInsertUser_DuplicateUsername(t *testing.T) {
	s := newStore(t)

	id, err := s.InsertUser("alice", "hash-1")
	require.NoError(t, err)
	require.NotZero(t, id)

	_, err = s.InsertUser("alice", "hash-2")
	require.ErrorIs(t, err, ErrDuplicateUsername)

	// First user's credentials remain untouched by the failed insert
	user, err := s.FindUserByUsername("alice")
	require.NoError(t, err)
	require.Equal(t, "hash-1", user.PasswordHash)
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	s := newStore(t)

	_, err := s.FindUserByUsername("ghost")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInsertAndListLogEntries(t *testing.T) {
	s := newStore(t)

	// No FK check: entries are accepted for a user id with no users row
	_, err := s.InsertLogEntry(7, "Read", "2025-03-01T08:00:00Z", models.StatusStarted, "daily")
	require.NoError(t, err)
	_, err = s.InsertLogEntry(7, "Read", "2025-03-02T08:00:00Z", models.StatusCompleted, "")
	require.NoError(t, err)
	_, err = s.InsertLogEntry(8, "Run", "2025-03-01T08:00:00Z", models.StatusStarted, "")
	require.NoError(t, err)

	entries, err := s.ListLogEntries(7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Read", entries[0].Name)
	require.Equal(t, models.StatusStarted, entries[0].Status)
	require.Equal(t, "daily", entries[0].Notes)
	require.Equal(t, models.StatusCompleted, entries[1].Status)
}

func TestListLogEntries_EmptyForUnknownUser(t *testing.T) {
	s := newStore(t)

	entries, err := s.ListLogEntries(99)
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}
