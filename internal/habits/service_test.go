package habits

import (
	"testing"
	"time"

	"habit-tracker-api/internal/models"
	"habit-tracker-api/internal/store"
	"habit-tracker-api/internal/testutil"

	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	s := store.New(db)
	return NewService(s), s
}

func TestRegister_DuplicateKeepsFirstPassword(t *testing.T) {
	svc, _ := newService(t)

	require.NoError(t, svc.Register("alice", "pw"))
	require.ErrorIs(t, svc.Register("alice", "pw2"), store.ErrDuplicateUsername)

	// The original password still authenticates; the rejected one never will
	session, err := svc.Login("alice", "pw")
	require.NoError(t, err)
	require.Equal(t, "alice", session.Username)

	_, err = svc.Login("alice", "pw2")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_EmptyInput(t *testing.T) {
	svc, _ := newService(t)

	require.ErrorIs(t, svc.Register("", "pw"), ErrEmptyInput)
	require.ErrorIs(t, svc.Register("bob", ""), ErrEmptyInput)
	require.ErrorIs(t, svc.Register("   ", "pw"), ErrEmptyInput)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newService(t)

	require.NoError(t, svc.Register("alice", "pw"))

	// Wrong password and unknown user look identical to the caller
	_, err := svc.Login("alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAddHabit_RoundTrip(t *testing.T) {
	svc, _ := newService(t)

	require.NoError(t, svc.AddHabit(1, "Read", "daily"))

	entries, err := svc.LoadHabits(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Read", entries[0].Name)
	require.Equal(t, models.StatusStarted, entries[0].Status)
	require.Equal(t, "daily", entries[0].Notes)
	require.False(t, entries[0].LoggedAt.IsZero())
}

func TestAddHabit_DuplicateNameAllowed(t *testing.T) {
	svc, _ := newService(t)

	require.NoError(t, svc.AddHabit(1, "Read", ""))
	require.NoError(t, svc.AddHabit(1, "Read", ""))

	entries, err := svc.LoadHabits(1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestLogProgress_UnknownNameCreatesLineage(t *testing.T) {
	svc, _ := newService(t)

	// No AddHabit first: the entry is still written and retrievable
	require.NoError(t, svc.LogProgress(1, "Stretch", models.StatusCompleted))

	entries, err := svc.LoadHabits(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Stretch", entries[0].Name)
	require.Equal(t, models.StatusCompleted, entries[0].Status)
	require.Empty(t, entries[0].Notes)
}

func TestLogProgress_RejectsInvalidStatus(t *testing.T) {
	svc, _ := newService(t)

	require.ErrorIs(t, svc.LogProgress(1, "Read", "finished"), ErrInvalidStatus)
	// Started is reserved for AddHabit
	require.ErrorIs(t, svc.LogProgress(1, "Read", models.StatusStarted), ErrInvalidStatus)
}

func TestLoadHabits_DropsUnparsableDates(t *testing.T) {
	svc, st := newService(t)

	_, err := st.InsertLogEntry(1, "Read", "2025-03-01T08:00:00Z", models.StatusStarted, "")
	require.NoError(t, err)
	_, err = st.InsertLogEntry(1, "Read", "not-a-date", models.StatusCompleted, "")
	require.NoError(t, err)

	entries, err := svc.LoadHabits(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, models.StatusStarted, entries[0].Status)
}

func TestLoadHabits_EmptyForNewUser(t *testing.T) {
	svc, _ := newService(t)

	entries, err := svc.LoadHabits(42)
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestParseDateFlexible_Layouts(t *testing.T) {
	for _, dateStr := range []string{
		"2025-03-01T08:00:00Z",
		"2025-03-01 08:00:00",
		"2025-03-01",
	} {
		parsed, ok := parseDateFlexible(dateStr)
		require.True(t, ok, dateStr)
		require.Equal(t, time.March, parsed.Month())
	}

	_, ok := parseDateFlexible("")
	require.False(t, ok)
	_, ok = parseDateFlexible("yesterday")
	require.False(t, ok)
}
