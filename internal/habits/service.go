package habits

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"habit-tracker-api/internal/models"
	"habit-tracker-api/internal/store"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrEmptyInput is returned when a required field is blank.
	ErrEmptyInput = errors.New("required field is empty")

	// ErrInvalidCredentials covers both unknown username and wrong password;
	// callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidStatus is returned when a progress status is outside the
	// allowed set (completed, inprogress, skipped).
	ErrInvalidStatus = errors.New("invalid progress status")
)

// Session is the authenticated context established by a successful login.
type Session struct {
	UserID   uint
	Username string
}

// Service orchestrates the store. It owns credential hashing and the
// string-to-time conversion of stored dates, and nothing else.
type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// now is a small indirection to allow test stubbing if needed.
var now = time.Now

// dateLayouts are tried in order when parsing a stored date. Writes always
// use RFC3339; the extra layouts keep rows imported from elsewhere readable.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateFlexible(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Register creates a new account. The password is bcrypt-hashed before it
// reaches the store. Duplicate usernames fail with store.ErrDuplicateUsername
// and leave the existing account untouched.
func (s *Service) Register(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrEmptyInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.store.InsertUser(username, string(hash))
	return err
}

// Login verifies credentials and returns a session bound to the user's id.
// An unknown username and a wrong password are indistinguishable.
func (s *Service) Login(username, password string) (*Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &Session{UserID: user.ID, Username: user.Username}, nil
}

// AddHabit appends the initial "Started" entry for a habit name. The name is
// deliberately not deduplicated: adding the same name twice produces two
// Started entries that merge under analytics, which groups by name.
func (s *Service) AddHabit(userID uint, name, notes string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyInput
	}

	_, err := s.store.InsertLogEntry(userID, name, now().Format(time.RFC3339), models.StatusStarted, notes)
	return err
}

// LogProgress appends one entry with the chosen status and empty notes.
// The habit name is not checked against existing entries: a name never seen
// before silently starts a new lineage.
func (s *Service) LogProgress(userID uint, name string, status models.HabitStatus) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyInput
	}
	if !models.IsProgressStatus(status) {
		return ErrInvalidStatus
	}

	_, err := s.store.InsertLogEntry(userID, name, now().Format(time.RFC3339), status, "")
	return err
}

// LoadHabits fetches the user's full log history with LoggedAt populated.
// Rows whose date fails to parse are dropped with a warning rather than
// failing the whole load.
func (s *Service) LoadHabits(userID uint) ([]models.HabitLog, error) {
	rows, err := s.store.ListLogEntries(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.HabitLog, 0, len(rows))
	for _, row := range rows {
		t, ok := parseDateFlexible(row.Date)
		if !ok {
			log.Printf("dropping habit log %d: unparsable date %q", row.ID, row.Date)
			continue
		}
		row.LoggedAt = t
		entries = append(entries, row)
	}
	return entries, nil
}
