package store

import (
	"errors"
	"strings"

	"habit-tracker-api/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateUsername is returned by InsertUser when the username is taken.
var ErrDuplicateUsername = errors.New("username already exists")

// Store owns row-level persistence for users and habit log entries.
// It knows nothing about hashing, sessions or analytics.
type Store struct {
	db *gorm.DB
}

// New wraps an already-migrated gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateSchema idempotently ensures the users and habit_logs tables exist.
// database.InitDB runs this at startup; tests may call it directly.
func (s *Store) CreateSchema() error {
	return s.db.AutoMigrate(&models.User{}, &models.HabitLog{})
}

// InsertUser creates a user row and returns its assigned id.
func (s *Store) InsertUser(username, passwordHash string) (uint, error) {
	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, err
	}
	return user.ID, nil
}

// FindUserByUsername returns the user row or gorm.ErrRecordNotFound.
// Password verification is the service's job; the store never sees
// plaintext credentials.
func (s *Store) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// InsertLogEntry appends one habit log row. The userID is not checked
// against the users table: entries for unknown users are stored as given.
func (s *Store) InsertLogEntry(userID uint, name, date string, status models.HabitStatus, notes string) (uint, error) {
	entry := models.HabitLog{
		UserID: userID,
		Name:   name,
		Date:   date,
		Status: status,
		Notes:  notes,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return 0, err
	}
	return entry.ID, nil
}

// ListLogEntries returns all of a user's entries in insertion order.
// A user with no entries gets an empty slice, not an error.
func (s *Store) ListLogEntries(userID uint) ([]models.HabitLog, error) {
	entries := make([]models.HabitLog, 0)
	if err := s.db.Where("user_id = ?", userID).Order("id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// glebarez/sqlite surfaces constraint failures as plain errors
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
