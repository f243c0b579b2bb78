package models

import (
	"time"
)

// HabitStatus represents the status recorded by a single log entry
type HabitStatus string

const (
	// StatusStarted is written exactly once when a habit is added.
	StatusStarted HabitStatus = "Started"

	StatusCompleted  HabitStatus = "completed"
	StatusInProgress HabitStatus = "inprogress"
	StatusSkipped    HabitStatus = "skipped"
)

// ProgressStatuses are the statuses a client may log against an existing
// habit. StatusStarted is excluded: it is reserved for habit creation.
var ProgressStatuses = []HabitStatus{StatusCompleted, StatusInProgress, StatusSkipped}

// IsProgressStatus reports whether s is a valid status for a progress entry.
func IsProgressStatus(s HabitStatus) bool {
	for _, valid := range ProgressStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// HabitLog is one append-only log entry. A "habit" has no table of its own:
// it is the set of a user's entries sharing the same Name.
type HabitLog struct {
	ID     uint        `json:"id" gorm:"primaryKey"`
	UserID uint        `json:"-" gorm:"column:user_id;index"`
	Name   string      `json:"name" gorm:"not null"`
	Date   string      `json:"date" gorm:"column:date;not null"`
	Status HabitStatus `json:"status" gorm:"not null"`
	Notes  string      `json:"notes"`

	// LoggedAt is the parsed Date, populated by the habits service when
	// loading. Rows whose Date cannot be parsed never reach callers.
	LoggedAt time.Time `json:"loggedAt" gorm:"-"`
}

// TableName specifies the table name for HabitLog Model
func (HabitLog) TableName() string {
	return "habit_logs"
}
