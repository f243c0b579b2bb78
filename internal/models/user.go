package models

// User represents a registered account.
// The password is stored as a bcrypt hash, never in clear text.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"unique;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
