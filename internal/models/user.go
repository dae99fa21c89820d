package models

// User represents the user model in the database
type User struct {
	Base
	// Uniqueness applies to live rows only, so a deleted user's
	// username and email become available again.
	Username     string        `gorm:"size:80;not null;uniqueIndex:idx_users_username,where:deleted_at IS NULL" json:"username"`
	Email        string        `gorm:"size:120;not null;uniqueIndex:idx_users_email,where:deleted_at IS NULL" json:"email"`
	Password     string        `gorm:"size:255;not null" json:"-"`
	Categories   []Category    `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
