package models

// Category represents a user-owned transaction category.
// Names are unique per user (case-sensitive), never globally. The index is
// partial on live rows so a deleted category frees its name.
type Category struct {
	Base
	UserID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_categories_user_name,where:deleted_at IS NULL" json:"user_id"`
	Name   string `gorm:"size:50;not null;uniqueIndex:idx_categories_user_name" json:"name"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
