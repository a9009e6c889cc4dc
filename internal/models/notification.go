package models

import "time"

type Notification struct {
	BaseModel
	UserID  string `gorm:"not null;index" json:"user_id"`
	Type    string `gorm:"type:varchar(40);not null" json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`

	// Optional reference to the entity the notification is about.
	EntityType *string `json:"entity_type,omitempty"`
	EntityID   *string `json:"entity_id,omitempty"`

	ReadAt *time.Time `json:"read_at,omitempty"`
}
