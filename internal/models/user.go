package models

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	Name         string   `json:"name"`

	// Relations
	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// Profile carries the public-facing vendor data, including the aggregate
// rating the review aggregator maintains. A nil Rating means "not yet rated",
// which is distinct from a rating of zero.
type Profile struct {
	BaseModel
	UserID      string   `gorm:"not null;uniqueIndex" json:"user_id"`
	DisplayName string   `json:"display_name"`
	Headline    string   `json:"headline"`
	AvatarURL   *string  `json:"avatar_url,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}
