package model

import "time"

// User represents an authenticated user. An account is created either by local
// registration (password hash set) or by a first Google sign-in (google id set);
// a locally registered user may later link a Google identity, holding both.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FullName     string    `json:"full_name,omitempty" gorm:"size:255"`
	PasswordHash string    `json:"-" gorm:"size:255"` // Never expose in JSON
	GoogleID     string    `json:"-" gorm:"size:255;index"`
	AvatarURL    string    `json:"avatar_url,omitempty" gorm:"size:512"`
	Active       bool      `json:"active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Tasks     []Task     `json:"-" gorm:"foreignKey:UserID"`
	Schedules []Schedule `json:"-" gorm:"foreignKey:UserID"`
}
