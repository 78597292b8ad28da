package entities

import (
	"time"
)

// Profile is the public face of a user. ID is the user id issued by the
// auth service.
type Profile struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Username    string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	DisplayName *string   `gorm:"size:100" json:"display_name"`
	AvatarURL   *string   `gorm:"size:2048" json:"avatar_url"`
	Bio         *string   `gorm:"type:text" json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Name is what other readers see: the display name when set, else the
// username.
func (p Profile) Name() string {
	if p.DisplayName != nil && *p.DisplayName != "" {
		return *p.DisplayName
	}
	return p.Username
}
