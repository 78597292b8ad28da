// Package profiles provides database operations for user profiles.
//
// Users are created by the upstream auth service, so a profile row only
// exists once its owner saves it. Readers fall back to Default for users who
// never did.
package profiles

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ruckusreads/ruckus/internal/database"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
	"github.com/ruckusreads/ruckus/internal/validation"
)

const resource = "profile"

// ProfileUpdate is a partial update; nil fields are left unchanged. Blank
// display name, avatar or bio clear the field.
type ProfileUpdate struct {
	Username    *string `json:"username" validate:"omitempty,username"`
	DisplayName *string `json:"display_name" validate:"omitempty,max=100"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,url|len=0"`
	Bio         *string `json:"bio" validate:"omitempty,max=2000"`
}

// Default is the profile shown for a user who has not saved one.
func Default(userID string) *entities.Profile {
	return &entities.Profile{ID: userID, Username: userID}
}

// Repository handles all profile database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new profiles repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetProfile retrieves a user's profile.
func (r *Repository) GetProfile(ctx context.Context, userID string) (*entities.Profile, error) {
	var profile entities.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&profile).Error; err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return &profile, nil
}

// UpdateProfile applies update to the user's profile, creating it on first
// save. A new profile takes the user id as username unless one is given.
func (r *Repository) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*entities.Profile, error) {
	if userID == "" {
		return nil, domainerrors.InvalidArgument("user id is required")
	}
	update = trimmed(update)
	if err := validation.Validate(update); err != nil {
		return nil, err
	}

	var saved entities.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", userID).First(&saved).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			saved = *Default(userID)
			apply(&saved, update)
			return tx.Create(&saved).Error
		}
		if err != nil {
			return err
		}

		apply(&saved, update)
		return tx.Save(&saved).Error
	})
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return &saved, nil
}

func apply(p *entities.Profile, update ProfileUpdate) {
	if update.Username != nil {
		p.Username = *update.Username
	}
	if update.DisplayName != nil {
		p.DisplayName = blankToNil(*update.DisplayName)
	}
	if update.AvatarURL != nil {
		p.AvatarURL = blankToNil(*update.AvatarURL)
	}
	if update.Bio != nil {
		p.Bio = blankToNil(*update.Bio)
	}
}

func trimmed(update ProfileUpdate) ProfileUpdate {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	return ProfileUpdate{
		Username:    trim(update.Username),
		DisplayName: trim(update.DisplayName),
		AvatarURL:   trim(update.AvatarURL),
		Bio:         trim(update.Bio),
	}
}

func blankToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
