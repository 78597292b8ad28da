package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruckusreads/ruckus/internal/database/profiles"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

// ProfileStore defines database operations for user profiles.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*entities.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update profiles.ProfileUpdate) (*entities.Profile, error)
}

type ProfilesController struct {
	store ProfileStore
}

func NewProfilesController(store ProfileStore) *ProfilesController {
	return &ProfilesController{store: store}
}

// Get returns the user's own profile, or the default one if never saved.
// GET /api/profile
func (pc *ProfilesController) Get(c *gin.Context) {
	userID := GetUserID(c)

	profile, err := pc.store.GetProfile(c.Request.Context(), userID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		profile = profiles.Default(userID)
	} else if err != nil {
		respondError(c, err, "get profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update edits the user's own profile.
// PATCH /api/profile
func (pc *ProfilesController) Update(c *gin.Context) {
	var req profiles.ProfileUpdate
	if !bindJSON(c, &req) {
		return
	}

	profile, err := pc.store.UpdateProfile(c.Request.Context(), GetUserID(c), req)
	if err != nil {
		respondError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}
