package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

type sampleInput struct {
	Name  string `json:"name" validate:"required,max=10"`
	Color string `json:"color" validate:"omitempty,oneof=red blue"`
	Page  int    `json:"page" validate:"gte=0"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(sampleInput{Name: "Kindle", Color: "red", Page: 3})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	err := Validate(sampleInput{Name: "", Color: "green", Page: -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be one of: red blue", details["color"])
	assert.Equal(t, "must be greater than or equal to 0", details["page"])
}

func TestValidate_MaxLength(t *testing.T) {
	err := Validate(sampleInput{Name: "a name that is too long"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details := domainErr.Details.(map[string]string)
	assert.Equal(t, "must not exceed 10 characters", details["name"])
}

type handleInput struct {
	Username *string `json:"username" validate:"omitempty,username"`
}

func TestValidate_Username(t *testing.T) {
	tests := []struct {
		username string
		valid    bool
	}{
		{"jane_doe", true},
		{"j.d-42", true},
		{"abc", true},
		{"ab", false},
		{"Jane", false},
		{"_jane", false},
		{"jane doe", false},
		{"a-very-long-handle-that-goes-past-32", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			username := tt.username
			err := Validate(handleInput{Username: &username})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)
		})
	}

	assert.NoError(t, Validate(handleInput{}))
}
