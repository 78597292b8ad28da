package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFound("library entry abc not found")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrDuplicateEntry))
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("set status: %w", InvalidArgument("unknown status"))

	assert.True(t, Is(err, ErrInvalidArgument))
	assert.Equal(t, CodeInvalidArgument, CodeOf(err))
}

func TestStoreUnavailable_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("disk I/O error")
	err := StoreUnavailable("list entries", cause)

	assert.True(t, Is(err, ErrStoreUnavailable))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list entries: disk I/O error", err.Error())
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code     Code
		expected int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeDuplicateEntry, http.StatusConflict},
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeStoreUnavailable, http.StatusServiceUnavailable},
		{CodeForbidden, http.StatusForbidden},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.HTTPStatus())
		})
	}
}

func TestWithDetails(t *testing.T) {
	base := InvalidArgument("validation failed")
	detailed := base.WithDetails(map[string]string{"name": "is required"})

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]string{"name": "is required"}, detailed.Details)
	assert.True(t, Is(detailed, ErrInvalidArgument))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(fmt.Errorf("boom")))
}
