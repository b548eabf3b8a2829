package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/sarthakjain/storerate/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, apperr.BadRequest("x").Status)
	assert.Equal(t, http.StatusUnauthorized, apperr.Unauthorized("x").Status)
	assert.Equal(t, http.StatusForbidden, apperr.Forbidden("x").Status)
	assert.Equal(t, http.StatusNotFound, apperr.NotFound("x").Status)
	assert.Equal(t, http.StatusConflict, apperr.Conflict("x").Status)
}

func TestFromUnwrapsThroughChain(t *testing.T) {
	base := apperr.NotFound("Store not found")
	wrapped := fmt.Errorf("rating service: %w", base)

	got, ok := apperr.From(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "Store not found", got.Message)
}

func TestFromRejectsPlainErrors(t *testing.T) {
	_, ok := apperr.From(errors.New("boom"))
	assert.False(t, ok)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicated key")
	err := apperr.Conflict("You have already rated this store").Wrap(cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "You have already rated this store", err.Error())
}
