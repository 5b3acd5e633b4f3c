package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/kalaghar/pkg/apperr"
)

func TestKindStatusAndCode(t *testing.T) {
	cases := []struct {
		err    *apperr.Error
		status int
		code   string
	}{
		{apperr.Validation("x"), http.StatusBadRequest, "validation_error"},
		{apperr.Unauthorized("x"), http.StatusUnauthorized, "unauthorized"},
		{apperr.Forbidden("x"), http.StatusForbidden, "forbidden"},
		{apperr.NotFound("x"), http.StatusNotFound, "not_found"},
		{apperr.Conflict("x"), http.StatusConflict, "conflict"},
		{apperr.Internal("x", nil), http.StatusInternalServerError, "internal_error"},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, c.err.Kind.Status())
		assert.Equal(t, c.code, c.err.Kind.Code())
	}
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", apperr.NotFound("User not found"))
	e := apperr.As(wrapped)
	assert.Equal(t, apperr.KindNotFound, e.Kind)
	assert.True(t, apperr.Is(wrapped, apperr.KindNotFound))
}

func TestAsClassifiesPlainErrorsAsInternal(t *testing.T) {
	cause := errors.New("mongo: connection refused")
	e := apperr.As(cause)
	assert.Equal(t, apperr.KindInternal, e.Kind)
	assert.ErrorIs(t, e, cause)
	assert.NotContains(t, e.Message, "mongo")
}
