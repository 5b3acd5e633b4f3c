// Package services holds the gallery's business rules. Services return
// *apperr.Error values; controllers only map them onto responses.
package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/kalaghar/app/repositories"
	"github.com/shashiranjanraj/kalaghar/pkg/apperr"
)

// Caller is the authenticated identity taken from the verified token.
type Caller struct {
	ID   string
	Name string
	Role string
}

const duplicateLogin = "A user with this name and role already exists"

// storeErr translates repository sentinels into client-facing kinds.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return apperr.NotFound(what + " not found")
	case errors.Is(err, repositories.ErrDuplicate):
		return apperr.Conflict(duplicateLogin)
	}
	return apperr.Internal("Internal Server Error", fmt.Errorf("services: %s: %w", what, err))
}
