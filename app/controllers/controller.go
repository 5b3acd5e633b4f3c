// Package controllers adapts HTTP requests to service calls.
package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/kalaghar/app/services"
	"github.com/shashiranjanraj/kalaghar/pkg/middleware"
)

// caller builds the service identity from the verified token.
func caller(r *http.Request) services.Caller {
	c, ok := middleware.ClaimsFromCtx(r)
	if !ok {
		return services.Caller{}
	}
	return services.Caller{ID: c.UserID(), Name: c.Name, Role: c.Role}
}
