package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kalaghar/app/models"
	"github.com/shashiranjanraj/kalaghar/app/repositories"
	"github.com/shashiranjanraj/kalaghar/pkg/auth"
)

func TestRouteList(t *testing.T) {
	var out bytes.Buffer
	routeListCmd.SetOut(&out)
	require.NoError(t, routeListCmd.RunE(routeListCmd, nil))

	s := out.String()
	assert.Contains(t, s, "METHOD")
	assert.Contains(t, s, "/api/auth/login")
	assert.Contains(t, s, "orders.store")
	assert.Contains(t, s, "users.destroy")
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()

	u, err := createUser(ctx, store.Users, "root", "s3cret", "", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.True(t, auth.CheckPassword(u.PasswordHash, "s3cret"))

	_, err = createUser(ctx, store.Users, "root", "other", "", models.RoleAdmin)
	assert.ErrorContains(t, err, "already exists")

	_, err = createUser(ctx, store.Users, "x", "y", "", "Curator")
	assert.ErrorContains(t, err, "invalid role")
}
