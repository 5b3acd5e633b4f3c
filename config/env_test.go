package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pin(t *testing.T, key, value string) {
	t.Helper()
	prev := Get(key, "")
	Set(key, value)
	t.Cleanup(func() { Set(key, prev) })
}

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	pin(t, "APP_ENV", "production")
	pin(t, "JWT_SECRET", defaultJWTSecret)
	assert.ErrorIs(t, Validate(), ErrDefaultJWTSecret)

	Set("JWT_SECRET", "a-long-random-deployment-secret")
	assert.NoError(t, Validate())
}

func TestValidateAllowsDefaultSecretLocally(t *testing.T) {
	pin(t, "APP_ENV", "local")
	pin(t, "JWT_SECRET", defaultJWTSecret)
	assert.NoError(t, Validate())
}
