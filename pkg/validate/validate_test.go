package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/kalaghar/pkg/validate"
)

type signupInput struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"nullable,oneof=Visitor Artist Admin"`
	Email    string `json:"email"    validate:"nullable,email"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{Name: "aanya", Password: "pw", Role: "Artist", Email: "a@b.in"})
	assert.False(t, validate.HasErrors(errs), "%v", errs)
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(signupInput{Name: "   "})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "password")
	assert.NotContains(t, errs, "role", "nullable field left empty")
}

func TestOneOf(t *testing.T) {
	errs := validate.Struct(signupInput{Name: "a", Password: "b", Role: "Curator"})
	assert.Equal(t, "The selected role is invalid.", errs["role"])
}

func TestEmailRule(t *testing.T) {
	errs := validate.Struct(signupInput{Name: "a", Password: "b", Email: "not-an-email"})
	assert.Contains(t, errs, "email")
}

func TestPointerFields(t *testing.T) {
	type patch struct {
		Name  *string `json:"name"  validate:"nullable,min=1,max=5"`
		Price *int64  `json:"price" validate:"nullable,min=0"`
	}

	assert.Empty(t, validate.Struct(patch{}))

	long, neg := "abcdefg", int64(-1)
	errs := validate.Struct(patch{Name: &long, Price: &neg})
	assert.Contains(t, errs, "name")
	assert.Equal(t, "The price must be at least 0.", errs["price"])

	ok := "abc"
	assert.Empty(t, validate.Struct(&patch{Name: &ok}))
}

func TestURLRule(t *testing.T) {
	type in struct {
		Site string `json:"site" validate:"nullable,url"`
	}
	assert.Empty(t, validate.Struct(in{Site: "https://kalaghar.in/a.jpg"}))
	assert.Contains(t, validate.Struct(in{Site: "ftp://x"}), "site")
	assert.Contains(t, validate.Struct(in{Site: "/relative"}), "site")
}
