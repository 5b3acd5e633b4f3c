package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kalaghar/pkg/apperr"
	"github.com/shashiranjanraj/kalaghar/pkg/bind"
)

type loginInput struct {
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required"`
}

func post(body string) (*httptest.ResponseRecorder, *http.Request) {
	return httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestJSONDecodesValidBody(t *testing.T) {
	w, r := post(`{"name":"aanya","password":"pw"}`)
	var in loginInput
	require.NoError(t, bind.JSON(w, r, &in))
	assert.Equal(t, "aanya", in.Name)
}

func TestJSONValidationFields(t *testing.T) {
	w, r := post(`{"name":"aanya"}`)
	var in loginInput
	err := bind.JSON(w, r, &in)

	require.Error(t, err)
	e := apperr.As(err)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "password")
}

func TestJSONMalformedAndEmpty(t *testing.T) {
	for _, body := range []string{`{"name":`, ``} {
		w, r := post(body)
		var in loginInput
		err := bind.JSON(w, r, &in)
		assert.True(t, apperr.Is(err, apperr.KindValidation), "body %q", body)
	}
}

type priceInput struct {
	Title string `json:"title"`
	Price int64  `json:"price"`
}

func TestJSONWrongTypeIsFieldError(t *testing.T) {
	w, r := post(`{"title":"Dusk","price":1500.5}`)
	var in priceInput
	err := bind.JSON(w, r, &in)

	e := apperr.As(err)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Equal(t, "The price must be a whole number.", e.Fields["price"])
	assert.NotContains(t, e.Error(), "int64")

	w, r = post(`{"title":7}`)
	e = apperr.As(bind.JSON(w, r, &in))
	assert.Equal(t, "The title must be a string.", e.Fields["title"])

	w, r = post(`[1,2]`)
	e = apperr.As(bind.JSON(w, r, &in))
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Empty(t, e.Fields)
}
