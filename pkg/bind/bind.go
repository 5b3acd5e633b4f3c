// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/shashiranjanraj/kalaghar/config"
	"github.com/shashiranjanraj/kalaghar/pkg/apperr"
	"github.com/shashiranjanraj/kalaghar/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 1 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || n <= 0 {
		return 1 << 20
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs validation. Malformed,
// oversized and invalid bodies all come back as an *apperr.Error of kind
// Validation; validation failures carry per-field messages.
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return decodeErr(err)
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return apperr.Invalid(errs)
	}
	return nil
}

// decodeErr turns a decoder failure into a client-facing error without Go
// type names.
func decodeErr(err error) error {
	var (
		maxErr    *http.MaxBytesError
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &maxErr):
		return apperr.Validation(fmt.Sprintf("request body too large (max %d bytes)", maxErr.Limit))
	case errors.Is(err, io.EOF):
		return apperr.Validation("request body is empty")
	case errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.Validation("invalid JSON: unexpected end of input")
	case errors.As(err, &syntaxErr):
		return apperr.Validation("invalid JSON: " + syntaxErr.Error())
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return apperr.Validation("request body must be a JSON object")
		}
		return apperr.Invalid(map[string]string{typeErr.Field: typeMessage(typeErr.Field, typeErr.Type)})
	}
	return apperr.Validation("invalid JSON")
}

func typeMessage(field string, t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return fmt.Sprintf("The %s has the wrong type.", field)
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("The %s must be a whole number.", field)
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("The %s must be a number.", field)
	case reflect.String:
		return fmt.Sprintf("The %s must be a string.", field)
	case reflect.Bool:
		return fmt.Sprintf("The %s must be true or false.", field)
	}
	return fmt.Sprintf("The %s has the wrong type.", field)
}
