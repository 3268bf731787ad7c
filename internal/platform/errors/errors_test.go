package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHTTPStatus(t *testing.T) {
	tests := []struct {
		errType ErrorType
		status  int
	}{
		{TypeValidation, http.StatusBadRequest},
		{TypeNotFound, http.StatusNotFound},
		{TypeUnprocessable, http.StatusUnprocessableEntity},
		{TypeInternal, http.StatusInternalServerError},
		{TypeExternal, http.StatusBadGateway},
		{ErrorType("bogus"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errType), func(t *testing.T) {
			e := &Error{Type: tt.errType, Message: "m"}
			assert.Equal(t, tt.status, e.HTTPStatus())
		})
	}
}

func TestErrorStringAndUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	e := InternalError("something broke", cause)

	assert.Equal(t, "internal: something broke: root cause", e.Error())
	assert.ErrorIs(t, e, cause)

	plain := ValidationError("bad input")
	assert.Equal(t, "validation: bad input", plain.Error())
}

func TestWithFieldChaining(t *testing.T) {
	e := ValidationError("bad").WithField("field", "bandwidth").WithField("value", -1)

	assert.Equal(t, "bandwidth", e.Context["field"])
	assert.Equal(t, -1, e.Context["value"])
}

func TestAsStructuredError(t *testing.T) {
	structured := NotFoundError("missing")
	assert.Same(t, structured, AsStructuredError(structured))

	wrapped := AsStructuredError(errors.New("plain"))
	require.NotNil(t, wrapped)
	assert.Equal(t, TypeInternal, wrapped.Type)
}

func TestToResponse(t *testing.T) {
	e := UnprocessableError("cannot classify", errors.New("bad signs")).WithField("row", 3)

	resp := e.ToResponse()
	assert.Equal(t, "cannot classify", resp.Error)
	assert.Equal(t, TypeUnprocessable, resp.Type)
	assert.Equal(t, 3, resp.Context["row"])
}
