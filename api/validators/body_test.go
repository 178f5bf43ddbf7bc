package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
)

type samplePayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestDecodeJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"user@example.com","password":"longenough"}`))

	var payload samplePayload
	require.NoError(t, DecodeJSONBody(r, &payload))
	assert.Equal(t, "user@example.com", payload.Email)
}

func TestDecodeJSONBody_malformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecodeJSONBody_unknownFieldRejected(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"user@example.com","password":"longenough","extra":true}`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDecodeJSONBody_validationDetailsUseJSONNames(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"not-an-email","password":"short"}`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 8", details["password"])
}
