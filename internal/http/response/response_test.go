package response

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	b, err := json.Marshal(Error("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"boom"}`, string(b))
}

func TestSuccess(t *testing.T) {
	b, err := json.Marshal(Success())
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(b))
}

func TestValidationError(t *testing.T) {
	type request struct {
		Plan string `json:"plan" validate:"required,oneof=weekly monthly"`
	}

	tests := []struct {
		name string
		req  request
		want string
	}{
		{"missing", request{}, "field Plan is a required field"},
		{"not allowed", request{Plan: "yearly"}, "field Plan must be one of: weekly monthly"},
	}

	v := validator.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.want, ValidationError(verrs).Error)
		})
	}
}
