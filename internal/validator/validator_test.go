package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
)

func TestValidateLogin(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(domain.LoginRequest{Identifier: "asha", Password: "pw"}))

	err := v.Validate(domain.LoginRequest{Password: "pw"})
	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "identifier", validation.Field)
	assert.Equal(t, "Identifier is required", validation.Message)
}

func TestValidateSignup(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		req  domain.SignupRequest
		want string
	}{
		{"short username", domain.SignupRequest{Username: "ab", Email: "a@b.co", Password: "longenough"}, "Username must be at least 3 characters"},
		{"bad email", domain.SignupRequest{Username: "asha", Email: "nope", Password: "longenough"}, "Email must be a valid email"},
		{"short password", domain.SignupRequest{Username: "asha", Email: "a@b.co", Password: "short"}, "Password must be at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.want, domain.UserMessage(err))
		})
	}

	assert.NoError(t, v.Validate(domain.SignupRequest{Username: "asha", Email: "a@b.co", Password: "longenough"}))
}
