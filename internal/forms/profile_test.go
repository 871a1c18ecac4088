package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileInputValidate(t *testing.T) {
	tests := []struct {
		want  Errors
		name  string
		input ProfileInput
	}{
		{
			name:  "empty input is valid",
			input: ProfileInput{},
			want:  Errors{},
		},
		{
			name:  "valid fields",
			input: ProfileInput{Username: "sam", Email: "sam@example.com", Phone: "555-0100"},
			want:  Errors{},
		},
		{
			name:  "username too short",
			input: ProfileInput{Username: "ab"},
			want:  Errors{"username": "Username must be at least 3 characters"},
		},
		{
			name:  "username of whitespace",
			input: ProfileInput{Username: "  a  "},
			want:  Errors{"username": "Username must be at least 3 characters"},
		},
		{
			name:  "email without at sign",
			input: ProfileInput{Email: "sam.example.com"},
			want:  Errors{"email": "Email must be a valid address"},
		},
		{
			name:  "email without domain dot",
			input: ProfileInput{Email: "sam@example"},
			want:  Errors{"email": "Email must be a valid address"},
		},
		{
			name:  "email ending at the at sign",
			input: ProfileInput{Email: "sam@"},
			want:  Errors{"email": "Email must be a valid address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.Validate())
		})
	}
}

func TestProfileInputUpdate(t *testing.T) {
	update := ProfileInput{Username: " sam ", Email: "sam@example.com"}.Update()
	assert.Equal(t, "sam", update.Username)
	assert.Equal(t, "sam@example.com", update.Email)
	assert.Nil(t, update.Profile)

	withPhone := ProfileInput{Phone: "555-0100"}.Update()
	require.NotNil(t, withPhone.Profile)
	assert.Equal(t, "555-0100", withPhone.Profile.Phone)
	assert.Empty(t, withPhone.Username)
}
