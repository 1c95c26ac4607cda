package password_test

import (
	"dinebook/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectedErr error
	}{
		{name: "valid password", password: "validPassword123"},
		{name: "special characters", password: "P@ssw0rd!#$%^&*()"},
		{name: "unicode", password: "пароль123"},
		{name: "at the bcrypt limit", password: strings.Repeat("a", password.MaxLength)},
		{name: "empty", password: "", expectedErr: password.ErrEmptyPassword},
		{name: "over the bcrypt limit", password: strings.Repeat("a", 100), expectedErr: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$2a$"))
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	validHash, err := password.Hash("testPassword123")
	require.NoError(t, err)

	tests := []struct {
		name        string
		password    string
		hash        string
		expectedErr error
	}{
		{name: "match", password: "testPassword123", hash: validHash},
		{name: "wrong password", password: "wrongPassword", hash: validHash, expectedErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: validHash, expectedErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "testPassword123", hash: "", expectedErr: password.ErrInvalidPassword},
		{name: "malformed hash", password: "testPassword123", hash: "invalid_hash", expectedErr: password.ErrVerifyingPassword},
		{name: "truncated hash", password: "testPassword123", hash: validHash[:10], expectedErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expectedErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("samePassword")
	require.NoError(t, err)

	second, err := password.Hash("samePassword")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, password.Verify("samePassword", first))
	assert.NoError(t, password.Verify("samePassword", second))
}
