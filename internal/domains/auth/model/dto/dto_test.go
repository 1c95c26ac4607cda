package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dinebook/infras/jwt"
	"dinebook/internal/domains/auth/model/dto"
	"dinebook/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, "access", response.AccessToken)
	assert.Equal(t, "refresh", response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	var response dto.RefreshTokenResponse
	response.FromTokenPair(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"})

	assert.Equal(t, "new-access", response.AccessToken)
	assert.Equal(t, "new-refresh", response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	name := "Ana"
	req := dto.RegisterRequest{Email: "ana@example.com", Password: "secret123", FullName: &name}

	user := req.ToUserModel("hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, constant.RoleCustomer, user.Role)
	assert.Equal(t, "hashed", user.Password)
	assert.True(t, user.IsActive)
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
	assert.Equal(t, &name, user.FullName)
}
