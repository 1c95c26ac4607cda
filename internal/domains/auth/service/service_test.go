package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dinebook/config"
	"dinebook/infras/jwt"
	jwtMocks "dinebook/infras/jwt/mocks"
	"dinebook/infras/otel/mocks"
	"dinebook/internal/domains/auth/model/dto"
	"dinebook/internal/domains/auth/service"
	userMocks "dinebook/internal/domains/user/mocks"
	userModel "dinebook/internal/domains/user/model"
	"dinebook/shared/constant"
	"dinebook/shared/failure"
	"dinebook/shared/password"
)

func newService(t *testing.T) (service.Auth, *userMocks.MockUser, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := userMocks.NewMockUser(ctrl)
	tokens := jwtMocks.NewMockJWT(ctrl)

	return service.New(repo, &config.Config{}, mocks.NewOtel(), tokens), repo, tokens
}

func storedUser(t *testing.T, role string, active bool) userModel.User {
	t.Helper()

	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)

	return userModel.User{
		ID:       "u-1",
		Email:    "guest@example.com",
		Password: hash,
		Role:     role,
		IsActive: active,
	}
}

var pair = &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates a customer and signs in", func(t *testing.T) {
		svc, repo, tokens := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, constant.RoleCustomer, user.Role)
				assert.NotEqual(t, "correct-horse", user.Password)
				assert.NoError(t, password.Verify("correct-horse", user.Password))

				return nil
			})
		tokens.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), "guest@example.com", constant.RoleCustomer).Return(pair, nil)

		res, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "guest@example.com", Password: "correct-horse"})

		require.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
		assert.Equal(t, constant.RoleCustomer, res.User.Role)
	})

	t.Run("email taken", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "guest@example.com", Password: "correct-horse"})

		require.Error(t, err)
		assert.Equal(t, failure.KindDuplicateResource, failure.GetKind(err))
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("connection reset"))

		_, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "guest@example.com", Password: "correct-horse"})

		require.Error(t, err)
		assert.True(t, failure.IsRetryable(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name     string
		user     func(t *testing.T) userModel.User
		password string
		wantKind failure.Kind
	}{
		{
			name:     "staff signs in with role claim",
			user:     func(t *testing.T) userModel.User { return storedUser(t, constant.RoleStaff, true) },
			password: "correct-horse",
		},
		{
			name:     "unknown email",
			user:     func(*testing.T) userModel.User { return userModel.User{} },
			password: "correct-horse",
			wantKind: failure.KindUnauthorized,
		},
		{
			name:     "wrong password",
			user:     func(t *testing.T) userModel.User { return storedUser(t, constant.RoleCustomer, true) },
			password: "battery-staple",
			wantKind: failure.KindUnauthorized,
		},
		{
			name:     "deactivated",
			user:     func(t *testing.T) userModel.User { return storedUser(t, constant.RoleCustomer, false) },
			password: "correct-horse",
			wantKind: failure.KindAuthorization,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, tokens := newService(t)

			user := tt.user(t)
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

			if tt.wantKind == "" {
				tokens.EXPECT().GenerateTokenPair(gomock.Any(), user.ID, user.Email, user.Role).Return(pair, nil)
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Contains(t, fields, userModel.FieldLastLogin)

						return errors.New("last login is best effort")
					})
			}

			res, err := svc.Login(context.Background(), dto.LoginRequest{Email: "guest@example.com", Password: tt.password})

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "refresh", res.RefreshToken)
			assert.Equal(t, constant.RoleStaff, res.User.Role)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("rotates tokens", func(t *testing.T) {
		svc, _, tokens := newService(t)

		tokens.EXPECT().RefreshTokens(gomock.Any(), "refresh").Return(pair, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		require.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc, _, tokens := newService(t)

		tokens.EXPECT().RefreshTokens(gomock.Any(), "stale").Return(nil, jwt.ErrInvalidToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "stale"})

		require.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		found    bool
		wantKind failure.Kind
	}{
		{name: "changed", current: "correct-horse", found: true},
		{name: "wrong current password", current: "nope-nope", found: true, wantKind: failure.KindValidation},
		{name: "missing user", current: "correct-horse", wantKind: failure.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)

			user := userModel.User{}
			if tt.found {
				user = storedUser(t, constant.RoleCustomer, true)
			}

			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

			if tt.wantKind == "" {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						hash, _ := fields[userModel.FieldPassword].(string)
						assert.NoError(t, password.Verify("new-password", hash))

						return nil
					})
			}

			err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{CurrentPassword: tt.current, NewPassword: "new-password"}, "u-1")

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
		})
	}
}
