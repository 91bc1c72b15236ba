package service

import (
	"context"
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth() *AuthService {
	return NewAuthService(StaticAuthenticator{
		Email:    "owner@store.example",
		Password: "secret123",
		Name:     "Store Admin",
	}, nil, nil)
}

func TestLoginExactPairOnly(t *testing.T) {
	auth := newTestAuth()
	ctx := context.Background()

	cases := []struct {
		email    string
		password string
	}{
		{"owner@store.example", "wrong"},
		{"other@store.example", "secret123"},
		{"", ""},
	}
	for _, tc := range cases {
		_, err := auth.Login(ctx, tc.email, tc.password)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, auth.Current())
	}

	user, err := auth.Login(ctx, "owner@store.example", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "Store Admin", user.Name)
	assert.True(t, auth.IsAdmin())
}

func TestFailedLoginLeavesSessionUntouched(t *testing.T) {
	auth := newTestAuth()
	ctx := context.Background()

	_, err := auth.Login(ctx, "owner@store.example", "secret123")
	require.NoError(t, err)

	_, err = auth.Login(ctx, "owner@store.example", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotNil(t, auth.Current())
	assert.True(t, auth.IsAdmin())
}

func TestLogoutClearsSession(t *testing.T) {
	auth := newTestAuth()

	_, err := auth.Login(context.Background(), "owner@store.example", "secret123")
	require.NoError(t, err)

	auth.Logout()
	assert.Nil(t, auth.Current())
	assert.False(t, auth.IsAdmin())
}

func TestCurrentReturnsCopy(t *testing.T) {
	auth := newTestAuth()

	_, err := auth.Login(context.Background(), "owner@store.example", "secret123")
	require.NoError(t, err)

	u := auth.Current()
	u.Role = models.RoleReseller
	assert.Equal(t, models.RoleAdmin, auth.Current().Role)
}
