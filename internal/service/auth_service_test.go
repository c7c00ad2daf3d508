package service

import (
	"errors"
	"testing"

	"github.com/lshigami/canvassing/internal/auth"
	"github.com/lshigami/canvassing/internal/model"
	"github.com/lshigami/canvassing/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	jwtService := auth.NewJWTService("test-secret", 1)
	svc := NewAuthService(userRepo, jwtService)

	user := model.User{Username: "demo", Password: "hunter2", Role: model.RolePartner}
	require.NoError(t, userRepo.Create(&user))

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.SignIn("demo", "hunter2")
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)

		claims, err := jwtService.Validate(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "demo", claims.Username)
		assert.Equal(t, model.RolePartner, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := svc.SignIn("demo", "wrong")
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, "Incorrect password", err.Error())
	})

	t.Run("unknown username", func(t *testing.T) {
		resp, err := svc.SignIn("ghost", "hunter2")
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, "User not found", err.Error())
	})
}
