package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartservices-app/backend_api/internal/models"
	"github.com/smartservices-app/backend_api/internal/services/users"
	"github.com/smartservices-app/backend_api/internal/utils"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return NewService(users.NewService(db), "test-secret", 60)
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newTestService(t)

	u, err := svc.Users.Register("alice@example.com", "right-password", models.RoleWorker, "Plumber")
	require.NoError(t, err)

	token, got, err := svc.Login("alice@example.com", "right-password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	claims, err := utils.ParseJWT("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "WORKER", claims.Role)
	assert.NotEmpty(t, claims.UserID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Users.Register("real@x.com", "right-password", "", "")
	require.NoError(t, err)

	_, _, errUnknown := svc.Login("nonexistent@x.com", "anything")
	_, _, errWrongPass := svc.Login("real@x.com", "wrongpass")

	assert.ErrorIs(t, errUnknown, users.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, users.ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPass)
}
