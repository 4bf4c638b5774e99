package users

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartservices-app/backend_api/internal/models"
	"github.com/smartservices-app/backend_api/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Booking{}))
	return db
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	svc := NewService(newTestDB(t))

	u, err := svc.Register("alice@example.com", "s3cret-pass", models.RoleWorker, "Plumber")
	require.NoError(t, err)

	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "s3cret-pass", u.Password)
	assert.True(t, utils.CheckPassword(u.Password, "s3cret-pass"))
	assert.Equal(t, models.RoleWorker, u.Role)
	assert.Equal(t, "Plumber", u.ServiceCategory)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestRegisterDefaultsRoleToCustomer(t *testing.T) {
	svc := NewService(newTestDB(t))

	u, err := svc.Register("bob@example.com", "password1", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, u.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.Register("alice@example.com", "password1", "", "")
	require.NoError(t, err)

	_, err = svc.Register("alice@example.com", "password2", "", "")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	require.NoError(t, svc.DB.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestVerify(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.Register("alice@example.com", "right-password", "", "")
	require.NoError(t, err)

	u, err := svc.Verify("alice@example.com", "right-password")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)

	_, err = svc.Verify("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyUnknownEmailIndistinguishable(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.Register("real@x.com", "right-password", "", "")
	require.NoError(t, err)

	_, errUnknown := svc.Verify("nonexistent@x.com", "anything")
	_, errWrongPass := svc.Verify("real@x.com", "wrongpass")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPass)
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := NewService(newTestDB(t))

	u, err := svc.Register("worker@example.com", "password1", models.RoleWorker, "Maid")
	require.NoError(t, err)

	city := "Jakarta"
	bio := "10 years of experience"
	updated, err := svc.UpdateProfile(u.ID, UpdateProfileInput{City: &city, Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "Jakarta", updated.City)
	assert.Equal(t, "10 years of experience", updated.Bio)
	// untouched fields stay as they were
	assert.Equal(t, "Maid", updated.ServiceCategory)
	assert.Equal(t, "worker@example.com", updated.Email)

	_, err = svc.UpdateProfile(9999, UpdateProfileInput{City: &city})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateFCMToken(t *testing.T) {
	svc := NewService(newTestDB(t))

	u, err := svc.Register("worker@example.com", "password1", models.RoleWorker, "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateFCMToken(u.ID, "device-token-123"))

	got, err := svc.FindByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "device-token-123", got.FCMToken)

	assert.ErrorIs(t, svc.UpdateFCMToken(9999, "x"), ErrNotFound)
}

func TestRemoveTwice(t *testing.T) {
	svc := NewService(newTestDB(t))

	a, err := svc.Register("a@example.com", "password1", "", "")
	require.NoError(t, err)
	b, err := svc.Register("b@example.com", "password1", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(a.ID))
	assert.ErrorIs(t, svc.Remove(a.ID), ErrNotFound)

	// sibling record untouched
	got, err := svc.FindByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", got.Email)
}
