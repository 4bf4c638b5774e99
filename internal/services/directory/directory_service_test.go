package directory

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartservices-app/backend_api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []models.User{
		{Email: "maid.jkt@x.com", Password: "h", Role: models.RoleWorker, City: "Jakarta", ServiceCategory: "Maid"},
		{Email: "maid.bdg@x.com", Password: "h", Role: models.RoleWorker, City: "Bandung", ServiceCategory: "Maid"},
		{Email: "plumber.jkt@x.com", Password: "h", Role: models.RoleWorker, City: "Jakarta", ServiceCategory: "Plumber"},
		{Email: "customer@x.com", Password: "h", Role: models.RoleCustomer, City: "Jakarta"},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
}

func TestFindByRoleNoFilters(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	svc := NewService(db, nil)

	got, err := svc.FindByRole(context.Background(), RoleFilter{Role: "WORKER"})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = svc.FindByRole(context.Background(), RoleFilter{Role: "CUSTOMER"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFindByRoleCityAndCategory(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	svc := NewService(db, nil)

	city := "Jakarta"
	category := "Maid"

	got, err := svc.FindByRole(context.Background(), RoleFilter{Role: "WORKER", City: &city})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.FindByRole(context.Background(), RoleFilter{Role: "WORKER", Category: &category})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.FindByRole(context.Background(), RoleFilter{Role: "WORKER", City: &city, Category: &category})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "maid.jkt@x.com", got[0].Email)
}

func TestUnknownCityMeansNoCityFilter(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	svc := NewService(db, nil)

	city := CityUnknown
	category := "Maid"

	got, err := svc.FindByRole(context.Background(), RoleFilter{Role: "WORKER", City: &city, Category: &category})
	require.NoError(t, err)
	// both maids, whatever their city
	assert.Len(t, got, 2)
}

func TestFindByRoleNoMatches(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	svc := NewService(db, nil)

	category := "Electrician"
	got, err := svc.FindByRole(context.Background(), RoleFilter{Role: "WORKER", Category: &category})
	require.NoError(t, err)
	assert.Empty(t, got)
}
