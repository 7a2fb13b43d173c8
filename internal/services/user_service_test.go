package services

import (
	"testing"

	"github.com/mkowalczyk/timesheet-api/internal/models"
	"github.com/mkowalczyk/timesheet-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserServiceTest(t *testing.T) (*gorm.DB, *UserService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Campaign{},
		&models.WorkReport{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewUserService(repository.NewUserRepository(db))
}

func TestUserService_CreateUser_GeneratesSequentialLogins(t *testing.T) {
	_, svc := setupUserServiceTest(t)

	first, err := svc.CreateUser(CreateUserInput{
		FirstName: "John",
		LastName:  "Doe",
		Service:   "marketing",
		Password:  "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "JohnDoe1", first.Login)

	second, err := svc.CreateUser(CreateUserInput{
		FirstName: "John",
		LastName:  "Doe",
		Service:   "marketing",
		Password:  "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "JohnDoe2", second.Login)
	assert.NotEqual(t, first.Login, second.Login)
}

func TestUserService_CreateUser_SkipsTakenLogin(t *testing.T) {
	db, svc := setupUserServiceTest(t)

	// Occupy the login the next creation would otherwise pick.
	taken := models.User{
		FirstName:    "John",
		LastName:     "Doe",
		Login:        "JohnDoe2",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&taken).Error)

	user, err := svc.CreateUser(CreateUserInput{
		FirstName: "John",
		LastName:  "Doe",
		Service:   "marketing",
		Password:  "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "JohnDoe3", user.Login)
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	_, svc := setupUserServiceTest(t)

	_, err := svc.CreateUser(CreateUserInput{
		FirstName: "",
		LastName:  "Doe",
		Service:   "marketing",
		Password:  "supersecret",
	})
	assert.ErrorIs(t, err, ErrMissingName)

	_, err = svc.CreateUser(CreateUserInput{
		FirstName: "John",
		LastName:  "Doe",
		Service:   "  ",
		Password:  "supersecret",
	})
	assert.ErrorIs(t, err, ErrMissingService)

	_, err = svc.CreateUser(CreateUserInput{
		FirstName: "John",
		LastName:  "Doe",
		Service:   "marketing",
		Password:  "short",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestUserService_BulkUpdate_AssignsSupervisor(t *testing.T) {
	db, svc := setupUserServiceTest(t)

	boss, err := svc.CreateUser(CreateUserInput{FirstName: "Jane", LastName: "Boss", Service: "sales", Password: "supersecret"})
	require.NoError(t, err)
	worker, err := svc.CreateUser(CreateUserInput{FirstName: "John", LastName: "Doe", Service: "sales", Password: "supersecret"})
	require.NoError(t, err)

	err = svc.BulkUpdate([]UserUpdateInput{
		{UserID: worker.ID, Service: "field sales", SupervisorID: &boss.ID},
	})
	require.NoError(t, err)

	var updated models.User
	require.NoError(t, db.First(&updated, worker.ID).Error)
	assert.Equal(t, "field sales", updated.Service)
	require.NotNil(t, updated.SupervisorID)
	assert.Equal(t, boss.ID, *updated.SupervisorID)
}

func TestUserService_BulkUpdate_RejectsSelfSupervision(t *testing.T) {
	_, svc := setupUserServiceTest(t)

	user, err := svc.CreateUser(CreateUserInput{FirstName: "John", LastName: "Doe", Service: "sales", Password: "supersecret"})
	require.NoError(t, err)

	err = svc.BulkUpdate([]UserUpdateInput{
		{UserID: user.ID, Service: "sales", SupervisorID: &user.ID},
	})
	assert.ErrorIs(t, err, ErrSupervisorCycle)
}

func TestUserService_BulkUpdate_RejectsCycle(t *testing.T) {
	_, svc := setupUserServiceTest(t)

	a, err := svc.CreateUser(CreateUserInput{FirstName: "Aa", LastName: "Aa", Service: "sales", Password: "supersecret"})
	require.NoError(t, err)
	b, err := svc.CreateUser(CreateUserInput{FirstName: "Bb", LastName: "Bb", Service: "sales", Password: "supersecret"})
	require.NoError(t, err)
	c, err := svc.CreateUser(CreateUserInput{FirstName: "Cc", LastName: "Cc", Service: "sales", Password: "supersecret"})
	require.NoError(t, err)

	// a -> b -> c is fine
	require.NoError(t, svc.BulkUpdate([]UserUpdateInput{
		{UserID: a.ID, Service: "sales", SupervisorID: &b.ID},
		{UserID: b.ID, Service: "sales", SupervisorID: &c.ID},
	}))

	// closing the loop c -> a is not
	err = svc.BulkUpdate([]UserUpdateInput{
		{UserID: c.ID, Service: "sales", SupervisorID: &a.ID},
	})
	assert.ErrorIs(t, err, ErrSupervisorCycle)
}

func TestUserService_BulkUpdate_RejectsCycleWithinBatch(t *testing.T) {
	_, svc := setupUserServiceTest(t)

	a, err := svc.CreateUser(CreateUserInput{FirstName: "Aa", LastName: "Aa", Service: "sales", Password: "supersecret"})
	require.NoError(t, err)
	b, err := svc.CreateUser(CreateUserInput{FirstName: "Bb", LastName: "Bb", Service: "sales", Password: "supersecret"})
	require.NoError(t, err)

	err = svc.BulkUpdate([]UserUpdateInput{
		{UserID: a.ID, Service: "sales", SupervisorID: &b.ID},
		{UserID: b.ID, Service: "sales", SupervisorID: &a.ID},
	})
	assert.ErrorIs(t, err, ErrSupervisorCycle)
}

func TestUserService_BulkUpdate_RejectsUnknownSupervisor(t *testing.T) {
	_, svc := setupUserServiceTest(t)

	user, err := svc.CreateUser(CreateUserInput{FirstName: "John", LastName: "Doe", Service: "sales", Password: "supersecret"})
	require.NoError(t, err)

	missing := uint64(9999)
	err = svc.BulkUpdate([]UserUpdateInput{
		{UserID: user.ID, Service: "sales", SupervisorID: &missing},
	})
	assert.ErrorIs(t, err, ErrSupervisorNotFound)
}

func TestUserService_DirectReports_ExcludesOthers(t *testing.T) {
	_, svc := setupUserServiceTest(t)

	boss, err := svc.CreateUser(CreateUserInput{FirstName: "Jane", LastName: "Boss", Service: "sales", Password: "supersecret"})
	require.NoError(t, err)
	report, err := svc.CreateUser(CreateUserInput{FirstName: "John", LastName: "Doe", Service: "sales", Password: "supersecret"})
	require.NoError(t, err)
	_, err = svc.CreateUser(CreateUserInput{FirstName: "Mary", LastName: "Lone", Service: "sales", Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, svc.BulkUpdate([]UserUpdateInput{
		{UserID: report.ID, Service: "sales", SupervisorID: &boss.ID},
	}))

	reports, err := svc.DirectReports(boss.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report.ID, reports[0].ID)
}
