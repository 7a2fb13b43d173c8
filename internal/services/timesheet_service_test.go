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

type timesheetTestEnv struct {
	db       *gorm.DB
	svc      *TimesheetService
	campaign *CampaignService
}

func setupTimesheetTest(t *testing.T) timesheetTestEnv {
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

	campaignRepo := repository.NewCampaignRepository(db)
	userRepo := repository.NewUserRepository(db)

	return timesheetTestEnv{
		db:       db,
		svc:      NewTimesheetService(campaignRepo, userRepo),
		campaign: NewCampaignService(campaignRepo),
	}
}

func (env timesheetTestEnv) createUser(t *testing.T, login string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Login:        login,
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env timesheetTestEnv) createCampaign(t *testing.T, ownerID uint64, name string) *models.Campaign {
	t.Helper()
	campaign, err := env.campaign.Create(CreateCampaignInput{OwnerID: ownerID, Name: name})
	require.NoError(t, err)
	return campaign
}

func (env timesheetTestEnv) totalHours(t *testing.T, campaignID uint64) float64 {
	t.Helper()
	var campaign models.Campaign
	require.NoError(t, env.db.First(&campaign, campaignID).Error)
	return campaign.TotalHours
}

func TestTimesheetService_RecordReport_RecomputesTotal(t *testing.T) {
	env := setupTimesheetTest(t)
	user := env.createUser(t, "worker1")
	campaign := env.createCampaign(t, user.ID, "Q1 Planning")

	_, err := env.svc.RecordReport(campaign.ID, 1, 30)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, env.totalHours(t, campaign.ID), 1e-9)

	_, err = env.svc.RecordReport(campaign.ID, 2, 0)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, env.totalHours(t, campaign.ID), 1e-9)
}

func TestTimesheetService_RecordReport_RejectsNegative(t *testing.T) {
	env := setupTimesheetTest(t)
	user := env.createUser(t, "worker1")
	campaign := env.createCampaign(t, user.ID, "Q1 Planning")

	_, err := env.svc.RecordReport(campaign.ID, -1, 0)
	assert.ErrorIs(t, err, ErrNegativeTime)
}

func TestTimesheetService_Submit_AppliesEntries(t *testing.T) {
	env := setupTimesheetTest(t)
	user := env.createUser(t, "worker1")
	first := env.createCampaign(t, user.ID, "Campaign A")
	second := env.createCampaign(t, user.ID, "Campaign B")

	err := env.svc.Submit(user.ID, []TimesheetEntry{
		{CampaignID: first.ID, Time: "2:15"},
		{CampaignID: second.ID, Time: "1"},
	})
	require.NoError(t, err)

	assert.InDelta(t, 2.25, env.totalHours(t, first.ID), 1e-9)
	assert.InDelta(t, 1.0, env.totalHours(t, second.ID), 1e-9)
}

func TestTimesheetService_Submit_SkipsBlankFields(t *testing.T) {
	env := setupTimesheetTest(t)
	user := env.createUser(t, "worker1")
	first := env.createCampaign(t, user.ID, "Campaign A")
	second := env.createCampaign(t, user.ID, "Campaign B")

	err := env.svc.Submit(user.ID, []TimesheetEntry{
		{CampaignID: first.ID, Time: "1:30"},
		{CampaignID: second.ID, Time: "   "},
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.5, env.totalHours(t, first.ID), 1e-9)
	assert.Equal(t, 0.0, env.totalHours(t, second.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.WorkReport{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTimesheetService_Submit_MalformedEntryAppliesNothing(t *testing.T) {
	env := setupTimesheetTest(t)
	user := env.createUser(t, "worker1")
	first := env.createCampaign(t, user.ID, "Campaign A")
	second := env.createCampaign(t, user.ID, "Campaign B")

	err := env.svc.Submit(user.ID, []TimesheetEntry{
		{CampaignID: first.ID, Time: "2:00"},
		{CampaignID: second.ID, Time: "nonsense"},
	})
	assert.ErrorIs(t, err, ErrMalformedTime)

	// Parse failures reject the submission before any write.
	assert.Equal(t, 0.0, env.totalHours(t, first.ID))
	var count int64
	require.NoError(t, env.db.Model(&models.WorkReport{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestTimesheetService_Submit_RejectsForeignCampaign(t *testing.T) {
	env := setupTimesheetTest(t)
	owner := env.createUser(t, "owner")
	other := env.createUser(t, "other")
	campaign := env.createCampaign(t, owner.ID, "Campaign A")

	err := env.svc.Submit(other.ID, []TimesheetEntry{
		{CampaignID: campaign.ID, Time: "1:00"},
	})
	assert.ErrorIs(t, err, ErrNotCampaignOwner)
}

func TestTimesheetService_Submit_Additive(t *testing.T) {
	env := setupTimesheetTest(t)
	user := env.createUser(t, "worker1")
	campaign := env.createCampaign(t, user.ID, "Campaign A")

	require.NoError(t, env.svc.Submit(user.ID, []TimesheetEntry{{CampaignID: campaign.ID, Time: "1:30"}}))
	require.NoError(t, env.svc.Submit(user.ID, []TimesheetEntry{{CampaignID: campaign.ID, Time: "2:00"}}))

	assert.InDelta(t, 3.5, env.totalHours(t, campaign.ID), 1e-9)
}

func TestCampaignService_DeleteCascadesReports(t *testing.T) {
	env := setupTimesheetTest(t)
	user := env.createUser(t, "worker1")
	campaign := env.createCampaign(t, user.ID, "Campaign A")

	_, err := env.svc.RecordReport(campaign.ID, 2, 15)
	require.NoError(t, err)

	require.NoError(t, env.campaign.Delete(campaign.ID))

	var reportCount int64
	require.NoError(t, env.db.Model(&models.WorkReport{}).
		Where("campaign_id = ?", campaign.ID).
		Count(&reportCount).Error)
	assert.Equal(t, int64(0), reportCount)

	err = env.campaign.Delete(campaign.ID)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCampaignService_Create_DateValidation(t *testing.T) {
	env := setupTimesheetTest(t)
	user := env.createUser(t, "worker1")

	_, err := env.campaign.Create(CreateCampaignInput{OwnerID: user.ID, Name: "A", StartDate: "2026-01-01"})
	assert.ErrorIs(t, err, ErrIncompleteDateRange)

	_, err = env.campaign.Create(CreateCampaignInput{OwnerID: user.ID, Name: "A", StartDate: "01/02/2026", EndDate: "2026-03-01"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = env.campaign.Create(CreateCampaignInput{OwnerID: user.ID, Name: "A", StartDate: "2026-03-01", EndDate: "2026-01-01"})
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	campaign, err := env.campaign.Create(CreateCampaignInput{OwnerID: user.ID, Name: "A", StartDate: "2026-01-01", EndDate: "2026-03-01"})
	require.NoError(t, err)
	require.NotNil(t, campaign.StartDate)
	require.NotNil(t, campaign.EndDate)
	assert.GreaterOrEqual(t, campaign.Number, 1000)
	assert.LessOrEqual(t, campaign.Number, 9999)

	_, err = env.campaign.Create(CreateCampaignInput{OwnerID: user.ID, Name: "  "})
	assert.ErrorIs(t, err, ErrMissingCampaignName)
}
