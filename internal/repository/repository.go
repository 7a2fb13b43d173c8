package repository

import (
	"github.com/mkowalczyk/timesheet-api/internal/models"
	"github.com/mkowalczyk/timesheet-api/internal/utils"
)

// UserUpdate describes one row of a bulk user update.
type UserUpdate struct {
	UserID       uint64
	Service      string
	SupervisorID *uint64
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithGeneratedLogin creates a user and assigns the login
	// identifier (first+last+sequence) within a single transaction.
	CreateWithGeneratedLogin(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByLogin finds a user by login identifier
	FindByLogin(login string) (*models.User, error)

	// List returns all users with their supervisor preloaded
	List() ([]models.User, error)

	// BulkUpdate applies service/supervisor updates atomically
	BulkUpdate(updates []UserUpdate) error

	// ListDirectReports returns users supervised by the given user,
	// with campaigns preloaded
	ListDirectReports(supervisorID uint64) ([]models.User, error)
}

// CampaignRepository defines the interface for campaign and work report data access
type CampaignRepository interface {
	// Create creates a new campaign, retrying the display number on collision
	Create(campaign *models.Campaign) error

	// FindByID finds a campaign by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Campaign, error)

	// ListForUser retrieves a user's campaigns with pagination
	ListForUser(userID uint64, params utils.PaginationParams) ([]models.Campaign, int64, error)

	// Delete removes a campaign and its work reports
	Delete(id uint64) error

	// CreateReport inserts a work report and recomputes the campaign total
	CreateReport(report *models.WorkReport) error

	// CreateReports inserts a batch of work reports in one transaction,
	// recomputing each touched campaign's total
	CreateReports(reports []models.WorkReport) error

	// ListReports lists a campaign's work reports
	ListReports(campaignID uint64) ([]models.WorkReport, error)
}
