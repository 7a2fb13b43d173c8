package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mkowalczyk/timesheet-api/internal/models"
	"github.com/mkowalczyk/timesheet-api/internal/repository"
	"github.com/mkowalczyk/timesheet-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrMissingCampaignName = errors.New("campaign name is required")
	ErrIncompleteDateRange = errors.New("start and end date must both be provided")
	ErrInvalidDate         = errors.New("dates must use the YYYY-MM-DD format")
	ErrEndBeforeStart      = errors.New("end date must not precede start date")
	ErrCampaignNotFound    = errors.New("campaign not found")
)

// dateLayout is the wire format for campaign date ranges.
const dateLayout = "2006-01-02"

// CampaignService handles campaign creation, deletion and listing.
type CampaignService struct {
	campaignRepo repository.CampaignRepository
}

// NewCampaignService creates a new CampaignService.
func NewCampaignService(campaignRepo repository.CampaignRepository) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
	}
}

// CreateCampaignInput represents the campaign creation form. Dates are
// optional but must be supplied together.
type CreateCampaignInput struct {
	OwnerID   uint64
	Name      string
	StartDate string
	EndDate   string
}

// Create validates the input and persists a new campaign for its owner.
func (s *CampaignService) Create(input CreateCampaignInput) (*models.Campaign, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMissingCampaignName
	}

	start, end, err := parseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		Name:      name,
		UserID:    input.OwnerID,
		StartDate: start,
		EndDate:   end,
	}

	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return campaign, nil
}

// Delete removes a campaign together with its work reports.
func (s *CampaignService) Delete(id uint64) error {
	if _, err := s.campaignRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return fmt.Errorf("failed to find campaign: %w", err)
	}

	return s.campaignRepo.Delete(id)
}

// ListForUser retrieves a user's campaigns with pagination.
func (s *CampaignService) ListForUser(userID uint64, params utils.PaginationParams) ([]models.Campaign, int64, error) {
	return s.campaignRepo.ListForUser(userID, params)
}

func parseDateRange(startStr, endStr string) (*time.Time, *time.Time, error) {
	startStr = strings.TrimSpace(startStr)
	endStr = strings.TrimSpace(endStr)

	if startStr == "" && endStr == "" {
		return nil, nil, nil
	}
	if startStr == "" || endStr == "" {
		return nil, nil, ErrIncompleteDateRange
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return nil, nil, ErrInvalidDate
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return nil, nil, ErrInvalidDate
	}
	if end.Before(start) {
		return nil, nil, ErrEndBeforeStart
	}

	return &start, &end, nil
}
