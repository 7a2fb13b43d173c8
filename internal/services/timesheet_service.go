package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mkowalczyk/timesheet-api/internal/models"
	"github.com/mkowalczyk/timesheet-api/internal/repository"
	"github.com/mkowalczyk/timesheet-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrNegativeTime     = errors.New("hours and minutes must not be negative")
	ErrMalformedTime    = errors.New("malformed time string")
	ErrNotCampaignOwner = errors.New("campaign does not belong to the submitting user")
)

// TimesheetService handles work report recording, the bulk timesheet
// submission, and the supervisor aggregation view.
type TimesheetService struct {
	campaignRepo repository.CampaignRepository
	userRepo     repository.UserRepository
}

// NewTimesheetService creates a new TimesheetService.
func NewTimesheetService(campaignRepo repository.CampaignRepository, userRepo repository.UserRepository) *TimesheetService {
	return &TimesheetService{
		campaignRepo: campaignRepo,
		userRepo:     userRepo,
	}
}

// RecordReport logs an explicit hours+minutes report against a campaign.
// The campaign total is recomputed from its reports in the same
// transaction as the insert.
func (s *TimesheetService) RecordReport(campaignID uint64, hours, minutes float64) (*models.WorkReport, error) {
	if hours < 0 || minutes < 0 {
		return nil, ErrNegativeTime
	}

	report := &models.WorkReport{
		Hours:      hours,
		Minutes:    minutes,
		CampaignID: campaignID,
	}

	if err := s.campaignRepo.CreateReport(report); err != nil {
		return nil, fmt.Errorf("failed to record work report: %w", err)
	}

	return report, nil
}

// ListReports lists a campaign's work reports.
func (s *TimesheetService) ListReports(campaignID uint64) ([]models.WorkReport, error) {
	return s.campaignRepo.ListReports(campaignID)
}

// TimesheetEntry is one row of the landing-form submission: a campaign
// and the raw "H" / "H:MM" field typed next to it.
type TimesheetEntry struct {
	CampaignID uint64
	Time       string
}

// Submit processes a bulk timesheet submission. Blank fields are skipped;
// every remaining string is parsed before anything is written, so one
// malformed entry rejects the whole submission. All inserts and total
// recomputations share one transaction.
func (s *TimesheetService) Submit(userID uint64, entries []TimesheetEntry) error {
	reports := make([]models.WorkReport, 0, len(entries))

	for _, entry := range entries {
		if strings.TrimSpace(entry.Time) == "" {
			continue
		}

		hours, minutes, err := utils.SplitClockHours(entry.Time)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedTime, err)
		}

		campaign, err := s.campaignRepo.FindByID(entry.CampaignID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCampaignNotFound
			}
			return fmt.Errorf("failed to find campaign: %w", err)
		}
		if campaign.UserID != userID {
			return ErrNotCampaignOwner
		}

		reports = append(reports, models.WorkReport{
			Hours:      hours,
			Minutes:    minutes,
			CampaignID: entry.CampaignID,
		})
	}

	return s.campaignRepo.CreateReports(reports)
}

// SupervisorReport returns the direct reports of the given supervisor,
// each with their campaigns. Only direct reports are included, never the
// supervisor themself and never transitive reports.
func (s *TimesheetService) SupervisorReport(supervisorID uint64) ([]models.User, error) {
	return s.userRepo.ListDirectReports(supervisorID)
}
