package dto

import (
	"time"

	"github.com/mkowalczyk/timesheet-api/internal/models"
)

// CampaignDTO represents a campaign in API responses
type CampaignDTO struct {
	ID         uint64     `json:"id"`
	Number     int        `json:"number"`
	Name       string     `json:"name"`
	UserID     uint64     `json:"user_id"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	TotalHours float64    `json:"total_hours"`
	CreatedAt  time.Time  `json:"created_at"`
	Owner      *UserDTO   `json:"owner,omitempty"`
}

// WorkReportDTO represents a single logged-time entry
type WorkReportDTO struct {
	ID         uint64    `json:"id"`
	Hours      float64   `json:"hours"`
	Minutes    float64   `json:"minutes"`
	CampaignID uint64    `json:"campaign_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// SupervisorReportDTO groups a direct report with their campaigns
type SupervisorReportDTO struct {
	User      UserDTO       `json:"user"`
	Campaigns []CampaignDTO `json:"campaigns"`
}

// ToCampaignDTO converts a Campaign model to CampaignDTO
func ToCampaignDTO(campaign models.Campaign) CampaignDTO {
	dto := CampaignDTO{
		ID:         campaign.ID,
		Number:     campaign.Number,
		Name:       campaign.Name,
		UserID:     campaign.UserID,
		StartDate:  campaign.StartDate,
		EndDate:    campaign.EndDate,
		TotalHours: campaign.TotalHours,
		CreatedAt:  campaign.CreatedAt,
	}

	// Include owner if preloaded
	if campaign.User.ID != 0 {
		owner := ToUserDTO(campaign.User)
		dto.Owner = &owner
	}

	return dto
}

// ToCampaignDTOs converts a slice of campaigns
func ToCampaignDTOs(campaigns []models.Campaign) []CampaignDTO {
	dtos := make([]CampaignDTO, len(campaigns))
	for i, campaign := range campaigns {
		dtos[i] = ToCampaignDTO(campaign)
	}
	return dtos
}

// ToWorkReportDTO converts a WorkReport model to WorkReportDTO
func ToWorkReportDTO(report models.WorkReport) WorkReportDTO {
	return WorkReportDTO{
		ID:         report.ID,
		Hours:      report.Hours,
		Minutes:    report.Minutes,
		CampaignID: report.CampaignID,
		CreatedAt:  report.CreatedAt,
	}
}

// ToSupervisorReportDTOs converts direct reports with preloaded campaigns
func ToSupervisorReportDTOs(users []models.User) []SupervisorReportDTO {
	dtos := make([]SupervisorReportDTO, len(users))
	for i, user := range users {
		dtos[i] = SupervisorReportDTO{
			User:      ToUserDTO(user),
			Campaigns: ToCampaignDTOs(user.Campaigns),
		}
	}
	return dtos
}
