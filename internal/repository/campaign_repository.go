package repository

import (
	"errors"

	"github.com/mkowalczyk/timesheet-api/internal/database"
	"github.com/mkowalczyk/timesheet-api/internal/models"
	"github.com/mkowalczyk/timesheet-api/internal/utils"
	"gorm.io/gorm"
)

// GormCampaignRepository is a GORM implementation of CampaignRepository
type GormCampaignRepository struct {
	db *gorm.DB
}

// ErrNumberExhausted is returned when no free campaign display number
// could be found within the retry budget.
var ErrNumberExhausted = errors.New("campaign repository: no free campaign number")

// campaignNumberRetries bounds the collision retry loop on creation.
const campaignNumberRetries = 25

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &GormCampaignRepository{db: db}
}

// Create creates a new campaign. The display number is random in a small
// range, so collisions happen in practice; retry with a fresh number.
func (r *GormCampaignRepository) Create(campaign *models.Campaign) error {
	for attempt := 0; attempt < campaignNumberRetries; attempt++ {
		number, err := utils.GenerateCampaignNumber()
		if err != nil {
			return err
		}

		var taken int64
		if err := r.db.Model(&models.Campaign{}).Where("number = ?", number).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			continue
		}

		campaign.Number = number
		if err := r.db.Create(campaign).Error; err != nil {
			return err
		}
		return nil
	}
	return ErrNumberExhausted
}

// FindByID finds a campaign by ID with optional preloading
func (r *GormCampaignRepository) FindByID(id uint64, preload ...string) (*models.Campaign, error) {
	var campaign models.Campaign
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&campaign, id).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// ListForUser retrieves a user's campaigns with pagination
func (r *GormCampaignRepository) ListForUser(userID uint64, params utils.PaginationParams) ([]models.Campaign, int64, error) {
	query := r.db.Model(&models.Campaign{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []models.Campaign
	if err := query.
		Order("campaigns.created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// Delete removes a campaign and all of its work reports in a transaction
func (r *GormCampaignRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&models.WorkReport{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Campaign{}, id).Error
	})
}

// CreateReport inserts a work report and recomputes the campaign total
func (r *GormCampaignRepository) CreateReport(report *models.WorkReport) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}
		return recomputeTotal(tx, report.CampaignID)
	})
}

// CreateReports inserts a batch of work reports atomically, recomputing
// each touched campaign's total once
func (r *GormCampaignRepository) CreateReports(reports []models.WorkReport) error {
	if len(reports) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		touched := make(map[uint64]struct{})
		for i := range reports {
			if err := tx.Create(&reports[i]).Error; err != nil {
				return err
			}
			touched[reports[i].CampaignID] = struct{}{}
		}

		for campaignID := range touched {
			if err := recomputeTotal(tx, campaignID); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListReports lists a campaign's work reports, newest first
func (r *GormCampaignRepository) ListReports(campaignID uint64) ([]models.WorkReport, error) {
	var reports []models.WorkReport
	if err := r.db.Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// recomputeTotal derives the campaign total from its reports. Keeping the
// total derived (instead of incremented in place) means concurrent
// submissions cannot drift the stored value away from the report rows.
func recomputeTotal(tx *gorm.DB, campaignID uint64) error {
	var total float64
	if err := tx.Model(&models.WorkReport{}).
		Where("campaign_id = ?", campaignID).
		Select("COALESCE(SUM(hours + minutes / 60.0), 0)").
		Scan(&total).Error; err != nil {
		return err
	}

	return tx.Model(&models.Campaign{}).
		Where("id = ?", campaignID).
		Update("total_hours", total).Error
}
