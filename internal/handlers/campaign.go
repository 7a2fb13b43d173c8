package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkowalczyk/timesheet-api/internal/dto"
	apierrors "github.com/mkowalczyk/timesheet-api/internal/errors"
	"github.com/mkowalczyk/timesheet-api/internal/middleware"
	"github.com/mkowalczyk/timesheet-api/internal/models"
	"github.com/mkowalczyk/timesheet-api/internal/services"
	"github.com/mkowalczyk/timesheet-api/internal/utils"
)

// CampaignHandler coordinates campaign and work report HTTP handlers.
type CampaignHandler struct {
	campaignService  *services.CampaignService
	timesheetService *services.TimesheetService
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(campaignService *services.CampaignService, timesheetService *services.TimesheetService) *CampaignHandler {
	return &CampaignHandler{
		campaignService:  campaignService,
		timesheetService: timesheetService,
	}
}

// ListCampaigns returns the current user's campaigns (the landing view).
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)
	campaigns, total, err := h.campaignService.ListForUser(userID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to list campaigns")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaigns": dto.ToCampaignDTOs(campaigns),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateCampaign creates a campaign for the current user. The date range
// is optional but must be complete when present.
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateCampaignRequest struct {
		Name      string `json:"name" binding:"required"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	campaign, err := h.campaignService.Create(services.CreateCampaignInput{
		OwnerID:   userID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCampaignDTO(*campaign))
}

// DeleteCampaign removes the campaign loaded by RequireCampaignOwner,
// cascading to its work reports.
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	campaign, ok := campaignFromContext(c)
	if !ok {
		return
	}

	if err := h.campaignService.Delete(campaign.ID); err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Campaign deleted successfully",
	})
}

// RecordWorkReport logs an hours+minutes report against the campaign
// loaded by RequireCampaignOwner.
func (h *CampaignHandler) RecordWorkReport(c *gin.Context) {
	campaign, ok := campaignFromContext(c)
	if !ok {
		return
	}

	type RecordReportRequest struct {
		Hours   *float64 `json:"hours" binding:"required"`
		Minutes *float64 `json:"minutes" binding:"required"`
	}

	var req RecordReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.timesheetService.RecordReport(campaign.ID, *req.Hours, *req.Minutes)
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkReportDTO(*report))
}

// ListWorkReports lists the reports of the campaign loaded by
// RequireCampaignOwner.
func (h *CampaignHandler) ListWorkReports(c *gin.Context) {
	campaign, ok := campaignFromContext(c)
	if !ok {
		return
	}

	reports, err := h.timesheetService.ListReports(campaign.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list work reports")
		return
	}

	reportDTOs := make([]dto.WorkReportDTO, len(reports))
	for i, report := range reports {
		reportDTOs[i] = dto.ToWorkReportDTO(report)
	}

	c.JSON(http.StatusOK, gin.H{
		"campaign": dto.ToCampaignDTO(campaign),
		"reports":  reportDTOs,
	})
}

func campaignFromContext(c *gin.Context) (models.Campaign, bool) {
	campaignInterface, exists := c.Get(middleware.ContextKeyCampaign)
	if !exists {
		apierrors.InternalError(c, "Campaign not found in context")
		return models.Campaign{}, false
	}

	campaign, ok := campaignInterface.(models.Campaign)
	if !ok {
		apierrors.InternalError(c, "Invalid campaign data")
		return models.Campaign{}, false
	}

	return campaign, true
}

func respondCampaignError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingCampaignName),
		errors.Is(err, services.ErrIncompleteDateRange),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrEndBeforeStart),
		errors.Is(err, services.ErrNegativeTime):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCampaignNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
