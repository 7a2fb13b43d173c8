package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkowalczyk/timesheet-api/internal/dto"
	apierrors "github.com/mkowalczyk/timesheet-api/internal/errors"
	"github.com/mkowalczyk/timesheet-api/internal/middleware"
	"github.com/mkowalczyk/timesheet-api/internal/services"
)

// TimesheetHandler coordinates the bulk submission and supervisor views.
type TimesheetHandler struct {
	timesheetService *services.TimesheetService
}

// NewTimesheetHandler creates a new TimesheetHandler.
func NewTimesheetHandler(timesheetService *services.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{
		timesheetService: timesheetService,
	}
}

// SubmitTimesheet processes the landing-form submission: one "H" / "H:MM"
// field per campaign, blanks skipped, everything applied in one
// transaction or not at all.
func (h *TimesheetHandler) SubmitTimesheet(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type TimesheetEntryRequest struct {
		CampaignID uint64 `json:"campaign_id" binding:"required"`
		Time       string `json:"time"`
	}
	type SubmitTimesheetRequest struct {
		Entries []TimesheetEntryRequest `json:"entries" binding:"required"`
	}

	var req SubmitTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entries := make([]services.TimesheetEntry, len(req.Entries))
	for i, entry := range req.Entries {
		entries[i] = services.TimesheetEntry{
			CampaignID: entry.CampaignID,
			Time:       entry.Time,
		}
	}

	if err := h.timesheetService.Submit(userID, entries); err != nil {
		respondTimesheetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Timesheet submitted successfully",
	})
}

// SupervisorReport returns the campaigns of the current user's direct
// reports, grouped per user.
func (h *TimesheetHandler) SupervisorReport(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	reports, err := h.timesheetService.SupervisorReport(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to build supervisor report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": dto.ToSupervisorReportDTOs(reports),
	})
}

func respondTimesheetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMalformedTime):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCampaignNotFound),
		errors.Is(err, services.ErrNotCampaignOwner):
		// Same shape for missing and foreign campaigns
		apierrors.NotFound(c, services.ErrCampaignNotFound.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
