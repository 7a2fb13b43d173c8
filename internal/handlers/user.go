package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkowalczyk/timesheet-api/internal/constants"
	"github.com/mkowalczyk/timesheet-api/internal/database"
	"github.com/mkowalczyk/timesheet-api/internal/dto"
	apierrors "github.com/mkowalczyk/timesheet-api/internal/errors"
	"github.com/mkowalczyk/timesheet-api/internal/models"
	"github.com/mkowalczyk/timesheet-api/internal/repository"
	"github.com/mkowalczyk/timesheet-api/internal/services"
	"github.com/mkowalczyk/timesheet-api/internal/utils"
)

// UserHandler coordinates the user directory HTTP handlers.
type UserHandler struct {
	userService     *services.UserService
	campaignService *services.CampaignService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, campaignService *services.CampaignService) *UserHandler {
	return &UserHandler{
		userService:     userService,
		campaignService: campaignService,
	}
}

// ListUsers returns the full user directory.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

// CreateUser registers a new user with a generated login identifier.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Service   string `json:"service" binding:"required"`
		Password  string `json:"password" binding:"required"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Service:   req.Service,
		Password:  req.Password,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// BulkUpdateUsers applies the service label and supervisor assignments
// submitted from the user administration form.
func (h *UserHandler) BulkUpdateUsers(c *gin.Context) {
	type UserUpdateRequest struct {
		UserID       uint64  `json:"user_id" binding:"required"`
		Service      string  `json:"service"`
		SupervisorID *uint64 `json:"supervisor_id"`
	}
	type BulkUpdateRequest struct {
		Users []UserUpdateRequest `json:"users" binding:"required"`
	}

	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if len(req.Users) == 0 {
		apierrors.BadRequest(c, "At least one user update is required")
		return
	}

	updates := make([]services.UserUpdateInput, len(req.Users))
	for i, u := range req.Users {
		updates[i] = services.UserUpdateInput{
			UserID:       u.UserID,
			Service:      u.Service,
			SupervisorID: u.SupervisorID,
		}
	}

	if err := h.userService.BulkUpdate(updates); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users updated successfully",
	})
}

// CreateUserCampaign creates a campaign on behalf of the user named in
// the URL (the admin-style variant of campaign creation).
func (h *UserHandler) CreateUserCampaign(c *gin.Context) {
	userIDStr := c.Param("id")
	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		apierrors.NotFound(c, "User not found")
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

// UserCampaigns lists the campaigns owned by the user named in the URL.
func (h *UserHandler) UserCampaigns(c *gin.Context) {
	userIDStr := c.Param("id")
	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		apierrors.NotFound(c, "User not found")
		return
	}

	params := utils.GetPaginationParams(c)
	campaigns, total, err := h.campaignService.ListForUser(userID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to list campaigns")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      dto.ToUserDTO(user),
		"campaigns": dto.ToCampaignDTOs(campaigns),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingName),
		errors.Is(err, services.ErrMissingService):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrSupervisorNotFound),
		errors.Is(err, services.ErrSupervisorCycle):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFailedToCreateUser):
		apierrors.Conflict(c, "Could not create user, the login identifier may already be taken")
	case errors.Is(err, repository.ErrUserMissing):
		apierrors.NotFound(c, "User not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
