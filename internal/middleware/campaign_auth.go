package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkowalczyk/timesheet-api/internal/database"
	apierrors "github.com/mkowalczyk/timesheet-api/internal/errors"
	"github.com/mkowalczyk/timesheet-api/internal/models"
)

// ContextKeyCampaign is where RequireCampaignOwner stashes the loaded campaign.
const ContextKeyCampaign = "campaign"

// RequireCampaignOwner loads the campaign named in the URL and checks that
// the current user owns it. A campaign that exists but belongs to someone
// else answers 404, not 403, so the route does not leak which display
// numbers are taken.
func RequireCampaignOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		campaignIDStr := c.Param("id")
		campaignID, err := strconv.ParseUint(campaignIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid campaign ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var campaign models.Campaign
		if err := database.GetDB().First(&campaign, campaignID).Error; err != nil {
			apierrors.NotFound(c, "Campaign not found")
			c.Abort()
			return
		}

		if campaign.UserID != userID {
			apierrors.NotFound(c, "Campaign not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyCampaign, campaign)
		c.Next()
	}
}
