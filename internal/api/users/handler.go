package users

import (
	"net/http"

	"startup-marketplace/database"
	"startup-marketplace/internal/api/apierr"
	"startup-marketplace/internal/app/http/middleware"
	"startup-marketplace/internal/domain/plans"
	"startup-marketplace/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func GetCurrentUser(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.IdentityFrom(c)

	user, err := users.Get(ctx, database.DB, id.ID)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	stats, err := users.GetStats(ctx, database.DB, user.ID)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	subs, err := plans.ListActive(ctx, database.DB, user.ID)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	tokens, err := plans.NewEntitlements(database.DB).AllowedFields(ctx, user.ID)
	if err != nil {
		apierr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User:  BuildUserDTO(user),
		Stats: *stats,
		Access: AccessDTO{
			AllowedFields: tokens.Sorted(),
			Subscriptions: BuildSubscriptionDTOs(subs),
		},
	})
}

func UpdateCurrentUser(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "Invalid data", err.Error())
		return
	}
	user, err := users.UpdateProfile(c.Request.Context(), database.DB, middleware.IdentityFrom(c).ID, users.ProfileUpdate{
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": BuildUserDTO(user), "message": "Profile updated successfully"})
}

// UpdatePricingPlan sets the legacy free/premium flag. Access is governed by plan subscriptions.
func UpdatePricingPlan(c *gin.Context) {
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "Invalid data", err.Error())
		return
	}
	user, err := users.SetPricingPlan(c.Request.Context(), database.DB, middleware.IdentityFrom(c).ID, req.Plan)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": BuildUserDTO(user), "message": "Pricing plan updated"})
}
