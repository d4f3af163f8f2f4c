package plans

import (
	"net/http"
	"time"

	"startup-marketplace/database"
	"startup-marketplace/internal/api/apierr"
	"startup-marketplace/internal/app/http/middleware"
	"startup-marketplace/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

type SubscribeRequest struct {
	PlanID    uint       `json:"plan_id" binding:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type UnsubscribeRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

func ListSubscriptions(c *gin.Context) {
	subs, err := plans.ListActive(c.Request.Context(), database.DB, middleware.IdentityFrom(c).ID)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

func Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "Invalid subscription data", err.Error())
		return
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now()) {
		apierr.BadRequest(c, "expires_at must be in the future")
		return
	}

	res, err := plans.Subscribe(c.Request.Context(), database.DB, middleware.IdentityFrom(c).ID, req.PlanID, req.ExpiresAt)
	if err != nil {
		apierr.Write(c, err)
		return
	}

	msg := "Successfully subscribed to plan"
	if res.Reactivated {
		msg = "Subscription reactivated"
	}
	c.JSON(http.StatusOK, gin.H{
		"subscription": res.Subscription,
		"reactivated":  res.Reactivated,
		"message":      msg,
	})
}

func Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "Invalid subscription data", err.Error())
		return
	}
	sub, err := plans.Unsubscribe(c.Request.Context(), database.DB, middleware.IdentityFrom(c).ID, req.PlanID)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subscription": sub,
		"message":      "Successfully unsubscribed from plan",
	})
}
