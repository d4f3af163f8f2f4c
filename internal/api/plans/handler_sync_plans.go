package plans

import (
	"net/http"

	"startup-marketplace/config"
	"startup-marketplace/database"
	"startup-marketplace/internal/api/apierr"
	stripeinfra "startup-marketplace/internal/infra/stripe"

	"github.com/gin-gonic/gin"
)

// SyncPlansFromStripe upserts the plan catalogue from active recurring Stripe prices.
func SyncPlansFromStripe(c *gin.Context) {
	if config.STRIPE_SECRET_KEY == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	it := stripeinfra.ListActivePrices(config.STRIPE_SECRET_KEY)
	res, err := stripeinfra.SyncPlans(c.Request.Context(), database.DB, it, config.STRIPE_PLANS_PRODUCT_ID)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
