package plans

import (
	"net/http"
	"strconv"

	"startup-marketplace/database"
	"startup-marketplace/internal/api/apierr"
	"startup-marketplace/internal/app/http/middleware"
	"startup-marketplace/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

type CreatePlanRequest struct {
	Name          string   `json:"name" binding:"required"`
	PlanFor       string   `json:"plan_for" binding:"required,oneof=investor startup_owner"`
	AllowedFields []string `json:"allowed_fields" binding:"required"`
	Price         float64  `json:"price" binding:"min=0"`
	Description   *string  `json:"description"`
	StripePriceID *string  `json:"stripe_price_id"`
}

type UpdatePlanRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1"`
	PlanFor       *string  `json:"plan_for" binding:"omitempty,oneof=investor startup_owner"`
	AllowedFields []string `json:"allowed_fields"`
	Price         *float64 `json:"price" binding:"omitempty,min=0"`
	Description   *string  `json:"description"`
}

func parsePlanID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierr.BadRequest(c, "Invalid plan ID")
		return 0, false
	}
	return uint(id), true
}

// ListPlans returns the catalogue. Authenticated callers also see their subscription state.
func ListPlans(c *gin.Context) {
	planFor := c.Query("plan_for")
	ctx := c.Request.Context()

	if id := middleware.IdentityFrom(c); id != nil {
		list, err := plans.ListForUser(ctx, database.DB, planFor, id.ID)
		if err != nil {
			apierr.Write(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"plans": list})
		return
	}

	list, err := plans.List(ctx, database.DB, planFor)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": list})
}

func GetPlan(c *gin.Context) {
	id, ok := parsePlanID(c)
	if !ok {
		return
	}
	p, err := plans.Get(c.Request.Context(), database.DB, id)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": p})
}

func CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "Invalid plan data", err.Error())
		return
	}
	p, err := plans.Create(c.Request.Context(), database.DB, plans.Input{
		Name:          req.Name,
		PlanFor:       req.PlanFor,
		AllowedFields: req.AllowedFields,
		Price:         req.Price,
		Description:   req.Description,
		StripePriceID: req.StripePriceID,
	})
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"plan": p, "message": "Plan created successfully"})
}

func UpdatePlan(c *gin.Context) {
	id, ok := parsePlanID(c)
	if !ok {
		return
	}
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "Invalid plan data", err.Error())
		return
	}
	p, err := plans.Update(c.Request.Context(), database.DB, id, plans.Patch{
		Name:          req.Name,
		PlanFor:       req.PlanFor,
		AllowedFields: req.AllowedFields,
		Price:         req.Price,
		Description:   req.Description,
	})
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": p, "message": "Plan updated successfully"})
}

func DeletePlan(c *gin.Context) {
	id, ok := parsePlanID(c)
	if !ok {
		return
	}
	if err := plans.Delete(c.Request.Context(), database.DB, id); err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully"})
}
