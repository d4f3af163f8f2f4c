package admin

import (
	"net/http"
	"strconv"

	"startup-marketplace/database"
	"startup-marketplace/internal/api/apierr"
	"startup-marketplace/internal/domain/plans"
	"startup-marketplace/internal/domain/startups"
	"startup-marketplace/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID                 uint   `json:"id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	AuthProvider       string `json:"auth_provider"`
	CurrentPricingPlan string `json:"current_pricing_plan"`
	ActivePlans        int    `json:"active_plans"`
}

type PlanSubscribers struct {
	PlanID      uint   `json:"plan_id"`
	Name        string `json:"name"`
	PlanFor     string `json:"plan_for"`
	Subscribers int64  `json:"subscribers"`
}

type AdminStats struct {
	TotalUsers    int64             `json:"total_users"`
	TotalStartups int64             `json:"total_startups"`
	TotalViews    int64             `json:"total_views"`
	UsersPerRole  map[string]int64  `json:"users_per_role"`
	PlanSummary   []PlanSubscribers `json:"plans"`
}

func AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	db := database.DB.WithContext(ctx)
	var stats AdminStats

	if err := db.Model(&users.User{}).Count(&stats.TotalUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	if err := db.Model(&startups.Startup{}).Count(&stats.TotalStartups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	if err := db.Model(&startups.View{}).Count(&stats.TotalViews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	var roles []struct {
		Role  string
		Count int64
	}
	if err := db.Model(&users.User{}).Select("role, COUNT(id) AS count").Group("role").Scan(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	stats.UsersPerRole = map[string]int64{}
	for _, r := range roles {
		stats.UsersPerRole[r.Role] = r.Count
	}

	catalogue, err := plans.List(ctx, database.DB, "")
	if err != nil {
		apierr.Write(c, err)
		return
	}
	counts, err := plans.CountActiveByPlan(ctx, database.DB)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	stats.PlanSummary = make([]PlanSubscribers, 0, len(catalogue))
	for _, p := range catalogue {
		stats.PlanSummary = append(stats.PlanSummary, PlanSubscribers{
			PlanID:      p.ID,
			Name:        p.Name,
			PlanFor:     p.PlanFor,
			Subscribers: counts[p.ID],
		})
	}

	c.JSON(http.StatusOK, stats)
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.WithContext(c.Request.Context()).Order("id ASC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var active []struct {
		UserID uint
		Count  int
	}
	if err := database.DB.WithContext(c.Request.Context()).Model(&plans.Subscription{}).
		Select("user_id, COUNT(id) AS count").
		Where("is_active = ?", true).
		Group("user_id").
		Scan(&active).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}
	perUser := make(map[uint]int, len(active))
	for _, a := range active {
		perUser[a.UserID] = a.Count
	}

	adminUsers := make([]AdminUser, 0, len(all))
	for _, u := range all {
		adminUsers = append(adminUsers, AdminUser{
			ID:                 u.ID,
			Email:              u.Email,
			Role:               u.Role,
			AuthProvider:       u.AuthProvider,
			CurrentPricingPlan: u.CurrentPricingPlan,
			ActivePlans:        perUser[u.ID],
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func GetUserDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierr.BadRequest(c, "Invalid user ID")
		return
	}
	ctx := c.Request.Context()

	user, err := users.Get(ctx, database.DB, uint(id))
	if err != nil {
		apierr.Write(c, err)
		return
	}
	subs, err := plans.ListActive(ctx, database.DB, user.ID)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	stats, err := users.GetStats(ctx, database.DB, user.ID)
	if err != nil {
		apierr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"subscriptions": subs,
		"stats":         stats,
	})
}
