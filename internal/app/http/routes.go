package routes

import (
	adminapi "startup-marketplace/internal/api/admin"
	favoritesapi "startup-marketplace/internal/api/favorites"
	plansapi "startup-marketplace/internal/api/plans"
	startupsapi "startup-marketplace/internal/api/startups"
	usersapi "startup-marketplace/internal/api/users"
	"startup-marketplace/internal/app/http/middleware"
	"startup-marketplace/internal/domain/access"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the routes need beyond the global database handle.
type Deps struct {
	Verifier middleware.TokenVerifier
	Gate     *access.Gate
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	startups := startupsapi.NewHandler(d.Gate)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/")
	api.Use(middleware.SanitizeAndCleanInputMiddleware())

	// Public, identity attached when present
	public := api.Group("/")
	public.Use(middleware.OptionalAuth(d.Verifier))
	public.GET("/plans", plansapi.ListPlans)
	public.GET("/plans/:id", plansapi.GetPlan)
	public.GET("/startups", startupsapi.ListStartups)
	public.GET("/startups/:id", startups.GetStartup)

	// Authenticated
	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware(d.Verifier))
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.PUT("/me", usersapi.UpdateCurrentUser)
	auth.PUT("/me/plan", usersapi.UpdatePricingPlan)

	auth.GET("/plans/subscriptions", plansapi.ListSubscriptions)
	auth.POST("/plans/subscribe", plansapi.Subscribe)
	auth.DELETE("/plans/subscribe", plansapi.Unsubscribe)

	auth.POST("/startups", startups.CreateStartup)
	auth.PUT("/startups/:id", startups.UpdateStartup)
	auth.DELETE("/startups/:id", startups.DeleteStartup)

	auth.GET("/favorites", favoritesapi.ListFavorites)
	auth.POST("/favorites", favoritesapi.AddFavorite)
	auth.DELETE("/favorites/:startupId", favoritesapi.RemoveFavorite)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(d.Verifier), middleware.RequireRole(access.RoleAdmin))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/plans", plansapi.CreatePlan)
	admin.PUT("/plans/:id", plansapi.UpdatePlan)
	admin.DELETE("/plans/:id", plansapi.DeletePlan)
	admin.POST("/sync-plans", plansapi.SyncPlansFromStripe)
}
