package favorites

import (
	"net/http"
	"strconv"

	"startup-marketplace/database"
	"startup-marketplace/internal/api/apierr"
	"startup-marketplace/internal/app/http/middleware"
	"startup-marketplace/internal/domain/favorites"

	"github.com/gin-gonic/gin"
)

type FavoriteRequest struct {
	StartupID uint `json:"startup_id" binding:"required"`
}

func ListFavorites(c *gin.Context) {
	list, err := favorites.List(c.Request.Context(), database.DB, middleware.IdentityFrom(c).ID)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": list})
}

func AddFavorite(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "Invalid data", err.Error())
		return
	}
	if err := favorites.Add(c.Request.Context(), database.DB, middleware.IdentityFrom(c).ID, req.StartupID); err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Startup added to favorites"})
}

func RemoveFavorite(c *gin.Context) {
	startupID, err := strconv.ParseUint(c.Param("startupId"), 10, 64)
	if err != nil || startupID == 0 {
		apierr.BadRequest(c, "Invalid startup ID")
		return
	}
	if err := favorites.Remove(c.Request.Context(), database.DB, middleware.IdentityFrom(c).ID, uint(startupID)); err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Startup removed from favorites"})
}
