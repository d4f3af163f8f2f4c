package startups

import (
	"encoding/json"
	"net/http"
	"strconv"

	"startup-marketplace/database"
	"startup-marketplace/internal/api/apierr"
	"startup-marketplace/internal/app/http/middleware"
	"startup-marketplace/internal/domain/access"
	"startup-marketplace/internal/domain/startups"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Handler serves startup profiles. Reads go through the access gate.
type Handler struct {
	Gate *access.Gate
}

func NewHandler(gate *access.Gate) *Handler {
	return &Handler{Gate: gate}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierr.BadRequest(c, "Invalid startup ID")
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) CreateStartup(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if id.Role != access.RoleStartupOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only startup owners can create startup profiles"})
		return
	}

	var req CreateStartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "Invalid startup data", err.Error())
		return
	}
	if yearInFuture(req.Startup.YearFounded) {
		apierr.BadRequest(c, "Invalid startup data", "year_founded must not be in the future")
		return
	}

	s := req.toModel()
	if err := startups.Create(c.Request.Context(), database.DB, id.ID, s); err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"startup": s, "message": "Startup created successfully"})
}

func (h *Handler) GetStartup(c *gin.Context) {
	startupID, ok := parseID(c)
	if !ok {
		return
	}

	d, err := startups.Load(c.Request.Context(), database.DB, startupID)
	if err != nil {
		apierr.Write(c, err)
		return
	}

	out, dec, err := h.Gate.Read(c.Request.Context(), d, middleware.IdentityFrom(c))
	if err != nil {
		apierr.Write(c, err)
		return
	}

	switch dec.Mode {
	case access.ModeFull:
		c.JSON(http.StatusOK, gin.H{"startup": out})
	case access.ModeFiltered:
		c.JSON(http.StatusOK, gin.H{"startup": out, "allowed_fields": dec.Tokens.Sorted()})
	default:
		status := http.StatusForbidden
		if dec.Reason == access.ReasonAuthRequired {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"error": dec.Reason})
	}
}

// ListStartups is the public catalogue. It only ever exposes core attributes.
func ListStartups(c *gin.Context) {
	f := startups.Filters{Industry: c.Query("industry")}
	var err error
	if f.MinTeamSize, err = intQuery(c, "min_team_size"); err != nil {
		apierr.BadRequest(c, "Invalid min_team_size")
		return
	}
	if f.MaxTeamSize, err = intQuery(c, "max_team_size"); err != nil {
		apierr.BadRequest(c, "Invalid max_team_size")
		return
	}
	f.SellEquity = boolQuery(c, "sell_equity")
	f.SellBusiness = boolQuery(c, "sell_business")

	list, err := startups.ListPublic(c.Request.Context(), database.DB, f)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"startups": list})
}

func (h *Handler) UpdateStartup(c *gin.Context) {
	startupID, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStartupRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		apierr.BadRequest(c, "Invalid startup data", err.Error())
		return
	}
	var sent map[string]map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&sent, binding.JSON); err != nil {
		apierr.BadRequest(c, "Invalid startup data", err.Error())
		return
	}
	if req.Startup != nil && req.Startup.YearFounded != nil && yearInFuture(*req.Startup.YearFounded) {
		apierr.BadRequest(c, "Invalid startup data", "year_founded must not be in the future")
		return
	}

	s, err := startups.Update(c.Request.Context(), database.DB, startupID, middleware.IdentityFrom(c).ID, req.toPatch(sent))
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"startup": s, "message": "Startup updated successfully"})
}

func (h *Handler) DeleteStartup(c *gin.Context) {
	startupID, ok := parseID(c)
	if !ok {
		return
	}
	if err := startups.Delete(c.Request.Context(), database.DB, startupID, middleware.IdentityFrom(c).ID); err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Startup deleted successfully"})
}

func intQuery(c *gin.Context, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func boolQuery(c *gin.Context, key string) *bool {
	switch c.Query(key) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}
