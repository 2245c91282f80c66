package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-intake/internal/shared/server/respond"
)

// Handler serves filter values and dashboard aggregates.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches analytics routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/filters", h.filters)
	rg.GET("/analytics", h.summary)
}

func (h *Handler) filters(c *gin.Context) {
	values, err := h.Repo.Filters(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load filters", err.Error())
		return
	}
	respond.OK(c, values)
}

func (h *Handler) summary(c *gin.Context) {
	skills, err := h.Repo.SkillCounts(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load analytics", err.Error())
		return
	}
	years, err := h.Repo.ExperienceYears(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load analytics", err.Error())
		return
	}
	respond.OK(c, Summary{
		SkillDistribution:      skills,
		ExperienceDistribution: BucketExperience(years),
	})
}
