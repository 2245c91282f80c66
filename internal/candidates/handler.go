package candidates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-intake/internal/shared/server/respond"
)

// Handler wires candidate read endpoints to the repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches candidate routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/candidates/table", h.table)
	rg.GET("/candidates/:id", h.detail)
}

func (h *Handler) table(c *gin.Context) {
	rows, err := h.Repo.ListTable(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list candidates", err.Error())
		return
	}
	respond.OK(c, rows)
}

func (h *Handler) detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid candidate id", nil)
		return
	}
	c.Set("candidateId", id)

	det, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Candidate not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load candidate", err.Error())
		return
	}
	respond.OK(c, det)
}
