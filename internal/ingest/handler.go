package ingest

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-intake/internal/shared/server/respond"
	"resume-intake/internal/shared/util"
)

// artifactExts are the extensions probed when downloading a stored resume.
var artifactExts = []string{".pdf", ".docx"}

// Handler wires the upload and artifact-download endpoints.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes/:id/file", h.download)
}

func (h *Handler) upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid multipart form", err.Error())
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "no files provided", nil)
		return
	}
	c.Set("batchFiles", len(headers))

	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		name, err := util.SanitizeFileName(fh.Filename)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", fh.Filename)
			return
		}
		src, err := fh.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read uploaded file", err.Error())
			return
		}
		data, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read uploaded file", err.Error())
			return
		}
		files = append(files, File{Name: name, Data: data})
	}

	respond.OK(c, h.Service.ProcessBatch(c.Request.Context(), files))
}

func (h *Handler) download(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid candidate id", nil)
		return
	}
	c.Set("candidateId", id)

	for _, ext := range artifactExts {
		key := ArtifactKey(id, ext)
		rc, err := h.Service.Store.Open(c.Request.Context(), key)
		if err != nil {
			continue
		}
		defer rc.Close()

		fileName := filepath.Base(key)
		c.DataFromReader(http.StatusOK, -1, contentTypeFor(fileName), rc, map[string]string{
			"Content-Disposition": `attachment; filename="` + fileName + `"`,
		})
		return
	}
	respond.Error(c, http.StatusNotFound, "not_found", "Resume file not found", nil)
}
