package candidates

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, repo Repo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(repo).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func seedCandidate(t *testing.T, repo Repo) int64 {
	t.Helper()
	id, err := repo.Upsert(context.Background(), Record{
		Name:                 "Jane Doe",
		Email:                strPtr("jane@example.com"),
		TotalExperienceYears: floatPtr(4.5),
		City:                 strPtr("Austin"),
		Skills:               []string{"Go", "Postgres"},
		Certifications:       []string{"AWS SAA"},
		Degrees: []DegreeEntry{
			{CollegeName: "MIT", DegreeName: strPtr("BS"), PassedOutYear: intPtr(2015)},
		},
		Experience: []ExperienceEntry{
			{CompanyName: "Acme", Role: "Engineer", TotalYears: floatPtr(2.5)},
		},
	})
	if err != nil {
		t.Fatalf("seed upsert: %v", err)
	}
	return id
}

func TestCandidateTableFlattensRelations(t *testing.T) {
	repo := NewMemoryRepo()
	seedCandidate(t, repo)
	router := newTestRouter(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/candidates/table", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var rows []Row
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Name != "Jane Doe" {
		t.Fatalf("unexpected name %q", row.Name)
	}
	if len(row.Skills) != 2 || len(row.Companies) != 1 || len(row.Colleges) != 1 {
		t.Fatalf("relations not flattened: %+v", row)
	}
}

func TestCandidateDetail(t *testing.T) {
	repo := NewMemoryRepo()
	id := seedCandidate(t, repo)
	router := newTestRouter(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/candidates/1", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var det Detail
	if err := json.Unmarshal(w.Body.Bytes(), &det); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if det.ID != id || det.Name != "Jane Doe" {
		t.Fatalf("unexpected detail: %+v", det)
	}
	if len(det.Experiences) != 1 || det.Experiences[0].CompanyName != "Acme" {
		t.Fatalf("unexpected experiences: %+v", det.Experiences)
	}
}

func TestCandidateDetailNotFound(t *testing.T) {
	router := newTestRouter(t, NewMemoryRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/candidates/42", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != "not_found" {
		t.Fatalf("unexpected error code %q", body.Error.Code)
	}
}

func TestCandidateDetailRejectsBadID(t *testing.T) {
	router := newTestRouter(t, NewMemoryRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/candidates/abc", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
