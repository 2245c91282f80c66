package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func multipartUpload(t *testing.T, fileNames ...string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, name := range fileNames {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write([]byte("fake resume bytes")); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadBatchReturnsResult(t *testing.T) {
	withExtractStub(t, func(name string, data []byte) (string, error) {
		return sampleResumeText, nil
	})

	svc := NewService(&fakeLLM{parse: func(ctx context.Context, text string) (json.RawMessage, error) {
		return parsedNameJSON("Jane Doe"), nil
	}}, &stubCandidateRepo{}, newMemStore(), 1)
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartUpload(t, "jane.pdf", "john.docx"))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result BatchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(result.ProcessedFiles) != 2 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestUploadWithoutFiles(t *testing.T) {
	svc := NewService(&fakeLLM{parse: func(ctx context.Context, text string) (json.RawMessage, error) {
		return nil, nil
	}}, &stubCandidateRepo{}, newMemStore(), 1)
	router := newTestRouter(svc)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDownloadServesStoredArtifact(t *testing.T) {
	store := newMemStore()
	store.objects["resumes/candidate_1.pdf"] = []byte("%PDF-1.4 fake body")

	svc := NewService(&fakeLLM{parse: func(ctx context.Context, text string) (json.RawMessage, error) {
		return nil, nil
	}}, &stubCandidateRepo{}, store, 1)
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/1/file", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="candidate_1.pdf"` {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if w.Body.String() != "%PDF-1.4 fake body" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestDownloadFallsBackToDocx(t *testing.T) {
	store := newMemStore()
	store.objects["resumes/candidate_2.docx"] = []byte("PK docx body")

	svc := NewService(&fakeLLM{parse: func(ctx context.Context, text string) (json.RawMessage, error) {
		return nil, nil
	}}, &stubCandidateRepo{}, store, 1)
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/2/file", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestDownloadNotFound(t *testing.T) {
	svc := NewService(&fakeLLM{parse: func(ctx context.Context, text string) (json.RawMessage, error) {
		return nil, nil
	}}, &stubCandidateRepo{}, newMemStore(), 1)
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/9/file", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
