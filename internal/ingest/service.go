package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"resume-intake/internal/candidates"
	"resume-intake/internal/extract"
	"resume-intake/internal/llm"
	"resume-intake/internal/shared/metrics"
	"resume-intake/internal/shared/storage/object"
	"resume-intake/internal/shared/telemetry"
)

// A resume shorter than this after trimming is treated as unparseable.
const minResumeTextLen = 50

// seam for tests
var extractText = extract.Text

// File is one uploaded resume held in memory.
type File struct {
	Name string
	Data []byte
}

// BatchResult reports the outcome of a batch upload.
type BatchResult struct {
	Message        string   `json:"message"`
	ProcessedFiles []string `json:"processed_files"`
	Errors         []string `json:"errors"`
}

// Service runs the per-file pipeline: extract text, parse it into the resume
// schema, persist the candidate, store the original artifact. Files within a
// batch are processed sequentially; the parse+persist stage is bounded by a
// slot semaphore shared across all in-flight requests.
type Service struct {
	LLM   llm.Client
	Repo  candidates.Repo
	Store object.ObjectStore
	slots chan struct{}
}

// NewService constructs a Service with the given parse+persist concurrency.
func NewService(client llm.Client, repo candidates.Repo, store object.ObjectStore, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		LLM:   client,
		Repo:  repo,
		Store: store,
		slots: make(chan struct{}, workers),
	}
}

// ProcessBatch runs every file through the pipeline. One failing file never
// aborts the batch: its name and error are recorded and processing continues.
func (s *Service) ProcessBatch(ctx context.Context, files []File) BatchResult {
	result := BatchResult{
		Message:        "Processing complete.",
		ProcessedFiles: []string{},
		Errors:         []string{},
	}
	for _, f := range files {
		if err := s.processOne(ctx, f); err != nil {
			metrics.IncFileFailed()
			telemetry.Error("ingest.file.failed", map[string]any{
				"file":  f.Name,
				"error": err.Error(),
			})
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", f.Name, err))
			continue
		}
		metrics.IncFileProcessed()
		result.ProcessedFiles = append(result.ProcessedFiles, f.Name)
	}
	return result
}

func (s *Service) processOne(ctx context.Context, f File) error {
	start := time.Now()
	defer func() {
		metrics.ObservePipelineDurationMs(float64(time.Since(start).Milliseconds()))
	}()

	text, err := extractText(f.Name, f.Data)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if len(strings.TrimSpace(text)) < minResumeTextLen {
		return ErrInsufficientText
	}

	var candidateID int64
	err = s.withSlot(ctx, func() error {
		raw, err := s.LLM.ParseResume(ctx, text)
		if err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}
		var rec candidates.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}
		candidateID, err = s.Repo.Upsert(ctx, rec)
		if err != nil {
			return fmt.Errorf("persistence failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	metrics.IncCandidateUpserted()

	key := ArtifactKey(candidateID, filepath.Ext(f.Name))
	if _, err := s.Store.SaveWithKey(ctx, key, contentTypeFor(f.Name), bytes.NewReader(f.Data)); err != nil {
		return fmt.Errorf("artifact save failed: %w", err)
	}

	telemetry.Info("ingest.file.processed", map[string]any{
		"file":         f.Name,
		"candidate_id": candidateID,
		"duration_ms":  time.Since(start).Milliseconds(),
	})
	return nil
}

// withSlot runs fn while holding a semaphore slot, or fails fast when the
// context ends before a slot frees up.
func (s *Service) withSlot(ctx context.Context, fn func() error) error {
	select {
	case s.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.slots }()
	return fn()
}

// ArtifactKey is the storage key for a candidate's original resume file.
func ArtifactKey(candidateID int64, ext string) string {
	return fmt.Sprintf("resumes/candidate_%d%s", candidateID, strings.ToLower(ext))
}

func contentTypeFor(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
