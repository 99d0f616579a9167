package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pictora/pipeline"
	"pictora/repository"
	"pictora/search"
	"pictora/synthesis"

	"go.uber.org/zap"
)

type Handlers struct {
	orchestrator *search.Orchestrator
	pipeline     *pipeline.Pipeline
	vectors      repository.ProjectVectorRepo
	logger       *zap.Logger
}

func NewHandlers(orchestrator *search.Orchestrator, pipe *pipeline.Pipeline,
	vectors repository.ProjectVectorRepo, logger *zap.Logger) *Handlers {
	return &Handlers{
		orchestrator: orchestrator,
		pipeline:     pipe,
		vectors:      vectors,
		logger:       logger,
	}
}

type SearchRequest struct {
	Query string `json:"query"`
}

type CreateProjectRequest struct {
	ID string `json:"id"`
}

type SaveProjectRequest struct {
	ID          string `json:"id"`
	SnapshotB64 string `json:"snapshot_b64"`
	MimeType    string `json:"mime_type"`
	Structural  string `json:"structural,omitempty"`
}

// Search answers a free-text project search. An empty result list is a
// normal response, distinct from transport failures.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	results, err := h.orchestrator.SearchByDescription(r.Context(), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrInvalidQuery):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, repository.ErrIndexUnavailable):
			http.Error(w, "search index unavailable", http.StatusServiceUnavailable)
		case errors.Is(err, synthesis.ErrEmbeddingFailed):
			http.Error(w, "failed to analyze query", http.StatusBadGateway)
		default:
			http.Error(w, "search failed", http.StatusInternalServerError)
		}
		h.logger.Error("search failed", zap.Error(err))
		return
	}

	writeJSON(w, results)
}

func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.ID) == "" {
		http.Error(w, "missing id parameter", http.StatusBadRequest)
		return
	}

	if err := h.pipeline.OnProjectCreated(r.Context(), req.ID); err != nil {
		h.logger.Error("placeholder creation failed", zap.Error(err))
		http.Error(w, "failed to register project", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// SaveProject runs the description-synthesis pipeline for a saved canvas
// and reports per-stage results, so the caller can tell whether the image
// was analyzed, the embedding was created, or only a write step failed.
func (h *Handlers) SaveProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SaveProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.ID) == "" {
		http.Error(w, "missing id parameter", http.StatusBadRequest)
		return
	}
	snapshotData, err := base64.StdEncoding.DecodeString(req.SnapshotB64)
	if err != nil {
		http.Error(w, "invalid snapshot_b64: "+err.Error(), http.StatusBadRequest)
		return
	}

	snapshot := synthesis.Snapshot{Data: snapshotData, MimeType: req.MimeType}
	stages, err := h.pipeline.OnProjectSaved(r.Context(), req.ID, snapshot, req.Structural)
	if err != nil {
		// Generation failed, nothing was written.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(stages)
		return
	}

	writeJSON(w, stages)
}

type UpdateDescriptionRequest struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// UpdateDescription refreshes only the stored description, for caption-style
// edits where re-embedding is not wanted.
func (h *Handlers) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req UpdateDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.ID) == "" {
		http.Error(w, "missing id parameter", http.StatusBadRequest)
		return
	}

	if err := h.vectors.UpdateDescription(r.Context(), req.ID, req.Description); err != nil {
		h.logger.Error("description update failed", zap.Error(err))
		http.Error(w, "failed to update description", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/projects/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "missing id parameter", http.StatusBadRequest)
		return
	}

	if err := h.pipeline.OnProjectDeleted(r.Context(), id); err != nil {
		h.logger.Error("vector deletion failed", zap.Error(err))
		http.Error(w, "failed to delete project vector", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) ResetIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.vectors.DeleteCollection(r.Context()); err != nil {
		h.logger.Error("index reset failed", zap.Error(err))
		http.Error(w, "failed to reset index", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
