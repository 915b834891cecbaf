package handler

import (
	"log/slog"
	"net/http"

	"instruks/internal/domain/services"
	"instruks/internal/httputil"
)

// InstruksHandler handles instruks HTTP requests. Role checks live in
// the service; the handler only moves payloads and maps errors.
type InstruksHandler struct {
	instruksService services.InstruksService
	logger          *slog.Logger
}

// NewInstruksHandler creates a new instruks handler
func NewInstruksHandler(instruksService services.InstruksService, logger *slog.Logger) *InstruksHandler {
	return &InstruksHandler{
		instruksService: instruksService,
		logger:          logger,
	}
}

// List returns the latest version of every series
// GET /api/instruks
func (h *InstruksHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.instruksService.GetAllLatest(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// ListByCategory returns the latest versions within one category
// GET /api/instruks/by-category/{id}
func (h *InstruksHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("id")
	if categoryID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "category ID is required")
		return
	}

	items, err := h.instruksService.GetLatestByCategory(r.Context(), categoryID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// Get retrieves a single version row
// GET /api/instruks/{id}
func (h *InstruksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "instruks ID is required")
		return
	}

	item, err := h.instruksService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// GetLatestByDocument returns the latest version of a series
// GET /api/documents/{documentId}/latest
func (h *InstruksHandler) GetLatestByDocument(w http.ResponseWriter, r *http.Request) {
	documentID := r.PathValue("documentId")
	if documentID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	item, err := h.instruksService.GetLatestByDocumentID(r.Context(), documentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// GetHistory returns the full version chain of a series, newest first
// GET /api/documents/{documentId}/history
func (h *InstruksHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	documentID := r.PathValue("documentId")
	if documentID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	versions, err := h.instruksService.GetHistory(r.Context(), documentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, versions)
}

// Create starts a new document series
// POST /api/instruks
func (h *InstruksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload services.InstruksPayload
	if err := httputil.ParseJSON(w, r, &payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.instruksService.Create(r.Context(), httputil.GetAuth(r), &payload)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, created)
}

// Update edits the current latest version in place
// PUT /api/instruks/{id}
func (h *InstruksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "instruks ID is required")
		return
	}

	var payload services.InstruksPayload
	if err := httputil.ParseJSON(w, r, &payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok, err := h.instruksService.Update(r.Context(), httputil.GetAuth(r), id, &payload)
	if err != nil {
		handleError(w, err)
		return
	}
	if !ok {
		httputil.RespondError(w, http.StatusNotFound, "instruks not found or not the latest version")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateVersion branches a series off an existing version
// POST /api/instruks/{id}/versions
func (h *InstruksHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "instruks ID is required")
		return
	}

	var payload services.InstruksPayload
	if err := httputil.ParseJSON(w, r, &payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.instruksService.CreateVersion(r.Context(), httputil.GetAuth(r), id, &payload)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, created)
}

// Delete removes one version row
// DELETE /api/instruks/{id}
func (h *InstruksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "instruks ID is required")
		return
	}

	ok, err := h.instruksService.Delete(r.Context(), httputil.GetAuth(r), id)
	if err != nil {
		handleError(w, err)
		return
	}
	if !ok {
		httputil.RespondError(w, http.StatusNotFound, "instruks not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
