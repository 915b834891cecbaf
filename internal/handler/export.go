package handler

import (
	"log/slog"
	"net/http"

	"instruks/internal/domain/services"
	"instruks/internal/httputil"
)

// ExportHandler serves the PDF and markdown renditions of a version.
type ExportHandler struct {
	pdfService      services.PDFService
	markdownService services.MarkdownService
	logger          *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(pdfService services.PDFService, markdownService services.MarkdownService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		pdfService:      pdfService,
		markdownService: markdownService,
		logger:          logger,
	}
}

// PDF streams a version as a downloadable PDF file
// GET /api/instruks/{id}/pdf
func (h *ExportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "instruks ID is required")
		return
	}

	pdfBytes, err := h.pdfService.Generate(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondPDF(w, h.pdfService.Filename(id), pdfBytes)
}

// Markdown returns a version's content converted to markdown
// GET /api/instruks/{id}/markdown
func (h *ExportHandler) Markdown(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "instruks ID is required")
		return
	}

	markdown, err := h.markdownService.Export(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(markdown))
}
