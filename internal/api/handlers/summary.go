package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/cloo-solutions/docsum/internal/api"
	"github.com/cloo-solutions/docsum/internal/api/middleware"
	"github.com/cloo-solutions/docsum/internal/domain"
	"github.com/cloo-solutions/docsum/internal/telemetry"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SummaryService interface {
	Summarize(ctx context.Context, upload *domain.Upload) (*domain.Summary, error)
	Get(ctx context.Context, id string) (*domain.Summary, error)
	TextLength(ctx context.Context, upload *domain.Upload) (int, error)
}

type SummaryHandler struct {
	svc    SummaryService
	logger *zap.Logger
}

func NewSummaryHandler(svc SummaryService, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{svc: svc, logger: logger}
}

type SummarizeResponse struct {
	ID string `json:"id"`
}

type SummaryResponse struct {
	Text string `json:"text"`
	Name string `json:"name"`
	Date int64  `json:"date"`
}

type LengthResponse struct {
	Length int `json:"length"`
}

// Summarize handles POST /summarize.
func (h *SummaryHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	h.summarize(w, r, domain.DocumentKindPDF)
}

// SummarizePPTX handles POST /summarize/pptx.
func (h *SummaryHandler) SummarizePPTX(w http.ResponseWriter, r *http.Request) {
	h.summarize(w, r, domain.DocumentKindPPTX)
}

func (h *SummaryHandler) summarize(w http.ResponseWriter, r *http.Request, kind domain.DocumentKind) {
	upload, err := h.readUpload(r, kind)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	summary, err := h.svc.Summarize(r.Context(), upload)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.logger.Info("summary created",
		zap.String("summary_id", summary.ID),
		zap.String("filename", upload.Filename),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
	)
	api.JSON(w, http.StatusOK, SummarizeResponse{ID: summary.ID})
}

// Get handles GET /summarization/{id}.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	summary, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, SummaryResponse{
		Text: summary.Text,
		Name: summary.Name,
		Date: summary.Date,
	})
}

// PDFLength handles GET /pdf-length.
func (h *SummaryHandler) PDFLength(w http.ResponseWriter, r *http.Request) {
	upload, err := h.readUpload(r, domain.DocumentKindPDF)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	length, err := h.svc.TextLength(r.Context(), upload)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, LengthResponse{Length: length})
}

// readUpload pulls the file for kind out of the multipart form and checks its
// extension before reading the content.
func (h *SummaryHandler) readUpload(r *http.Request, kind domain.DocumentKind) (*domain.Upload, error) {
	telemetry.TagRequest(r.Context(), "document_kind", string(kind))
	telemetry.TagRequest(r.Context(), "form_field", kind.FormField())

	file, header, err := r.FormFile(kind.FormField())
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, domain.ErrUploadTooLarge
		}
		if !errors.Is(err, http.ErrMissingFile) {
			h.logger.Debug("failed to parse upload", zap.Error(err))
		}
		return nil, domain.ValidateUpload(nil, kind)
	}
	defer file.Close()

	upload := &domain.Upload{Filename: header.Filename, Kind: kind}
	if err := domain.ValidateUpload(upload, kind); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to read upload", err)
	}
	upload.Data = data

	return upload, nil
}

// handleError writes the error response. Server-side failures are logged and
// reported before being collapsed into the generic message.
func (h *SummaryHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if api.DomainErrorToHTTP(err) >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
		)
		telemetry.CaptureError(r.Context(), err)
	}
	api.HandleError(w, err)
}
