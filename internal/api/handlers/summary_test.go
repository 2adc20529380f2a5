package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloo-solutions/docsum/internal/api"
	"github.com/cloo-solutions/docsum/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) Summarize(ctx context.Context, upload *domain.Upload) (*domain.Summary, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockSummaryService) Get(ctx context.Context, id string) (*domain.Summary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockSummaryService) TextLength(ctx context.Context, upload *domain.Upload) (int, error) {
	args := m.Called(ctx, upload)
	return args.Int(0), args.Error(1)
}

const testID = "3f2a9c1e-5b7d-4e8f-9a0b-1c2d3e4f5a6b"

func multipartRequest(t *testing.T, method, target, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("other", "value"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestRouter(svc SummaryService, logger *zap.Logger) http.Handler {
	h := NewSummaryHandler(svc, logger)
	r := chi.NewRouter()
	r.Post("/summarize", h.Summarize)
	r.Post("/summarize/pptx", h.SummarizePPTX)
	r.Get("/summarization/{id}", h.Get)
	r.Get("/pdf-length", h.PDFLength)
	return r
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func TestSummaryHandler_Summarize_Success(t *testing.T) {
	svc := new(MockSummaryService)
	router := newTestRouter(svc, zap.NewNop())

	svc.On("Summarize", mock.Anything, mock.MatchedBy(func(u *domain.Upload) bool {
		return u.Filename == "report.pdf" && u.Kind == domain.DocumentKindPDF && string(u.Data) == "%PDF-data"
	})).Return(&domain.Summary{ID: testID, Text: "summary", Name: "report", Date: 1}, nil)

	req := multipartRequest(t, http.MethodPost, "/summarize", "pdf_file", "report.pdf", []byte("%PDF-data"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SummarizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testID, resp.ID)
	svc.AssertExpectations(t)
}

func TestSummaryHandler_Summarize_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		field    string
		filename string
		wantMsg  string
	}{
		{"missing pdf", "/summarize", "", "", "No pdf file uploaded!"},
		{"wrong field", "/summarize", "file", "report.pdf", "No pdf file uploaded!"},
		{"not a pdf", "/summarize", "pdf_file", "notes.txt", "File uploaded is not a pdf file"},
		{"no extension", "/summarize", "pdf_file", "report", "File uploaded is not a pdf file"},
		{"missing pptx", "/summarize/pptx", "", "", "No pptx uploaded"},
		{"not a pptx", "/summarize/pptx", "pptx_file", "deck.pdf", "File uploaded is not a pptx file.."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSummaryService)
			router := newTestRouter(svc, zap.NewNop())

			req := multipartRequest(t, http.MethodPost, tt.target, tt.field, tt.filename, []byte("data"))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMsg, decodeMessage(t, w))
			svc.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
		})
	}
}

func TestSummaryHandler_Summarize_NotMultipart(t *testing.T) {
	svc := new(MockSummaryService)
	router := newTestRouter(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/summarize", bytes.NewBufferString(`{"pdf_file":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No pdf file uploaded!", decodeMessage(t, w))
}

func TestSummaryHandler_Summarize_StreamedBodyOverLimit(t *testing.T) {
	svc := new(MockSummaryService)
	router := newTestRouter(svc, zap.NewNop())

	req := multipartRequest(t, http.MethodPost, "/summarize", "pdf_file", "big.pdf", bytes.Repeat([]byte("x"), 4096))
	w := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(w, req.Body, 256)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, domain.ErrUploadTooLarge.Message, decodeMessage(t, w))
	svc.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestSummaryHandler_Summarize_UppercaseExtension(t *testing.T) {
	svc := new(MockSummaryService)
	router := newTestRouter(svc, zap.NewNop())

	svc.On("Summarize", mock.Anything, mock.Anything).Return(&domain.Summary{ID: testID}, nil)

	req := multipartRequest(t, http.MethodPost, "/summarize", "pdf_file", "REPORT.PDF", []byte("x"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSummaryHandler_Summarize_ProcessingError(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	svc := new(MockSummaryService)
	router := newTestRouter(svc, zap.New(core))

	svc.On("Summarize", mock.Anything, mock.Anything).Return(nil, errors.New("model exploded"))

	req := multipartRequest(t, http.MethodPost, "/summarize", "pdf_file", "report.pdf", []byte("x"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, api.GenericProcessingError, decodeMessage(t, w))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "request failed", logs.All()[0].Message)
}

func TestSummaryHandler_SummarizePPTX_Success(t *testing.T) {
	svc := new(MockSummaryService)
	router := newTestRouter(svc, zap.NewNop())

	svc.On("Summarize", mock.Anything, mock.MatchedBy(func(u *domain.Upload) bool {
		return u.Kind == domain.DocumentKindPPTX && u.Filename == "deck.pptx"
	})).Return(&domain.Summary{ID: testID}, nil)

	req := multipartRequest(t, http.MethodPost, "/summarize/pptx", "pptx_file", "deck.pptx", []byte("PK"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSummaryHandler_Get_Success(t *testing.T) {
	svc := new(MockSummaryService)
	router := newTestRouter(svc, zap.NewNop())

	svc.On("Get", mock.Anything, testID).Return(&domain.Summary{ID: testID, Text: "the summary", Name: "report", Date: 1709294400000}, nil)

	req := httptest.NewRequest(http.MethodGet, "/summarization/"+testID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"text":"the summary","name":"report","date":1709294400000}`, w.Body.String())
}

func TestSummaryHandler_Get_NotFound(t *testing.T) {
	svc := new(MockSummaryService)
	router := newTestRouter(svc, zap.NewNop())

	svc.On("Get", mock.Anything, testID).Return(nil, domain.ErrSummaryNotFound)

	req := httptest.NewRequest(http.MethodGet, "/summarization/"+testID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "File not found. It may have been deleted", decodeMessage(t, w))
}

func TestSummaryHandler_PDFLength_Success(t *testing.T) {
	svc := new(MockSummaryService)
	router := newTestRouter(svc, zap.NewNop())

	svc.On("TextLength", mock.Anything, mock.MatchedBy(func(u *domain.Upload) bool {
		return u.Filename == "sample.pdf"
	})).Return(1234, nil)

	req := multipartRequest(t, http.MethodGet, "/pdf-length", "pdf_file", "sample.pdf", []byte("x"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"length":1234}`, w.Body.String())
}

func TestSummaryHandler_PDFLength_NotPDF(t *testing.T) {
	svc := new(MockSummaryService)
	router := newTestRouter(svc, zap.NewNop())

	req := multipartRequest(t, http.MethodGet, "/pdf-length", "pdf_file", "sample.docx", []byte("x"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File uploaded is not a pdf file", decodeMessage(t, w))
}

func TestSummaryHandler_PDFLength_ExtractionError(t *testing.T) {
	svc := new(MockSummaryService)
	router := newTestRouter(svc, zap.NewNop())

	svc.On("TextLength", mock.Anything, mock.Anything).Return(0, domain.ErrExtractionFailed)

	req := multipartRequest(t, http.MethodGet, "/pdf-length", "pdf_file", "sample.pdf", []byte("x"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, api.GenericProcessingError, decodeMessage(t, w))
}
