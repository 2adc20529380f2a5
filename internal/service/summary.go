package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cloo-solutions/docsum/internal/domain"
	"github.com/cloo-solutions/docsum/internal/extract"
	"github.com/cloo-solutions/docsum/internal/llm"
	"github.com/cloo-solutions/docsum/internal/telemetry"
	"github.com/google/uuid"
)

// SummaryStore persists summary records.
type SummaryStore interface {
	Save(ctx context.Context, s *domain.Summary) error
	// Get returns domain.ErrSummaryNotFound when no record has the id.
	Get(ctx context.Context, id string) (*domain.Summary, error)
}

// SentenceSplitter splits text into sentences.
type SentenceSplitter interface {
	SplitSentences(text string) []string
}

// UUIDGenerator generates UUIDs
type UUIDGenerator interface {
	NewString() string
}

// DefaultUUIDGenerator uses google/uuid
type DefaultUUIDGenerator struct{}

func (g DefaultUUIDGenerator) NewString() string {
	return uuid.NewString()
}

type SummaryServiceConfig struct {
	// ChunkSize is the window in characters per model call. Zero picks a
	// window from the document length.
	ChunkSize int
	// Latin1Only strips code points above U+00FF before segmentation.
	Latin1Only bool
}

// SummaryService extracts, cleans, chunks and summarizes uploaded documents.
type SummaryService struct {
	store      SummaryStore
	generator  llm.Generator
	splitter   SentenceSplitter
	uuidGen    UUIDGenerator
	cfg        SummaryServiceConfig
	now        func() time.Time
}

func NewSummaryService(store SummaryStore, generator llm.Generator, splitter SentenceSplitter, cfg SummaryServiceConfig) *SummaryService {
	return NewSummaryServiceWithUUIDGen(store, generator, splitter, cfg, DefaultUUIDGenerator{})
}

func NewSummaryServiceWithUUIDGen(store SummaryStore, generator llm.Generator, splitter SentenceSplitter, cfg SummaryServiceConfig, uuidGen UUIDGenerator) *SummaryService {
	return &SummaryService{
		store:     store,
		generator: generator,
		splitter:  splitter,
		uuidGen:   uuidGen,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Summarize runs the full pipeline over upload and stores the result.
func (s *SummaryService) Summarize(ctx context.Context, upload *domain.Upload) (*domain.Summary, error) {
	ctx, span := telemetry.StartSpan(ctx, "SummaryService.Summarize", telemetry.SpanAttributes{
		Filename:     upload.Filename,
		DocumentKind: string(upload.Kind),
		Operation:    "summarize",
	})
	defer span.End()

	text, err := s.extractText(ctx, upload)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	processed := s.Preprocess(ctx, text)

	chunkSize := s.cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = AdaptiveChunkSize(utf8.RuneCountInString(processed))
	}

	parts, err := s.summarizeChunks(ctx, ChunkText(processed, chunkSize))
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	summary := domain.NewSummary(s.uuidGen.NewString(), strings.Join(parts, " "), upload.Filename, s.now())
	span.SetTag("summary_id", summary.ID)

	if err := s.store.Save(ctx, summary); err != nil {
		span.SetError(err)
		return nil, err
	}

	return summary, nil
}

// Preprocess splits text into sentences, cleans each one and joins them
// with newlines.
func (s *SummaryService) Preprocess(ctx context.Context, text string) string {
	_, span := telemetry.StartSpan(ctx, "SummaryService.Preprocess", telemetry.SpanAttributes{
		Operation: "preprocess",
	})
	defer span.End()

	if s.cfg.Latin1Only {
		text = StripNonLatin1(text)
	}

	sentences := s.splitter.SplitSentences(text)
	cleaned := make([]string, len(sentences))
	for i, sent := range sentences {
		cleaned[i] = CleanText(sent)
	}
	return strings.Join(cleaned, "\n")
}

// summarizeChunks calls the generator once per chunk, in order. Chunks made
// only of sentence separators are skipped, so a document with no
// summarizable text yields no parts and an empty summary.
func (s *SummaryService) summarizeChunks(ctx context.Context, chunks []string) ([]string, error) {
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		chunkCtx, span := telemetry.StartSpan(ctx, "SummaryService.GenerateChunk", telemetry.SpanAttributes{
			Operation:  "generate",
			ChunkIndex: i + 1,
		})
		telemetry.AddBreadcrumb(ctx, "llm", fmt.Sprintf("chunk %d/%d", i+1, len(chunks)))
		part, err := s.generator.Generate(chunkCtx, chunk)
		if err != nil {
			span.SetError(err)
			span.End()
			return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "summary generation failed", err)
		}
		span.End()

		parts = append(parts, part)
	}

	return parts, nil
}

// Get returns the stored summary with id. Ids that are not UUIDs cannot name
// a record and are reported as not found.
func (s *SummaryService) Get(ctx context.Context, id string) (*domain.Summary, error) {
	ctx, span := telemetry.StartSpan(ctx, "SummaryService.Get", telemetry.SpanAttributes{
		SummaryID: id,
		Operation: "get",
	})
	defer span.End()

	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrSummaryNotFound
	}

	summary, err := s.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrSummaryNotFound) {
			span.SetError(err)
		}
		return nil, err
	}
	return summary, nil
}

// TextLength returns the number of characters extracted from upload.
func (s *SummaryService) TextLength(ctx context.Context, upload *domain.Upload) (int, error) {
	ctx, span := telemetry.StartSpan(ctx, "SummaryService.TextLength", telemetry.SpanAttributes{
		Filename:     upload.Filename,
		DocumentKind: string(upload.Kind),
		Operation:    "length",
	})
	defer span.End()

	text, err := s.extractText(ctx, upload)
	if err != nil {
		span.SetError(err)
		return 0, err
	}
	return utf8.RuneCountInString(text), nil
}

func (s *SummaryService) extractText(ctx context.Context, upload *domain.Upload) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "SummaryService.Extract", telemetry.SpanAttributes{
		Filename:     upload.Filename,
		DocumentKind: string(upload.Kind),
		Operation:    "extract",
	})
	defer span.End()

	extractor, err := extract.ForKind(upload.Kind)
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "unsupported document kind", err)
	}

	text, err := extractor.Extract(ctx, upload.Data)
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, domain.ErrExtractionFailed.Message, err)
	}
	return text, nil
}
