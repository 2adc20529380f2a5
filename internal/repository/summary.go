package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloo-solutions/docsum/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SummaryRepository stores summary records in PostgreSQL.
type SummaryRepository struct {
	pool *pgxpool.Pool
}

func NewSummaryRepository(pool *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{pool: pool}
}

func (r *SummaryRepository) Save(ctx context.Context, s *domain.Summary) error {
	if err := domain.ValidateSummary(s); err != nil {
		return domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, domain.ErrStorageOperationFail.Message, err)
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO summaries (id, text, name, date_ms, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Text, s.Name, s.Date, s.CreatedAt(),
	)
	if err != nil {
		return domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, domain.ErrStorageOperationFail.Message, fmt.Errorf("insert summary: %w", err))
	}
	return nil
}

func (r *SummaryRepository) Get(ctx context.Context, id string) (*domain.Summary, error) {
	var s domain.Summary
	err := r.pool.QueryRow(ctx,
		`SELECT id, text, name, date_ms FROM summaries WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Text, &s.Name, &s.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSummaryNotFound
		}
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, domain.ErrStorageOperationFail.Message, fmt.Errorf("select summary: %w", err))
	}
	return &s, nil
}
