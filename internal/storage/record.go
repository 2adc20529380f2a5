// Package storage persists summary records outside the database.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/cloo-solutions/docsum/internal/domain"
)

// record is the on-disk JSON form of a summary. The id is carried by the
// file or object name.
type record struct {
	Text string `json:"text"`
	Name string `json:"name"`
	Date int64  `json:"date"`
}

func encodeRecord(s *domain.Summary) ([]byte, error) {
	data, err := json.Marshal(record{Text: s.Text, Name: s.Name, Date: s.Date})
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	return data, nil
}

func decodeRecord(id string, data []byte) (*domain.Summary, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode summary %s: %w", id, err)
	}
	return &domain.Summary{ID: id, Text: rec.Text, Name: rec.Name, Date: rec.Date}, nil
}

func storageError(err error) error {
	return domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, domain.ErrStorageOperationFail.Message, err)
}
