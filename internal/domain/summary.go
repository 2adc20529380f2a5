package domain

import (
	"fmt"
	"strings"
	"time"
)

// Summary is the persisted result of summarizing one uploaded document.
type Summary struct {
	ID   string
	Text string
	Name string
	// Date is the creation time in epoch milliseconds.
	Date int64
}

// NewSummary creates a Summary for the given upload filename. The stored
// name is the filename with its document extensions stripped.
func NewSummary(id, text, filename string, createdAt time.Time) *Summary {
	return &Summary{
		ID:   id,
		Text: text,
		Name: SummaryName(filename),
		Date: createdAt.UnixMilli(),
	}
}

// SummaryName removes every ".pdf" and ".pptx" occurrence from filename.
func SummaryName(filename string) string {
	name := strings.ReplaceAll(filename, ".pdf", "")
	return strings.ReplaceAll(name, ".pptx", "")
}

// CreatedAt returns Date as a time.Time.
func (s *Summary) CreatedAt() time.Time {
	return time.UnixMilli(s.Date)
}

// ValidateSummary validates a Summary instance
func ValidateSummary(s *Summary) error {
	if s == nil {
		return fmt.Errorf("summary cannot be nil")
	}

	if s.ID == "" {
		return fmt.Errorf("summary ID is required")
	}

	if s.Date <= 0 {
		return fmt.Errorf("summary Date must be positive")
	}

	return nil
}
