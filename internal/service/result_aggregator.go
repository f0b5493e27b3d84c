package service

import (
	"sort"

	"pdf-processing-service/internal/domain"
)

// ResultAggregator collects per-page outcomes into one ordered document.
// Exactly one record is appended per rendered page, whether or not that
// page's normalization or parsing succeeded.
type ResultAggregator struct {
	records []domain.PageRecord
}

// NewResultAggregator creates an empty aggregator.
func NewResultAggregator() *ResultAggregator {
	return &ResultAggregator{}
}

// RecordSuccess appends a successful page outcome.
func (a *ResultAggregator) RecordSuccess(page int, content string) {
	a.records = append(a.records, domain.PageRecord{
		Page:    page,
		Success: true,
		Content: content,
	})
}

// RecordFailure appends a failed page outcome with its diagnostic.
func (a *ResultAggregator) RecordFailure(page int, err error) {
	a.records = append(a.records, domain.PageRecord{
		Page: page,
		Err:  err,
	})
}

// Finalize returns all records sorted by page index ascending.
func (a *ResultAggregator) Finalize() []domain.PageRecord {
	sort.Slice(a.records, func(i, j int) bool {
		return a.records[i].Page < a.records[j].Page
	})
	return a.records
}
