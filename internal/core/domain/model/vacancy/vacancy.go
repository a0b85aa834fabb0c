package vacancy

import (
	"strings"

	"vacancybot/internal/pkg/errs"
)

// Salary is the advertised pay range. Either bound may be absent.
type Salary struct {
	From     *int   `json:"from,omitempty"`
	To       *int   `json:"to,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// IsSpecified reports whether at least one bound is present.
func (s *Salary) IsSpecified() bool {
	return s != nil && (s.From != nil || s.To != nil)
}

// Vacancy is a single listing. ExternalID is the provider's identifier and
// the deduplication key across searches and deliveries.
type Vacancy struct {
	ExternalID  string  `json:"external_id"`
	Title       string  `json:"title"`
	Company     string  `json:"company,omitempty"`
	Location    string  `json:"location,omitempty"`
	URL         string  `json:"url,omitempty"`
	Description string  `json:"description,omitempty"`
	Salary      *Salary `json:"salary,omitempty"`
}

// Validate checks the fields every stored listing must carry.
func (v Vacancy) Validate() error {
	if strings.TrimSpace(v.ExternalID) == "" {
		return errs.NewValueIsRequiredError("externalID")
	}
	if strings.TrimSpace(v.Title) == "" {
		return errs.NewValueIsRequiredError("title")
	}
	return nil
}

// ExternalIDs returns the provider identifiers of items in order.
func ExternalIDs(items []Vacancy) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ExternalID)
	}
	return ids
}

// PageOf returns items[start:end] clamped to the slice bounds.
func PageOf(items []Vacancy, start, end int) []Vacancy {
	if start < 0 {
		start = 0
	}
	if end > len(items) {
		end = len(items)
	}
	if start >= end {
		return nil
	}
	return items[start:end]
}
