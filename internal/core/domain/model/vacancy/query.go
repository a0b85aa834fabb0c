package vacancy

import (
	"strings"

	"vacancybot/internal/pkg/errs"
)

// SearchFilters narrows a query. Zero values mean "no constraint".
type SearchFilters struct {
	Salary         int    `json:"salary,omitempty"`
	OnlyWithSalary bool   `json:"only_with_salary,omitempty"`
	Experience     string `json:"experience,omitempty"`
	Employment     string `json:"employment,omitempty"`
	Schedule       string `json:"schedule,omitempty"`
}

// IsEmpty reports whether no filter is set.
func (f SearchFilters) IsEmpty() bool {
	return f == SearchFilters{}
}

// Query is what a user asked the provider for.
type Query struct {
	Text      string
	AreaID    string
	Filters   SearchFilters
	TitleOnly bool
}

// NewQuery builds a query from raw user input. The text must not be blank.
func NewQuery(text, areaID string, filters SearchFilters, titleOnly bool) (Query, error) {
	text = NormalizeText(text)
	if text == "" {
		return Query{}, errs.NewValueIsRequiredError("queryText")
	}
	return Query{
		Text:      text,
		AreaID:    strings.TrimSpace(areaID),
		Filters:   filters,
		TitleOnly: titleOnly,
	}, nil
}

// NormalizeText trims surrounding whitespace. Two queries whose normalized
// text is equal share cache entries; casing and inner whitespace are kept.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}
