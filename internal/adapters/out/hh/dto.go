package hh

import (
	"strings"

	"vacancybot/internal/core/domain/model/vacancy"
)

// searchResponse is the body of GET /vacancies.
type searchResponse struct {
	Items   []vacancyItem `json:"items"`
	Found   int           `json:"found"`
	Pages   int           `json:"pages"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}

type vacancyItem struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	AlternateURL string       `json:"alternate_url"`
	Employer     *namedEntity `json:"employer"`
	Area         *namedEntity `json:"area"`
	Salary       *salary      `json:"salary"`
	Snippet      *snippet     `json:"snippet"`
}

type namedEntity struct {
	Name string `json:"name"`
}

type salary struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
}

type snippet struct {
	Requirement    string `json:"requirement"`
	Responsibility string `json:"responsibility"`
}

// errorResponse is returned with non-2xx statuses.
type errorResponse struct {
	Description string `json:"description"`
	Errors      []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"errors"`
}

func (r errorResponse) String() string {
	parts := make([]string, 0, len(r.Errors)+1)
	if r.Description != "" {
		parts = append(parts, r.Description)
	}
	for _, e := range r.Errors {
		if e.Value != "" {
			parts = append(parts, e.Type+"/"+e.Value)
		} else {
			parts = append(parts, e.Type)
		}
	}
	return strings.Join(parts, "; ")
}

func (r searchResponse) toDomain() vacancy.Page {
	items := make([]vacancy.Vacancy, 0, len(r.Items))
	for _, item := range r.Items {
		if item.ID == "" {
			continue
		}
		items = append(items, item.toDomain())
	}
	return vacancy.Page{Items: items, Found: r.Found, Pages: r.Pages}
}

// untitled stands in for a missing vacancy name.
const untitled = "N/A"

func (i vacancyItem) toDomain() vacancy.Vacancy {
	v := vacancy.Vacancy{
		ExternalID: i.ID,
		Title:      strings.TrimSpace(i.Name),
		URL:        i.AlternateURL,
	}
	if v.Title == "" {
		v.Title = untitled
	}
	if i.Employer != nil {
		v.Company = i.Employer.Name
	}
	if i.Area != nil {
		v.Location = i.Area.Name
	}
	if i.Snippet != nil {
		v.Description = i.Snippet.Requirement
	}
	if i.Salary != nil && (i.Salary.From != nil || i.Salary.To != nil) {
		v.Salary = &vacancy.Salary{From: i.Salary.From, To: i.Salary.To, Currency: i.Salary.Currency}
	}
	return v
}
