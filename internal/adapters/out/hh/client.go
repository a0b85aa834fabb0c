// Package hh is the hh.ru job listings client behind ports.SearchProvider.
package hh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/core/ports"
)

const (
	DefaultBaseURL = "https://api.hh.ru"
	DefaultTimeout = 10 * time.Second

	// maxErrorBody bounds how much of a failed response ends up in an error.
	maxErrorBody = 4 << 10
)

// Config holds connection settings. UserAgent is required by hh.ru; without
// it the client reports ports.ErrProviderUnavailable.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client fetches vacancy pages from hh.ru.
//
// Example:
//
//	client := hh.NewClient(hh.Config{UserAgent: "vacancybot/1.0 (ops@example.com)"})
//	page, err := client.SearchPage(ctx, ports.PageRequest{Query: q, Page: 0, PerPage: 100})
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client, e.g. in tests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: strings.TrimSpace(cfg.UserAgent),
		http:      &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchPage implements ports.SearchProvider.
func (c *Client) SearchPage(ctx context.Context, req ports.PageRequest) (vacancy.Page, error) {
	if c.userAgent == "" {
		return vacancy.Page{}, ports.ErrProviderUnavailable
	}

	endpoint := c.baseURL + "/vacancies?" + searchParams(req).Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return vacancy.Page{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("HH-User-Agent", c.userAgent)
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return vacancy.Page{}, fmt.Errorf("http GET /vacancies: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return vacancy.Page{}, statusError(resp)
	}

	var body searchResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return vacancy.Page{}, fmt.Errorf("decode /vacancies response: %w", err)
	}

	return body.toDomain(), nil
}

// searchParams maps a request onto hh.ru query parameters.
func searchParams(req ports.PageRequest) url.Values {
	q := req.Query
	params := url.Values{}

	text := q.Text
	if q.TitleOnly {
		text = "NAME:(" + text + ")"
	}
	params.Set("text", text)
	params.Set("page", strconv.Itoa(req.Page))
	if req.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(min(req.PerPage, ports.MaxPerPage)))
	}
	if q.AreaID != "" {
		params.Set("area", q.AreaID)
	}

	f := q.Filters
	if f.Salary > 0 {
		params.Set("salary", strconv.Itoa(f.Salary))
	}
	if f.OnlyWithSalary {
		params.Set("only_with_salary", "true")
	}
	if f.Experience != "" {
		params.Set("experience", f.Experience)
	}
	if f.Employment != "" {
		params.Set("employment", f.Employment)
	}
	if f.Schedule != "" {
		params.Set("schedule", f.Schedule)
	}
	return params
}

// StatusError is a non-200 answer from hh.ru.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("hh.ru returned %d", e.StatusCode)
	}
	return fmt.Sprintf("hh.ru returned %d: %s", e.StatusCode, e.Detail)
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	detail := strings.TrimSpace(string(raw))
	var body errorResponse
	if json.Unmarshal(raw, &body) == nil {
		if s := body.String(); s != "" {
			detail = s
		}
	}
	return &StatusError{StatusCode: resp.StatusCode, Detail: detail}
}
