package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for DeliveryOutcomeSkipped.
const (
	AlreadyDeliveredToday DeliveryOutcomeSkipped = "already_delivered_today"
	NoStoredQuery         DeliveryOutcomeSkipped = "no_stored_query"
	NotDue                DeliveryOutcomeSkipped = "not_due"
	NotScheduled          DeliveryOutcomeSkipped = "not_scheduled"
	NothingFound          DeliveryOutcomeSkipped = "nothing_found"
	NothingNew            DeliveryOutcomeSkipped = "nothing_new"
)

// Button defines model for Button.
type Button struct {
	CallbackData string `json:"callback_data"`
	Text         string `json:"text"`
}

// Callback defines model for Callback.
type Callback struct {
	ChatId    *int64 `json:"chat_id,omitempty"`
	Data      string `json:"data"`
	MessageId *int64 `json:"message_id,omitempty"`
	UserId    int64  `json:"user_id"`
}

// CallbackResult defines model for CallbackResult.
type CallbackResult struct {
	Noop bool        `json:"noop"`
	Page *SearchPage `json:"page,omitempty"`
}

// DeliveryOutcome defines model for DeliveryOutcome.
type DeliveryOutcome struct {
	Count     int                     `json:"count"`
	Delivered bool                    `json:"delivered"`
	Marked    bool                    `json:"marked"`
	Query     *string                 `json:"query,omitempty"`
	Skipped   *DeliveryOutcomeSkipped `json:"skipped,omitempty"`
	UserId    int64                   `json:"user_id"`
}

// DeliveryOutcomeSkipped defines model for DeliveryOutcome.Skipped.
type DeliveryOutcomeSkipped string

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RecentSearch defines model for RecentSearch.
type RecentSearch struct {
	Clicked        int                `json:"clicked"`
	CreatedAt      time.Time          `json:"created_at"`
	Id             openapi_types.UUID `json:"id"`
	Query          string             `json:"query"`
	ResponseTimeMs int64              `json:"response_time_ms"`
	ResultsCount   int                `json:"results_count"`
}

// Salary defines model for Salary.
type Salary struct {
	Currency *string `json:"currency,omitempty"`
	From     *int    `json:"from,omitempty"`
	To       *int    `json:"to,omitempty"`
}

// SearchPage defines model for SearchPage.
type SearchPage struct {
	Keyboard   *[][]Button `json:"keyboard,omitempty"`
	Page       int         `json:"page"`
	Query      string      `json:"query"`
	Sent       *bool       `json:"sent,omitempty"`
	Text       string      `json:"text"`
	TotalFound int         `json:"total_found"`
	TotalPages int         `json:"total_pages"`
	Vacancies  []Vacancy   `json:"vacancies"`
}

// SearchRequest defines model for SearchRequest.
type SearchRequest struct {
	ChatId *int64 `json:"chat_id,omitempty"`
	Query  string `json:"query"`
}

// Vacancy defines model for Vacancy.
type Vacancy struct {
	Company    *string `json:"company,omitempty"`
	ExternalId string  `json:"external_id"`
	Location   *string `json:"location,omitempty"`
	Salary     *Salary `json:"salary,omitempty"`
	Title      string  `json:"title"`
	Url        *string `json:"url,omitempty"`
}

// UserId defines model for UserId.
type UserId = int64

// GetRecentSearchesParams defines parameters for GetRecentSearches.
type GetRecentSearchesParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetSearchPageParams defines parameters for GetSearchPage.
type GetSearchPageParams struct {
	Query string `form:"query" json:"query"`
	Page  int    `form:"page" json:"page"`
}

// DeliverVacanciesParams defines parameters for DeliverVacancies.
type DeliverVacanciesParams struct {
	Force *bool `form:"force,omitempty" json:"force,omitempty"`
	Mark  *bool `form:"mark,omitempty" json:"mark,omitempty"`
}

// SearchVacanciesJSONRequestBody defines body for SearchVacancies for application/json ContentType.
type SearchVacanciesJSONRequestBody = SearchRequest

// HandleCallbackJSONRequestBody defines body for HandleCallback for application/json ContentType.
type HandleCallbackJSONRequestBody = Callback
