// Package http is the inbound REST adapter. It implements
// servers.ServerInterface on top of the application's command and query
// handlers and maps their errors to localized {code, message} bodies.
package http

import (
	"net/http"

	"vacancybot/internal/core/application/usecases/commands"
	"vacancybot/internal/core/application/usecases/queries"
	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/core/domain/services"
	"vacancybot/internal/core/ports"
	"vacancybot/internal/generated/servers"
	"vacancybot/internal/pkg/clock"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	searchHandler    SearchVacanciesHandler
	openPageHandler  OpenSearchPageHandler
	deliverHandler   DeliverVacanciesHandler
	markClickHandler MarkVacancyClickedHandler

	// Query handlers
	searchPageHandler     SearchPageHandler
	recentSearchesHandler RecentSearchesHandler

	clock clock.Clock
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	searchHandler SearchVacanciesHandler,
	openPageHandler OpenSearchPageHandler,
	deliverHandler DeliverVacanciesHandler,
	markClickHandler MarkVacancyClickedHandler,
	searchPageHandler SearchPageHandler,
	recentSearchesHandler RecentSearchesHandler,
	clk clock.Clock,
) *Server {
	return &Server{
		searchHandler:         searchHandler,
		openPageHandler:       openPageHandler,
		deliverHandler:        deliverHandler,
		markClickHandler:      markClickHandler,
		searchPageHandler:     searchPageHandler,
		recentSearchesHandler: recentSearchesHandler,
		clock:                 clk,
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// SearchVacancies handles POST /api/v1/users/{userId}/searches - runs a new
// search and returns its first page.
func (s *Server) SearchVacancies(ctx echo.Context, userID servers.UserId) error {
	var body servers.SearchVacanciesJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, err.Error()))
	}

	var chatID int64
	if body.ChatId != nil {
		chatID = *body.ChatId
	}

	cmd, err := commands.NewSearchVacanciesCommand(userID, body.Query, chatID, language(ctx))
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.searchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	page := searchPage(result.QueryText, result.Items, result.Layout, result.Message)
	page.TotalFound = result.TotalFound
	page.Sent = &result.Sent
	return ctx.JSON(http.StatusOK, page)
}

// GetSearchPage handles GET /api/v1/users/{userId}/searches/page - serves a
// page of an earlier search without calling the provider.
func (s *Server) GetSearchPage(ctx echo.Context, userID servers.UserId, params servers.GetSearchPageParams) error {
	query, err := queries.NewGetSearchPageQuery(userID, params.Query, params.Page, language(ctx))
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.searchPageHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, searchPage(result.QueryText, result.Items, result.Layout, result.Message))
}

// GetRecentSearches handles GET /api/v1/users/{userId}/searches.
func (s *Server) GetRecentSearches(ctx echo.Context, userID servers.UserId, params servers.GetRecentSearchesParams) error {
	var limit int
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetRecentSearchesQuery(userID, limit)
	if err != nil {
		return errorResponse(ctx, err)
	}

	searches, err := s.recentSearchesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]servers.RecentSearch, len(searches))
	for i, item := range searches {
		response[i] = servers.RecentSearch{
			Id:             item.ID.Bytes(),
			Query:          item.Text,
			ResultsCount:   item.ResultsCount,
			ResponseTimeMs: item.ResponseTimeMs,
			Clicked:        item.Clicked,
			CreatedAt:      item.CreatedAt.UTC(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// HandleCallback handles POST /api/v1/callbacks - a pressed results
// keyboard button.
func (s *Server) HandleCallback(ctx echo.Context) error {
	var body servers.HandleCallbackJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, err.Error()))
	}

	var chatID, messageID int64
	if body.ChatId != nil {
		chatID = *body.ChatId
	}
	if body.MessageId != nil {
		messageID = *body.MessageId
	}

	cmd, err := commands.NewOpenSearchPageCommand(body.UserId, chatID, messageID, body.Data, language(ctx))
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.openPageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := servers.CallbackResult{Noop: result.Noop}
	if !result.Noop {
		page := searchPage(result.Page.QueryText, result.Page.Items, result.Page.Layout, result.Page.Message)
		response.Page = &page
	}
	return ctx.JSON(http.StatusOK, response)
}

// DeliverVacancies handles POST /api/v1/users/{userId}/deliveries - runs the
// daily delivery for one user now. force skips the time gate; mark=false
// leaves the sent history untouched.
func (s *Server) DeliverVacancies(ctx echo.Context, userID servers.UserId, params servers.DeliverVacanciesParams) error {
	force := params.Force != nil && *params.Force
	mark := params.Mark == nil || *params.Mark

	cmd, err := commands.NewDeliverVacanciesCommand(userID, s.clock.Now(), force, mark)
	if err != nil {
		return errorResponse(ctx, err)
	}

	outcome, err := s.deliverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := servers.DeliveryOutcome{
		UserId:    outcome.UserID,
		Delivered: outcome.Delivered,
		Count:     outcome.Count,
		Marked:    outcome.Marked,
	}
	if outcome.QueryText != "" {
		response.Query = &outcome.QueryText
	}
	if outcome.Skipped != "" {
		skipped := servers.DeliveryOutcomeSkipped(outcome.Skipped)
		response.Skipped = &skipped
	}
	return ctx.JSON(http.StatusOK, response)
}

// MarkVacancyClicked handles POST /api/v1/users/{userId}/vacancies/{vacancyId}/click.
func (s *Server) MarkVacancyClicked(ctx echo.Context, userID servers.UserId, vacancyID openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(vacancyID[:])
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewMarkVacancyClickedCommand(userID, id)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.markClickHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func language(ctx echo.Context) string {
	return ctx.Request().Header.Get("Accept-Language")
}

func searchPage(query string, items []vacancy.Vacancy, layout services.Layout, msg ports.Message) servers.SearchPage {
	page := servers.SearchPage{
		Query:      query,
		TotalFound: layout.TotalFound,
		Page:       layout.PageIndex,
		TotalPages: layout.TotalPages,
		Vacancies:  make([]servers.Vacancy, len(items)),
		Text:       msg.Text,
	}
	for i, item := range items {
		page.Vacancies[i] = vacancyView(item)
	}
	if len(msg.Keyboard) > 0 {
		keyboard := make([][]servers.Button, len(msg.Keyboard))
		for i, row := range msg.Keyboard {
			keyboard[i] = make([]servers.Button, len(row))
			for j, btn := range row {
				keyboard[i][j] = servers.Button{Text: btn.Text, CallbackData: btn.CallbackData}
			}
		}
		page.Keyboard = &keyboard
	}
	return page
}

func vacancyView(v vacancy.Vacancy) servers.Vacancy {
	view := servers.Vacancy{
		ExternalId: v.ExternalID,
		Title:      v.Title,
		Company:    optional(v.Company),
		Location:   optional(v.Location),
		Url:        optional(v.URL),
	}
	if v.Salary.IsSpecified() {
		view.Salary = &servers.Salary{
			From:     v.Salary.From,
			To:       v.Salary.To,
			Currency: optional(v.Salary.Currency),
		}
	}
	return view
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
