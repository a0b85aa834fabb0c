package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "vacancybot/internal/adapters/in/http"
	"vacancybot/internal/core/application/usecases/commands"
	"vacancybot/internal/core/application/usecases/queries"
	"vacancybot/internal/core/domain/model/delivery"
	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/core/domain/services"
	"vacancybot/internal/core/ports"
	"vacancybot/internal/generated/servers"
	"vacancybot/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSearchHandler struct{ mock.Mock }

func (m *MockSearchHandler) Handle(ctx context.Context, cmd commands.SearchVacanciesCommand) (commands.SearchVacanciesResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SearchVacanciesResult), args.Error(1)
}

type MockPageHandler struct{ mock.Mock }

func (m *MockPageHandler) Handle(ctx context.Context, query queries.GetSearchPageQuery) (queries.GetSearchPageQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetSearchPageQueryResponse), args.Error(1)
}

type MockRecentHandler struct{ mock.Mock }

func (m *MockRecentHandler) Handle(ctx context.Context, query queries.GetRecentSearchesQuery) ([]queries.GetRecentSearchesQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.GetRecentSearchesQueryResponse), args.Error(1)
}

type MockOpenPageHandler struct{ mock.Mock }

func (m *MockOpenPageHandler) Handle(ctx context.Context, cmd commands.OpenSearchPageCommand) (commands.OpenSearchPageResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.OpenSearchPageResult), args.Error(1)
}

type MockDeliverHandler struct{ mock.Mock }

func (m *MockDeliverHandler) Handle(ctx context.Context, cmd commands.DeliverVacanciesCommand) (commands.DeliveryOutcome, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DeliveryOutcome), args.Error(1)
}

type MockClickHandler struct{ mock.Mock }

func (m *MockClickHandler) Handle(ctx context.Context, cmd commands.MarkVacancyClickedCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

type apiFixture struct {
	search  *MockSearchHandler
	page    *MockPageHandler
	recent  *MockRecentHandler
	open    *MockOpenPageHandler
	deliver *MockDeliverHandler
	click   *MockClickHandler
	now     time.Time
	router  *echo.Echo
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	f := &apiFixture{
		search:  &MockSearchHandler{},
		page:    &MockPageHandler{},
		recent:  &MockRecentHandler{},
		open:    &MockOpenPageHandler{},
		deliver: &MockDeliverHandler{},
		click:   &MockClickHandler{},
		now:     time.Date(2024, 5, 10, 6, 0, 0, 0, time.UTC),
	}
	server := httpadapter.NewServer(f.search, f.open, f.deliver, f.click, f.page, f.recent, fixedClock{now: f.now})

	router, err := httpadapter.NewRouter(server, log.OFF)
	require.NoError(t, err)
	f.router = router
	return f
}

func (f *apiFixture) do(method, target, body string, header ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func sampleLayout() services.Layout {
	layout, _ := services.NewPaginator().Render(7, 0, 5, 120)
	return layout
}

func TestHealth(t *testing.T) {
	rec := newAPI(t).do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestSearchVacancies(t *testing.T) {
	f := newAPI(t)
	from := 200000
	items := []vacancy.Vacancy{
		{ExternalID: "1", Title: "Go developer", Company: "Acme", URL: "https://hh.ru/vacancy/1",
			Salary: &vacancy.Salary{From: &from, Currency: "RUR"}},
		{ExternalID: "2", Title: "Gopher"},
	}
	msg := ports.Message{Text: "Found 120 vacancies", Keyboard: [][]ports.Button{{{Text: "2", CallbackData: "search_page:golang:1"}}}}

	f.search.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SearchVacanciesCommand) bool {
		return cmd.UserID() == 5 && cmd.Text() == "golang" && cmd.ChatID() == 55 && cmd.Lang() == "ru"
	})).Return(commands.SearchVacanciesResult{
		QueryText:  "golang",
		TotalFound: 120,
		Items:      items,
		Layout:     sampleLayout(),
		Message:    msg,
		Sent:       true,
	}, nil)

	rec := f.do(http.MethodPost, "/api/v1/users/5/searches", `{"query": "golang", "chat_id": 55}`, "Accept-Language", "ru")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[servers.SearchPage](t, rec)
	assert.Equal(t, "golang", page.Query)
	assert.Equal(t, 120, page.TotalFound)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Vacancies, 2)
	require.NotNil(t, page.Vacancies[0].Salary)
	assert.Equal(t, 200000, *page.Vacancies[0].Salary.From)
	assert.Nil(t, page.Vacancies[1].Company)
	require.NotNil(t, page.Keyboard)
	assert.Equal(t, "search_page:golang:1", (*page.Keyboard)[0][0].CallbackData)
	require.NotNil(t, page.Sent)
	assert.True(t, *page.Sent)
}

func TestSearchVacancies_RejectedByValidation(t *testing.T) {
	testCases := []struct {
		name   string
		target string
		body   string
	}{
		{"missing_query", "/api/v1/users/5/searches", `{"chat_id": 1}`},
		{"empty_query", "/api/v1/users/5/searches", `{"query": ""}`},
		{"non_numeric_user", "/api/v1/users/abc/searches", `{"query": "go"}`},
		{"zero_user", "/api/v1/users/0/searches", `{"query": "go"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAPI(t)

			rec := f.do(http.MethodPost, tc.target, tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode[servers.Error](t, rec)
			assert.Equal(t, http.StatusBadRequest, body.Code)
			assert.Equal(t, "The request is invalid.", body.Message)
			f.search.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestSearchVacancies_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		lang    string
		code    int
		message string
	}{
		{"provider_unavailable", ports.ErrProviderUnavailable, "en", http.StatusServiceUnavailable,
			"The vacancy search service is temporarily unavailable. Please try again later."},
		{"provider_unavailable_ru", ports.ErrProviderUnavailable, "ru-RU,ru;q=0.9", http.StatusServiceUnavailable,
			"Сервис поиска вакансий временно недоступен. Попробуйте позже."},
		{"send_failed", errors.Join(commands.ErrSendFailed, errors.New("blocked")), "en", http.StatusBadGateway,
			"Something went wrong. Please try again later."},
		{"unexpected", errors.New("pq: connection refused"), "en", http.StatusInternalServerError,
			"Something went wrong. Please try again later."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAPI(t)
			f.search.On("Handle", mock.Anything, mock.Anything).Return(commands.SearchVacanciesResult{}, tc.err)

			rec := f.do(http.MethodPost, "/api/v1/users/5/searches", `{"query": "golang"}`, "Accept-Language", tc.lang)

			assert.Equal(t, tc.code, rec.Code)
			body := decode[servers.Error](t, rec)
			assert.Equal(t, tc.message, body.Message)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestGetSearchPage(t *testing.T) {
	f := newAPI(t)
	f.page.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetSearchPageQuery) bool {
		return q.UserID() == 5 && q.Text() == "go: senior" && q.Page() == 1
	})).Return(queries.GetSearchPageQueryResponse{
		QueryText: "go: senior",
		Items:     []vacancy.Vacancy{{ExternalID: "6", Title: "Senior Go"}},
		Layout:    services.Layout{PageIndex: 1, TotalPages: 2, TotalFound: 6},
		Message:   ports.Message{Text: "page 2"},
	}, nil)

	rec := f.do(http.MethodGet, "/api/v1/users/5/searches/page?query=go%3A+senior&page=1", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[servers.SearchPage](t, rec)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, "page 2", page.Text)
	assert.Nil(t, page.Keyboard)
}

func TestGetSearchPage_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"expired", queries.ErrSearchNotFound, http.StatusNotFound,
			"These results are no longer available. Please repeat the search."},
		{"out_of_range", errs.NewValueIsOutOfRangeError("pageIndex", 9, 0, 1), http.StatusBadRequest,
			"The request is invalid."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAPI(t)
			f.page.On("Handle", mock.Anything, mock.Anything).Return(queries.GetSearchPageQueryResponse{}, tc.err)

			rec := f.do(http.MethodGet, "/api/v1/users/5/searches/page?query=golang&page=9", "")

			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.message, decode[servers.Error](t, rec).Message)
		})
	}

	t.Run("missing_page", func(t *testing.T) {
		rec := newAPI(t).do(http.MethodGet, "/api/v1/users/5/searches/page?query=golang", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetRecentSearches(t *testing.T) {
	f := newAPI(t)
	id := kernel.NewUUID()
	created := time.Date(2024, 5, 9, 10, 0, 0, 0, time.UTC)
	f.recent.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetRecentSearchesQuery) bool {
		return q.UserID() == 5 && q.Limit() == 3
	})).Return([]queries.GetRecentSearchesQueryResponse{
		{ID: id, Text: "golang", ResultsCount: 40, ResponseTimeMs: 350, Clicked: 2, CreatedAt: created},
	}, nil)

	rec := f.do(http.MethodGet, "/api/v1/users/5/searches?limit=3", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	searches := decode[[]servers.RecentSearch](t, rec)
	require.Len(t, searches, 1)
	assert.Equal(t, id.Bytes(), searches[0].Id)
	assert.Equal(t, 2, searches[0].Clicked)
	assert.True(t, searches[0].CreatedAt.Equal(created))
}

func TestHandleCallback(t *testing.T) {
	t.Run("page", func(t *testing.T) {
		f := newAPI(t)
		f.open.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.OpenSearchPageCommand) bool {
			return cmd.UserID() == 5 && cmd.ChatID() == 55 && cmd.MessageID() == 900 && cmd.Callback().Page == 2
		})).Return(commands.OpenSearchPageResult{Page: queries.GetSearchPageQueryResponse{
			QueryText: "golang",
			Layout:    services.Layout{PageIndex: 2, TotalPages: 3},
			Message:   ports.Message{Text: "page 3"},
		}}, nil)

		rec := f.do(http.MethodPost, "/api/v1/callbacks",
			`{"user_id": 5, "chat_id": 55, "message_id": 900, "data": "search_page:golang:2"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		result := decode[servers.CallbackResult](t, rec)
		assert.False(t, result.Noop)
		require.NotNil(t, result.Page)
		assert.Equal(t, 2, result.Page.Page)
	})

	t.Run("noop", func(t *testing.T) {
		f := newAPI(t)
		f.open.On("Handle", mock.Anything, mock.Anything).Return(commands.OpenSearchPageResult{Noop: true}, nil)

		rec := f.do(http.MethodPost, "/api/v1/callbacks", `{"user_id": 5, "data": "noop"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		result := decode[servers.CallbackResult](t, rec)
		assert.True(t, result.Noop)
		assert.Nil(t, result.Page)
	})

	t.Run("unknown_token", func(t *testing.T) {
		f := newAPI(t)

		rec := f.do(http.MethodPost, "/api/v1/callbacks", `{"user_id": 5, "chat_id": 1, "message_id": 1, "data": "menu"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.open.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestDeliverVacancies(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		force bool
		mark  bool
	}{
		{"defaults", "", false, true},
		{"force_without_marking", "?force=true&mark=false", true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAPI(t)
			f.deliver.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DeliverVacanciesCommand) bool {
				return cmd.UserID() == 5 && cmd.Now().Equal(f.now) && cmd.Force() == tc.force && cmd.MarkSent() == tc.mark
			})).Return(commands.DeliveryOutcome{UserID: 5, Skipped: delivery.NotDue}, nil)

			rec := f.do(http.MethodPost, "/api/v1/users/5/deliveries"+tc.query, "")

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			outcome := decode[servers.DeliveryOutcome](t, rec)
			assert.False(t, outcome.Delivered)
			require.NotNil(t, outcome.Skipped)
			assert.Equal(t, servers.NotDue, *outcome.Skipped)
			f.deliver.AssertExpectations(t)
		})
	}
}

func TestDeliverVacancies_UnknownUser(t *testing.T) {
	f := newAPI(t)
	f.deliver.On("Handle", mock.Anything, mock.Anything).
		Return(commands.DeliveryOutcome{}, errs.NewObjectNotFoundError("user", int64(5)))

	rec := f.do(http.MethodPost, "/api/v1/users/5/deliveries", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkVacancyClicked(t *testing.T) {
	f := newAPI(t)
	id := kernel.NewUUID()
	f.click.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.MarkVacancyClickedCommand) bool {
		return cmd.UserID() == 5 && cmd.VacancyID() == id
	})).Return(nil)

	rec := f.do(http.MethodPost, "/api/v1/users/5/vacancies/"+id.String()+"/click", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.click.AssertExpectations(t)

	rec = f.do(http.MethodPost, "/api/v1/users/5/vacancies/not-a-uuid/click", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSwaggerUI(t *testing.T) {
	rec := newAPI(t).do(http.MethodGet, "/swagger/doc.json", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/callbacks")
}
