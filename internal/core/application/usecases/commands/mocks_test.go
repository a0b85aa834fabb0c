package commands_test

import (
	"context"
	"sync"
	"time"

	"vacancybot/internal/core/application/fetcher"
	"vacancybot/internal/core/application/history"
	"vacancybot/internal/core/application/usecases/commands"
	"vacancybot/internal/core/application/usecases/queries"
	"vacancybot/internal/core/domain/model/delivery"
	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/core/domain/model/search"
	"vacancybot/internal/core/domain/model/user"
	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Get(ctx context.Context, id int64) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) ListScheduled(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepository) SaveDeliveryState(ctx context.Context, userID int64, prefs delivery.Preferences) error {
	args := m.Called(ctx, userID, prefs)
	return args.Error(0)
}

func (m *MockUserRepository) SwapLastSentAt(ctx context.Context, userID int64, prev, next *time.Time) (bool, error) {
	args := m.Called(ctx, userID, prev, next)
	return args.Bool(0), args.Error(1)
}

type MockSearchResultRepository struct{ mock.Mock }

func (m *MockSearchResultRepository) Link(ctx context.Context, queryID kernel.UUID, userID int64, links []search.ResultLink) error {
	return m.Called(ctx, queryID, userID, links).Error(0)
}

func (m *MockSearchResultRepository) VacanciesForQuery(ctx context.Context, queryID kernel.UUID) ([]vacancy.Vacancy, error) {
	args := m.Called(ctx, queryID)
	return args.Get(0).([]vacancy.Vacancy), args.Error(1)
}

func (m *MockSearchResultRepository) MarkClicked(ctx context.Context, userID int64, vacancyID kernel.UUID) error {
	return m.Called(ctx, userID, vacancyID).Error(0)
}

// MockUoW serves both unit of work shapes used by the handlers.
type MockUoW struct {
	mock.Mock
	users   *MockUserRepository
	results *MockSearchResultRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{users: &MockUserRepository{}, results: &MockSearchResultRepository{}}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.users
}

func (m *MockUoW) SearchResultRepository() ports.SearchResultRepository {
	return m.results
}

type MockUserUoWFactory struct{ uow *MockUoW }

func (f MockUserUoWFactory) Create() commands.UserUoW {
	return f.uow
}

type MockSearchResultUoWFactory struct{ uow *MockUoW }

func (f MockSearchResultUoWFactory) Create() commands.SearchResultUoW {
	return f.uow
}

type MockFetcher struct{ mock.Mock }

func (m *MockFetcher) Fetch(ctx context.Context, req fetcher.Request) (fetcher.Result, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(fetcher.Result), args.Error(1)
}

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) Record(ctx context.Context, e history.Entry) (kernel.UUID, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockRecorder) LatestQuery(ctx context.Context, userID int64, text string) (search.QueryRecord, error) {
	args := m.Called(ctx, userID, text)
	return args.Get(0).(search.QueryRecord), args.Error(1)
}

type MockResultCache struct{ mock.Mock }

func (m *MockResultCache) Get(ctx context.Context, userID int64, text string) (ports.CachedResult, bool, error) {
	args := m.Called(ctx, userID, text)
	return args.Get(0).(ports.CachedResult), args.Bool(1), args.Error(2)
}

func (m *MockResultCache) Put(ctx context.Context, userID int64, text string, result ports.CachedResult) error {
	return m.Called(ctx, userID, text, result).Error(0)
}

type MockTransport struct{ mock.Mock }

func (m *MockTransport) SendOrEdit(ctx context.Context, target ports.ChatTarget, msg ports.Message) error {
	return m.Called(ctx, target, msg).Error(0)
}

type MockPageReader struct{ mock.Mock }

func (m *MockPageReader) Handle(ctx context.Context, query queries.GetSearchPageQuery) (queries.GetSearchPageQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetSearchPageQueryResponse), args.Error(1)
}

// fixedClock never advances.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func listings(ids ...string) []vacancy.Vacancy {
	items := make([]vacancy.Vacancy, 0, len(ids))
	for _, id := range ids {
		items = append(items, vacancy.Vacancy{ExternalID: id, Title: "Vacancy " + id, Company: "Acme"})
	}
	return items
}
