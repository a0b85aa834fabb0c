package userrepo_test

import (
	"context"
	"testing"
	"time"

	"vacancybot/internal/adapters/out/postgres/userrepo"
	"vacancybot/internal/core/domain/model/delivery"
	"vacancybot/internal/core/domain/model/user"
	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *userrepo.GormUserRepository
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&userrepo.UserDTO{}))
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE users").Error)
	suite.repository = userrepo.NewGormUserRepository(suite.db)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UserRepositoryIntegrationTestSuite) addUser(id int64, schedule string) user.User {
	prefs, err := delivery.NewPreferences(schedule, "Asia/Tokyo")
	suite.Require().NoError(err)
	u := user.User{
		ID:           id,
		ChatID:       id * 10,
		LanguageCode: "ru",
		AreaID:       "1",
		Filters:      vacancy.SearchFilters{OnlyWithSalary: true, Experience: "between1And3"},
		Delivery:     prefs,
	}
	suite.Require().NoError(suite.repository.Add(context.Background(), u))
	return u
}

func (suite *UserRepositoryIntegrationTestSuite) TestGet() {
	want := suite.addUser(1, "09:30")

	got, err := suite.repository.Get(context.Background(), 1)
	suite.Require().NoError(err)
	suite.Equal(want.ChatID, got.ChatID)
	suite.Equal(want.Filters, got.Filters)
	suite.Equal("09:30", got.Delivery.ScheduleTime())
	suite.Equal("Asia/Tokyo", got.Delivery.Timezone())
	suite.Nil(got.Delivery.LastSentAt())
}

func (suite *UserRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), 404)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UserRepositoryIntegrationTestSuite) TestListScheduled() {
	suite.addUser(3, "08:00")
	suite.addUser(1, "")
	suite.addUser(2, "21:15")

	users, err := suite.repository.ListScheduled(context.Background())
	suite.Require().NoError(err)
	suite.Require().Len(users, 2)
	suite.Equal(int64(2), users[0].ID)
	suite.Equal(int64(3), users[1].ID)
}

func (suite *UserRepositoryIntegrationTestSuite) TestSaveDeliveryState() {
	ctx := context.Background()
	u := suite.addUser(1, "09:00")
	sentAt := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)

	updated := u.Delivery.RecordDelivery([]string{"a", "b"}, sentAt)
	suite.Require().NoError(suite.repository.SaveDeliveryState(ctx, u.ID, updated))

	got, err := suite.repository.Get(ctx, u.ID)
	suite.Require().NoError(err)
	suite.Equal([]string{"a", "b"}, got.Delivery.SentIDs())
	suite.Require().NotNil(got.Delivery.LastSentAt())
	suite.True(sentAt.Equal(*got.Delivery.LastSentAt()))
}

func (suite *UserRepositoryIntegrationTestSuite) TestSaveDeliveryState_UnknownUser() {
	prefs, err := delivery.NewPreferences("09:00", "")
	suite.Require().NoError(err)

	err = suite.repository.SaveDeliveryState(context.Background(), 77, prefs)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UserRepositoryIntegrationTestSuite) TestSwapLastSentAt_OnlyOneClaimWins() {
	ctx := context.Background()
	u := suite.addUser(1, "09:00")
	first := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	second := first.Add(time.Second)

	ok, err := suite.repository.SwapLastSentAt(ctx, u.ID, nil, &first)
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.repository.SwapLastSentAt(ctx, u.ID, nil, &second)
	suite.Require().NoError(err)
	suite.False(ok, "stale prev must not overwrite")

	got, err := suite.repository.Get(ctx, u.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(got.Delivery.LastSentAt())
	suite.True(first.Equal(*got.Delivery.LastSentAt()))

	ok, err = suite.repository.SwapLastSentAt(ctx, u.ID, &first, nil)
	suite.Require().NoError(err)
	suite.True(ok)

	got, err = suite.repository.Get(ctx, u.ID)
	suite.Require().NoError(err)
	suite.Nil(got.Delivery.LastSentAt())
}

func (suite *UserRepositoryIntegrationTestSuite) TestSwapLastSentAt_UnknownUser() {
	at := time.Now().UTC()

	ok, err := suite.repository.SwapLastSentAt(context.Background(), 77, nil, &at)

	suite.Require().NoError(err)
	suite.False(ok)
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
