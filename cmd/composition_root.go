package cmd

import (
	"log/slog"

	httpin "vacancybot/internal/adapters/in/http"
	"vacancybot/internal/adapters/out/cache/memory"
	rediscache "vacancybot/internal/adapters/out/cache/redis"
	"vacancybot/internal/adapters/out/hh"
	"vacancybot/internal/adapters/out/postgres"
	"vacancybot/internal/adapters/out/telegram"
	"vacancybot/internal/core/application/fetcher"
	"vacancybot/internal/core/application/history"
	"vacancybot/internal/core/application/usecases/commands"
	"vacancybot/internal/core/application/usecases/queries"
	"vacancybot/internal/core/ports"
	"vacancybot/internal/jobs"
	"vacancybot/internal/pkg/clock"
	"vacancybot/internal/pkg/retry"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	recorder   *history.Recorder
	cache      ports.ResultCache
	redis      *goredis.Client
	fetcher    *fetcher.Fetcher
	transport  ports.Transport
	pages      queries.GetSearchPageQueryHandler
	deliverer  commands.DeliverVacanciesCommandHandler
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clock.System{},
		logger:     logger,
	}
	c.recorder = history.NewRecorder(c.uowFactory, logger)

	if cfg.Redis.Addr != "" {
		c.redis = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		c.cache = rediscache.NewCache(c.redis, cfg.Cache.TTL, logger)
	} else {
		c.cache = memory.NewCache(cfg.Cache.TTL, c.clock)
	}

	provider := hh.NewClient(hh.Config{
		BaseURL:   cfg.HH.BaseURL,
		UserAgent: cfg.HH.UserAgent,
		Timeout:   cfg.HH.Timeout,
	})
	c.fetcher = fetcher.NewFetcher(provider, logger,
		fetcher.WithPolicy(retry.NewPolicy(cfg.Search.MaxAttempts, cfg.Search.RetryDelay)),
		fetcher.WithPageDelay(cfg.Search.PageDelay),
	)

	// A nil *Transport must stay a nil interface so handlers see "not configured".
	if t := telegram.NewTransport(telegram.Config{
		APIURL:  cfg.Telegram.APIURL,
		Token:   cfg.Telegram.Token,
		Timeout: cfg.Telegram.Timeout,
	}, logger); t != nil {
		c.transport = t
	} else {
		logger.Warn("telegram token is not set, messages will not be sent")
	}

	// Shared so that page loads coalesce across the HTTP and callback paths.
	c.pages = queries.NewGetSearchPageQueryHandler(c.cache, c.recorder, cfg.Search.PageSize, logger)
	c.deliverer = commands.NewDeliverVacanciesCommandHandler(
		c.userUoWFactory(), c.fetcher, c.recorder, c.cache, c.transport,
		commands.DeliverySettings{
			BatchSize: cfg.Delivery.BatchSize,
			PageSize:  cfg.Search.PageSize,
		},
		logger,
	)

	return c
}

// Close releases connections the root opened itself.
func (c *CompositionRoot) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) searchResultUoWFactory() commands.SearchResultUoWFactory {
	return FuncSearchResultUoWFactory(func() commands.SearchResultUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) searchSettings() commands.SearchSettings {
	return commands.SearchSettings{
		PerPage:  c.cfg.Search.PerPage,
		MaxPages: c.cfg.Search.MaxPages,
		PageSize: c.cfg.Search.PageSize,
	}
}

func (c *CompositionRoot) CreateSearchVacanciesCommandHandler() commands.SearchVacanciesCommandHandler {
	return commands.NewSearchVacanciesCommandHandler(
		c.userUoWFactory(), c.fetcher, c.recorder, c.cache, c.transport,
		c.searchSettings(), c.clock, c.logger,
	)
}

func (c *CompositionRoot) CreateDeliverVacanciesCommandHandler() commands.DeliverVacanciesCommandHandler {
	return c.deliverer
}

func (c *CompositionRoot) CreateRunDeliveryTickCommandHandler() commands.RunDeliveryTickCommandHandler {
	return commands.NewRunDeliveryTickCommandHandler(
		c.userUoWFactory(), c.CreateDeliverVacanciesCommandHandler(), c.cfg.Delivery.Concurrency, c.logger,
	)
}

func (c *CompositionRoot) CreateOpenSearchPageCommandHandler() commands.OpenSearchPageCommandHandler {
	return commands.NewOpenSearchPageCommandHandler(c.CreateGetSearchPageQueryHandler(), c.transport)
}

func (c *CompositionRoot) CreateMarkVacancyClickedCommandHandler() commands.MarkVacancyClickedCommandHandler {
	return commands.NewMarkVacancyClickedCommandHandler(c.searchResultUoWFactory())
}

func (c *CompositionRoot) CreateGetSearchPageQueryHandler() queries.GetSearchPageQueryHandler {
	return c.pages
}

func (c *CompositionRoot) CreateGetRecentSearchesQueryHandler() queries.GetRecentSearchesQueryHandler {
	return queries.NewGetRecentSearchesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateSearchVacanciesCommandHandler(),
		c.CreateOpenSearchPageCommandHandler(),
		c.CreateDeliverVacanciesCommandHandler(),
		c.CreateMarkVacancyClickedCommandHandler(),
		c.CreateGetSearchPageQueryHandler(),
		c.CreateGetRecentSearchesQueryHandler(),
		c.clock,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRunDeliveryTickCommandHandler(),
		jobs.Config{DeliverySchedule: c.cfg.Delivery.Schedule, DeliveryTimeout: c.cfg.Delivery.Timeout},
		c.clock,
		c.logger,
	)
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncSearchResultUoWFactory func() commands.SearchResultUoW

func (f FuncSearchResultUoWFactory) Create() commands.SearchResultUoW {
	return f()
}
