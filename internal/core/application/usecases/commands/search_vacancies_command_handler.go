package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"vacancybot/internal/core/application/fetcher"
	"vacancybot/internal/core/application/history"
	"vacancybot/internal/core/application/presenter"
	"vacancybot/internal/core/domain/model/user"
	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/core/domain/services"
	"vacancybot/internal/core/ports"
	"vacancybot/internal/pkg/clock"
	"vacancybot/internal/pkg/errs"
	"vacancybot/internal/pkg/i18n"
)

// ErrSendFailed wraps transport errors after the results were already stored.
var ErrSendFailed = errors.New("failed to send results")

// SearchVacanciesResult is what the user sees after a search.
type SearchVacanciesResult struct {
	QueryText  string
	TotalFound int
	// Items are the first page of listings; all of them are cached.
	Items   []vacancy.Vacancy
	Layout  services.Layout
	Message ports.Message
	Sent    bool
}

// SearchVacanciesCommandHandler runs an interactive search: fetch every page,
// record the search, cache the result list and render page one.
//
// Example:
//
//	handler := NewSearchVacanciesCommandHandler(users, fetcher, recorder, cache, transport,
//	    DefaultSearchSettings(), clock.System{}, logger)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ports.ErrProviderUnavailable) {
//	    // tell the user the service is unavailable
//	}
type SearchVacanciesCommandHandler struct {
	users     UserUoWFactory
	fetcher   VacancyFetcher
	keeper    resultKeeper
	transport ports.Transport
	settings  SearchSettings
	clock     clock.Clock
	logger    *slog.Logger
}

// NewSearchVacanciesCommandHandler wires the handler. transport may be nil, in
// which case nothing is sent and only the rendered message is returned.
func NewSearchVacanciesCommandHandler(
	users UserUoWFactory,
	vacancyFetcher VacancyFetcher,
	recorder SearchRecorder,
	cache ports.ResultCache,
	transport ports.Transport,
	settings SearchSettings,
	clk clock.Clock,
	logger *slog.Logger,
) SearchVacanciesCommandHandler {
	logger = logger.With("component", "search")
	return SearchVacanciesCommandHandler{
		users:     users,
		fetcher:   vacancyFetcher,
		keeper:    resultKeeper{recorder: recorder, cache: cache, logger: logger},
		transport: transport,
		settings:  settings,
		clock:     clk,
		logger:    logger,
	}
}

// Handle runs the search. It fails only when the provider is unavailable, the
// command is invalid, or the message could not be sent; storage and cache
// failures are logged.
func (h SearchVacanciesCommandHandler) Handle(ctx context.Context, cmd SearchVacanciesCommand) (SearchVacanciesResult, error) {
	if err := cmd.Validate(); err != nil {
		return SearchVacanciesResult{}, err
	}

	profile, err := h.profile(ctx, cmd.UserID())
	if err != nil {
		return SearchVacanciesResult{}, err
	}

	lang := cmd.Lang()
	if lang == "" {
		lang = profile.LanguageCode
	}

	q, err := vacancy.NewQuery(cmd.Text(), profile.AreaID, profile.Filters, true)
	if err != nil {
		return SearchVacanciesResult{}, err
	}

	fetched, err := h.fetcher.Fetch(ctx, fetcher.Request{
		Query:    q,
		PerPage:  h.settings.PerPage,
		MaxPages: h.settings.MaxPages,
	})
	if err != nil {
		return SearchVacanciesResult{}, err
	}

	h.keeper.keep(ctx, history.Entry{
		UserID:    cmd.UserID(),
		Query:     q,
		Vacancies: fetched.Items,
		Elapsed:   fetched.Elapsed,
		Now:       h.clock.Now(),
	}, fetched.Found)

	pr := presenter.New(lang)
	result := SearchVacanciesResult{QueryText: q.Text, TotalFound: fetched.Found}

	if len(fetched.Items) == 0 {
		result.Message = ports.Message{Text: pr.Text(i18n.NothingFound)}
	} else {
		layout, renderErr := services.NewPaginator().Render(len(fetched.Items), 0, h.settings.PageSize, fetched.Found)
		if renderErr != nil {
			return SearchVacanciesResult{}, renderErr
		}
		result.Layout = layout
		result.Items = vacancy.PageOf(fetched.Items, layout.Start, layout.End)
		result.Message = pr.ResultsPage(presenter.SearchHeading, q.Text, fetched.Items, layout)
	}

	if cmd.ChatID() == 0 || h.transport == nil {
		return result, nil
	}

	if err = h.transport.SendOrEdit(ctx, ports.ChatTarget{ChatID: cmd.ChatID()}, result.Message); err != nil {
		return result, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	result.Sent = true

	h.logger.InfoContext(ctx, "search results sent",
		"user_id", cmd.UserID(),
		"query", q.Text,
		"vacancies", len(fetched.Items),
		"pages", result.Layout.TotalPages,
	)
	return result, nil
}

// profile loads the user's search defaults. Unknown users search with none.
func (h SearchVacanciesCommandHandler) profile(ctx context.Context, userID int64) (user.User, error) {
	u, err := h.users.Create().UserRepository().Get(ctx, userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return user.User{ID: userID}, nil
	}
	return u, err
}
