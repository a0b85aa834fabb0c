package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vacancybot/internal/core/application/fetcher"
	"vacancybot/internal/core/application/history"
	"vacancybot/internal/core/application/presenter"
	"vacancybot/internal/core/domain/model/delivery"
	"vacancybot/internal/core/domain/model/user"
	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/core/domain/services"
	"vacancybot/internal/core/ports"
	"vacancybot/internal/pkg/errs"
)

// ErrTransportNotConfigured is returned when a delivery is due but there is
// no way to message users.
var ErrTransportNotConfigured = errors.New("message transport is not configured")

// DeliveryOutcome reports what a delivery did for one user.
type DeliveryOutcome struct {
	UserID    int64
	Delivered bool
	// Skipped is set when nothing was sent for an expected reason.
	Skipped   delivery.SkipReason
	QueryText string
	Count     int
	// Marked reports whether the sent history was updated.
	Marked bool
}

// DeliverVacanciesCommandHandler runs the delivery flow for a single user:
// gate on the schedule, repeat the user's latest search, drop listings sent
// before, send the rest and remember them.
//
// Example:
//
//	cmd, _ := NewDeliverVacanciesCommand(userID, time.Now(), false, true)
//	outcome, err := handler.Handle(ctx, cmd)
//	if err == nil && !outcome.Delivered {
//	    log.Printf("skipped: %s", outcome.Skipped)
//	}
type DeliverVacanciesCommandHandler struct {
	users     UserUoWFactory
	fetcher   VacancyFetcher
	recorder  SearchRecorder
	keeper    resultKeeper
	transport ports.Transport
	settings  DeliverySettings
	logger    *slog.Logger
}

func NewDeliverVacanciesCommandHandler(
	users UserUoWFactory,
	vacancyFetcher VacancyFetcher,
	recorder SearchRecorder,
	cache ports.ResultCache,
	transport ports.Transport,
	settings DeliverySettings,
	logger *slog.Logger,
) DeliverVacanciesCommandHandler {
	logger = logger.With("component", "delivery")
	return DeliverVacanciesCommandHandler{
		users:     users,
		fetcher:   vacancyFetcher,
		recorder:  recorder,
		keeper:    resultKeeper{recorder: recorder, cache: cache, logger: logger},
		transport: transport,
		settings:  settings,
		logger:    logger,
	}
}

// Handle loads the user and delivers. Skips are not errors.
func (h DeliverVacanciesCommandHandler) Handle(ctx context.Context, cmd DeliverVacanciesCommand) (DeliveryOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return DeliveryOutcome{}, err
	}

	u, err := h.users.Create().UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return DeliveryOutcome{}, err
	}

	return h.deliver(ctx, u, cmd.Now(), cmd.Force(), cmd.MarkSent())
}

func (h DeliverVacanciesCommandHandler) deliver(
	ctx context.Context,
	u user.User,
	now time.Time,
	force, markSent bool,
) (outcome DeliveryOutcome, err error) {
	outcome = DeliveryOutcome{UserID: u.ID}
	prefs := u.Delivery

	if ok, reason := prefs.Gate(now, force); !ok {
		outcome.Skipped = reason
		return outcome, nil
	}

	if h.transport == nil {
		return outcome, ErrTransportNotConfigured
	}

	// Unforced runs claim the local day before any work so that a tick and a
	// manual delivery racing for the same user send only once.
	if !force {
		prev := prefs.LastSentAt()
		claimedAt := now.UTC()
		claimed, claimErr := h.users.Create().UserRepository().SwapLastSentAt(ctx, u.ID, prev, &claimedAt)
		if claimErr != nil {
			return outcome, fmt.Errorf("claim delivery: %w", claimErr)
		}
		if !claimed {
			h.logger.InfoContext(ctx, "delivery already claimed", "user_id", u.ID)
			outcome.Skipped = delivery.AlreadyDeliveredToday
			return outcome, nil
		}
		defer func() {
			if outcome.Delivered && markSent {
				return
			}
			h.release(ctx, u.ID, &claimedAt, prev)
		}()
	}

	latest, err := h.recorder.LatestQuery(ctx, u.ID, "")
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.InfoContext(ctx, "skip user without stored query", "user_id", u.ID)
		outcome.Skipped = delivery.NoStoredQuery
		return outcome, nil
	}
	if err != nil {
		return outcome, fmt.Errorf("load latest query: %w", err)
	}
	outcome.QueryText = latest.Text

	q, err := vacancy.NewQuery(latest.Text, u.AreaID, u.Filters, true)
	if err != nil {
		outcome.Skipped = delivery.NoStoredQuery
		return outcome, nil
	}

	fetched, err := h.fetcher.Fetch(ctx, fetcher.Request{
		Query:    q,
		PerPage:  h.settings.BatchSize,
		MaxPages: 1,
	})
	if err != nil {
		return outcome, err
	}
	if len(fetched.Items) == 0 {
		h.logger.InfoContext(ctx, "no vacancies found", "user_id", u.ID, "query", q.Text)
		outcome.Skipped = delivery.NothingFound
		return outcome, nil
	}

	fresh := prefs.Unsent(fetched.Items, force)
	if len(fresh) == 0 {
		h.logger.InfoContext(ctx, "all vacancies already sent", "user_id", u.ID, "query", q.Text)
		outcome.Skipped = delivery.NothingNew
		return outcome, nil
	}
	if len(fresh) > h.settings.BatchSize {
		fresh = fresh[:h.settings.BatchSize]
	}

	h.keeper.keep(ctx, history.Entry{
		UserID:    u.ID,
		Query:     q,
		Vacancies: fresh,
		Elapsed:   fetched.Elapsed,
		Now:       now,
	}, len(fresh))

	layout, err := services.NewPaginator().Render(len(fresh), 0, h.settings.PageSize, len(fresh))
	if err != nil {
		return outcome, err
	}
	msg := presenter.New(u.LanguageCode).ResultsPage(presenter.DigestHeading, q.Text, fresh, layout)

	if err = h.transport.SendOrEdit(ctx, ports.ChatTarget{ChatID: u.ChatID}, msg); err != nil {
		return outcome, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	outcome.Delivered = true
	outcome.Count = len(fresh)

	if markSent {
		if err = h.markSent(ctx, u.ID, prefs.RecordDelivery(vacancy.ExternalIDs(fresh), now)); err != nil {
			return outcome, fmt.Errorf("save delivery state: %w", err)
		}
		outcome.Marked = true
	}

	h.logger.InfoContext(ctx, "vacancies delivered",
		"user_id", u.ID,
		"query", q.Text,
		"count", len(fresh),
		"forced", force,
		"marked", outcome.Marked,
	)
	return outcome, nil
}

// release hands the day back when the claim did not end in a recorded
// delivery. It runs even if ctx is already cancelled.
func (h DeliverVacanciesCommandHandler) release(ctx context.Context, userID int64, claimed, prev *time.Time) {
	ctx = context.WithoutCancel(ctx)
	if _, err := h.users.Create().UserRepository().SwapLastSentAt(ctx, userID, claimed, prev); err != nil {
		h.logger.ErrorContext(ctx, "failed to release delivery claim", "user_id", userID, "error", err)
	}
}

func (h DeliverVacanciesCommandHandler) markSent(ctx context.Context, userID int64, prefs delivery.Preferences) error {
	uow := h.users.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.UserRepository().SaveDeliveryState(ctx, userID, prefs); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
