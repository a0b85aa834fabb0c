package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"vacancybot/internal/core/domain/model/delivery"
	"vacancybot/internal/core/domain/model/user"

	"github.com/sourcegraph/conc/pool"
)

// TickReport summarizes one pass over the scheduled users.
type TickReport struct {
	Users     int
	Delivered int
	Failed    int
	Skipped   map[delivery.SkipReason]int
}

// RunDeliveryTickCommandHandler serves every scheduled user once. Users are
// independent: an error or panic while serving one is logged and the rest
// are still served.
//
// Example:
//
//	handler := NewRunDeliveryTickCommandHandler(users, deliverer, 4, logger)
//	cmd, _ := NewRunDeliveryTickCommand(time.Now())
//	report, err := handler.Handle(ctx, cmd)
// DefaultTickConcurrency serves users one at a time.
const DefaultTickConcurrency = 1

type RunDeliveryTickCommandHandler struct {
	users       UserUoWFactory
	deliverer   DeliverVacanciesCommandHandler
	concurrency int
	logger      *slog.Logger
}

// NewRunDeliveryTickCommandHandler creates the handler. concurrency below 1
// means users are served one at a time.
func NewRunDeliveryTickCommandHandler(
	users UserUoWFactory,
	deliverer DeliverVacanciesCommandHandler,
	concurrency int,
	logger *slog.Logger,
) RunDeliveryTickCommandHandler {
	return RunDeliveryTickCommandHandler{
		users:       users,
		deliverer:   deliverer,
		concurrency: max(concurrency, 1),
		logger:      logger.With("component", "delivery_tick"),
	}
}

// Handle fails only when the scheduled users cannot be listed.
func (h RunDeliveryTickCommandHandler) Handle(ctx context.Context, cmd RunDeliveryTickCommand) (TickReport, error) {
	if err := cmd.Validate(); err != nil {
		return TickReport{}, err
	}

	scheduled, err := h.users.Create().UserRepository().ListScheduled(ctx)
	if err != nil {
		return TickReport{}, fmt.Errorf("list scheduled users: %w", err)
	}

	var (
		p      = pool.New().WithContext(ctx).WithMaxGoroutines(h.concurrency)
		mu     sync.Mutex
		report = TickReport{Users: len(scheduled), Skipped: make(map[delivery.SkipReason]int)}
	)

	for _, u := range scheduled {
		p.Go(func(ctx context.Context) error {
			outcome, serveErr := h.serve(ctx, u, cmd)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case serveErr != nil:
				report.Failed++
				h.logger.ErrorContext(ctx, "failed to deliver vacancies",
					"user_id", u.ID,
					"error", serveErr,
				)
			case outcome.Delivered:
				report.Delivered++
			default:
				report.Skipped[outcome.Skipped]++
			}
			return nil
		})
	}
	_ = p.Wait()

	if report.Delivered > 0 || report.Failed > 0 {
		h.logger.InfoContext(ctx, "delivery tick finished",
			"users", report.Users,
			"delivered", report.Delivered,
			"failed", report.Failed,
		)
	}
	return report, nil
}

func (h RunDeliveryTickCommandHandler) serve(
	ctx context.Context,
	u user.User,
	cmd RunDeliveryTickCommand,
) (outcome DeliveryOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while delivering: %v", r)
		}
	}()

	return h.deliverer.deliver(ctx, u, cmd.Now(), false, true)
}
