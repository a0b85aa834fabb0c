package jobs

import (
	"context"
	"log/slog"
	"time"

	"vacancybot/internal/core/application/usecases/commands"
	"vacancybot/internal/pkg/clock"

	"github.com/robfig/cron/v3"
)

// DefaultDeliverySchedule fires at the start of every minute, the resolution
// of users' HH:MM delivery times.
const DefaultDeliverySchedule = "0 * * * * *"

// DeliveryTickHandler runs one pass over the scheduled users.
type DeliveryTickHandler interface {
	Handle(ctx context.Context, cmd commands.RunDeliveryTickCommand) (commands.TickReport, error)
}

// VacancyDeliveryJob triggers scheduled vacancy delivery. A tick that is
// still running when the next one is due makes the next one skip.
type VacancyDeliveryJob struct {
	handler  DeliveryTickHandler
	schedule string
	timeout  time.Duration
	clock    clock.Clock
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewVacancyDeliveryJob creates the job. An empty schedule selects
// DefaultDeliverySchedule; timeout bounds a single tick when positive.
func NewVacancyDeliveryJob(
	handler DeliveryTickHandler,
	schedule string,
	timeout time.Duration,
	clk clock.Clock,
	logger *slog.Logger,
) *VacancyDeliveryJob {
	if schedule == "" {
		schedule = DefaultDeliverySchedule
	}
	logger = logger.With("component", "vacancy_delivery_job")
	cl := cronLogger{logger: logger}

	return &VacancyDeliveryJob{
		handler:  handler,
		schedule: schedule,
		timeout:  timeout,
		clock:    clk,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}
}

// Start schedules the job.
func (j *VacancyDeliveryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.tick); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Vacancy delivery job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running tick to finish.
func (j *VacancyDeliveryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Vacancy delivery job stopped")
}

func (j *VacancyDeliveryJob) tick() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	cmd, err := commands.NewRunDeliveryTickCommand(j.clock.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Vacancy delivery tick not created", "error", err)
		return
	}

	report, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Vacancy delivery tick failed", "error", err)
		return
	}
	if report.Failed > 0 {
		j.logger.WarnContext(ctx, "Vacancy delivery tick finished with failures",
			"users", report.Users,
			"delivered", report.Delivered,
			"failed", report.Failed,
		)
	}
}
