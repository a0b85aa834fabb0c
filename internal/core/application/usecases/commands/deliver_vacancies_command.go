package commands

import (
	"errors"
	"time"

	"vacancybot/internal/pkg/errs"
	"vacancybot/internal/pkg/guard"
)

var ErrDeliverVacanciesCommandIsNotConstructed = errors.New(
	"DeliverVacanciesCommand must be created via NewDeliverVacanciesCommand constructor",
)

// DeliverVacanciesCommand asks for one scheduled delivery to one user.
//
// force skips the schedule check, the once-per-day rule and the sent-history
// filter. markSent=false delivers without updating the sent history, which
// is how previews are made.
type DeliverVacanciesCommand struct { //nolint:recvcheck //using for validation
	userID   int64
	now      time.Time
	force    bool
	markSent bool

	guard guard.ConstructorGuard
}

func NewDeliverVacanciesCommand(userID int64, now time.Time, force, markSent bool) (DeliverVacanciesCommand, error) {
	if userID <= 0 {
		return DeliverVacanciesCommand{}, errs.NewValueIsRequiredError("userID")
	}
	if now.IsZero() {
		return DeliverVacanciesCommand{}, errs.NewValueIsRequiredError("now")
	}

	return DeliverVacanciesCommand{
		userID:   userID,
		now:      now,
		force:    force,
		markSent: markSent,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DeliverVacanciesCommand) Validate() error {
	return c.guard.Validate(ErrDeliverVacanciesCommandIsNotConstructed)
}

func (c DeliverVacanciesCommand) UserID() int64 {
	return c.userID
}

// Now is the instant the schedule is evaluated at.
func (c DeliverVacanciesCommand) Now() time.Time {
	return c.now
}

func (c DeliverVacanciesCommand) Force() bool {
	return c.force
}

func (c DeliverVacanciesCommand) MarkSent() bool {
	return c.markSent
}
