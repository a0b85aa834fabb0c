package commands

import (
	"errors"
	"time"

	"vacancybot/internal/pkg/errs"
	"vacancybot/internal/pkg/guard"
)

var ErrRunDeliveryTickCommandIsNotConstructed = errors.New(
	"RunDeliveryTickCommand must be created via NewRunDeliveryTickCommand constructor",
)

// RunDeliveryTickCommand asks for one pass over every scheduled user.
type RunDeliveryTickCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewRunDeliveryTickCommand evaluates every schedule at now.
func NewRunDeliveryTickCommand(now time.Time) (RunDeliveryTickCommand, error) {
	if now.IsZero() {
		return RunDeliveryTickCommand{}, errs.NewValueIsRequiredError("now")
	}

	return RunDeliveryTickCommand{now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c RunDeliveryTickCommand) Validate() error {
	return c.guard.Validate(ErrRunDeliveryTickCommandIsNotConstructed)
}

func (c RunDeliveryTickCommand) Now() time.Time {
	return c.now
}
