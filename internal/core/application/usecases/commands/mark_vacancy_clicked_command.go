package commands

import (
	"errors"

	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/pkg/errs"
	"vacancybot/internal/pkg/guard"
)

var ErrMarkVacancyClickedCommandIsNotConstructed = errors.New(
	"MarkVacancyClickedCommand must be created via NewMarkVacancyClickedCommand constructor",
)

// MarkVacancyClickedCommand records that a user opened a vacancy they were shown.
type MarkVacancyClickedCommand struct { //nolint:recvcheck //using for validation
	userID    int64
	vacancyID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkVacancyClickedCommand(userID int64, vacancyID kernel.UUID) (MarkVacancyClickedCommand, error) {
	if userID <= 0 {
		return MarkVacancyClickedCommand{}, errs.NewValueIsRequiredError("userID")
	}
	if err := vacancyID.Validate(); err != nil {
		return MarkVacancyClickedCommand{}, err
	}

	return MarkVacancyClickedCommand{
		userID:    userID,
		vacancyID: vacancyID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c MarkVacancyClickedCommand) Validate() error {
	return c.guard.Validate(ErrMarkVacancyClickedCommandIsNotConstructed)
}

func (c MarkVacancyClickedCommand) UserID() int64 {
	return c.userID
}

func (c MarkVacancyClickedCommand) VacancyID() kernel.UUID {
	return c.vacancyID
}
