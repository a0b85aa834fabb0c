package commands

import (
	"context"
)

// MarkVacancyClickedCommandHandler sets the clicked flag on the user's result
// rows for a vacancy. Returns errs.ErrObjectNotFound if the user was never
// shown it.
type MarkVacancyClickedCommandHandler struct {
	uowFactory SearchResultUoWFactory
}

func NewMarkVacancyClickedCommandHandler(uowFactory SearchResultUoWFactory) MarkVacancyClickedCommandHandler {
	return MarkVacancyClickedCommandHandler{uowFactory: uowFactory}
}

func (h MarkVacancyClickedCommandHandler) Handle(ctx context.Context, cmd MarkVacancyClickedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SearchResultRepository().MarkClicked(ctx, cmd.UserID(), cmd.VacancyID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
