package commands

import (
	"errors"
	"strings"

	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/pkg/errs"
	"vacancybot/internal/pkg/guard"
)

var ErrSearchVacanciesCommandIsNotConstructed = errors.New(
	"SearchVacanciesCommand must be created via NewSearchVacanciesCommand constructor",
)

// SearchVacanciesCommand asks for a fresh provider search on behalf of a user.
// A non-zero chatID also sends the first page to that chat.
//
// Example:
//
//	cmd, err := NewSearchVacanciesCommand(user.ID, "golang developer", chatID, "ru")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type SearchVacanciesCommand struct { //nolint:recvcheck //using for validation
	userID int64
	text   string
	chatID int64
	lang   string

	guard guard.ConstructorGuard
}

// NewSearchVacanciesCommand validates the user id and the query text.
// lang may be empty, in which case the user's stored language is used.
func NewSearchVacanciesCommand(userID int64, text string, chatID int64, lang string) (SearchVacanciesCommand, error) {
	cmd := SearchVacanciesCommand{
		chatID: chatID,
		lang:   strings.TrimSpace(lang),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setText(text),
	); err != nil {
		return SearchVacanciesCommand{}, err
	}

	return cmd, nil
}

func (c SearchVacanciesCommand) Validate() error {
	return c.guard.Validate(ErrSearchVacanciesCommandIsNotConstructed)
}

func (c SearchVacanciesCommand) UserID() int64 {
	return c.userID
}

// Text returns the normalized query text.
func (c SearchVacanciesCommand) Text() string {
	return c.text
}

func (c SearchVacanciesCommand) ChatID() int64 {
	return c.chatID
}

func (c SearchVacanciesCommand) Lang() string {
	return c.lang
}

func (c *SearchVacanciesCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsRequiredError("userID")
	}

	c.userID = userID
	return nil
}

func (c *SearchVacanciesCommand) setText(text string) error {
	text = vacancy.NormalizeText(text)
	if text == "" {
		return errs.NewValueIsRequiredError("queryText")
	}

	c.text = text
	return nil
}
