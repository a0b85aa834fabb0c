package commands

import (
	"errors"

	"vacancybot/internal/core/application/presenter"
	"vacancybot/internal/pkg/errs"
	"vacancybot/internal/pkg/guard"
)

var ErrOpenSearchPageCommandIsNotConstructed = errors.New(
	"OpenSearchPageCommand must be created via NewOpenSearchPageCommand constructor",
)

// OpenSearchPageCommand is a pressed results keyboard button. The message the
// button belongs to is replaced with the requested page.
type OpenSearchPageCommand struct { //nolint:recvcheck //using for validation
	userID    int64
	chatID    int64
	messageID int64
	callback  presenter.Callback
	lang      string

	guard guard.ConstructorGuard
}

// NewOpenSearchPageCommand decodes data, which must be a search_page or noop
// callback token.
func NewOpenSearchPageCommand(userID, chatID, messageID int64, data, lang string) (OpenSearchPageCommand, error) {
	if userID <= 0 {
		return OpenSearchPageCommand{}, errs.NewValueIsRequiredError("userID")
	}

	callback, err := presenter.ParseCallback(data)
	if err != nil {
		return OpenSearchPageCommand{}, err
	}

	if !callback.Noop && (chatID == 0 || messageID == 0) {
		return OpenSearchPageCommand{}, errs.NewValueIsRequiredError("message")
	}

	return OpenSearchPageCommand{
		userID:    userID,
		chatID:    chatID,
		messageID: messageID,
		callback:  callback,
		lang:      lang,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c OpenSearchPageCommand) Validate() error {
	return c.guard.Validate(ErrOpenSearchPageCommandIsNotConstructed)
}

func (c OpenSearchPageCommand) UserID() int64 {
	return c.userID
}

func (c OpenSearchPageCommand) ChatID() int64 {
	return c.chatID
}

func (c OpenSearchPageCommand) MessageID() int64 {
	return c.messageID
}

func (c OpenSearchPageCommand) Callback() presenter.Callback {
	return c.callback
}

func (c OpenSearchPageCommand) Lang() string {
	return c.lang
}
