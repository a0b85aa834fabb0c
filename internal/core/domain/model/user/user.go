// Package user models a bot user as far as searching and delivery need it.
// Profile editing lives outside this service; users are read from storage and
// only their delivery state is written back.
package user

import (
	"vacancybot/internal/core/domain/model/delivery"
	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/pkg/errs"
)

// User is a subscriber of the bot.
type User struct {
	// ID is the internal user id; search history is keyed by it.
	ID int64
	// ChatID is where messages for the user are sent.
	ChatID       int64
	LanguageCode string
	// AreaID is the provider's region id, empty for "anywhere".
	AreaID   string
	Filters  vacancy.SearchFilters
	Delivery delivery.Preferences
}

// Validate checks identifiers required to search for and message the user.
func (u User) Validate() error {
	if u.ID == 0 {
		return errs.NewValueIsRequiredError("userID")
	}
	if u.ChatID == 0 {
		return errs.NewValueIsRequiredError("chatID")
	}
	return nil
}

// WithDelivery returns a copy of the user carrying prefs.
func (u User) WithDelivery(prefs delivery.Preferences) User {
	u.Delivery = prefs
	return u
}
