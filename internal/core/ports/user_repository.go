package ports

import (
	"context"
	"time"

	"vacancybot/internal/core/domain/model/delivery"
	"vacancybot/internal/core/domain/model/user"
)

// UserRepository reads bot users and writes back their delivery state.
type UserRepository interface {
	// Get returns the user by internal id or errs.ErrObjectNotFound.
	Get(ctx context.Context, id int64) (user.User, error)

	// ListScheduled returns users with a non-empty delivery schedule.
	ListScheduled(ctx context.Context) ([]user.User, error)

	// SaveDeliveryState persists the sent history and last delivery time.
	SaveDeliveryState(ctx context.Context, userID int64, prefs delivery.Preferences) error

	// SwapLastSentAt sets the last delivery time to next only if it still
	// equals prev (nil meaning never delivered) and reports whether it did.
	// Concurrent deliveries claim the user's day with it before sending.
	SwapLastSentAt(ctx context.Context, userID int64, prev, next *time.Time) (bool, error)
}
