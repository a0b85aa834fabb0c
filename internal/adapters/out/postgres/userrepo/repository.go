package userrepo

import (
	"context"
	"errors"
	"time"

	"vacancybot/internal/core/domain/model/delivery"
	"vacancybot/internal/core/domain/model/user"
	"vacancybot/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add inserts a user. Users are normally created by the profile flow; this is
// used by seeding and tests.
func (r *GormUserRepository) Add(ctx context.Context, u user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	dto, err := fromDomain(u)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a user by internal id.
func (r *GormUserRepository) Get(ctx context.Context, id int64) (user.User, error) {
	var dto UserDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, errs.NewObjectNotFoundError("user", id)
	}
	if err != nil {
		return user.User{}, err
	}
	return toDomain(dto)
}

// ListScheduled returns every user with a delivery schedule, ordered by id.
func (r *GormUserRepository) ListScheduled(ctx context.Context) ([]user.User, error) {
	var dtos []UserDTO
	err := r.db.WithContext(ctx).
		Where("vacancy_schedule_time IS NOT NULL AND vacancy_schedule_time <> ''").
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	users := make([]user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		users = append(users, u)
	}
	return users, nil
}

// SaveDeliveryState writes the sent history and the last delivery time.
func (r *GormUserRepository) SaveDeliveryState(ctx context.Context, userID int64, prefs delivery.Preferences) error {
	res := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"sent_vacancy_ids":     pq.StringArray(prefs.SentIDs()),
			"vacancy_last_sent_at": prefs.LastSentAt(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", userID)
	}
	return nil
}

// SwapLastSentAt is a single conditional UPDATE, so of two racing callers
// holding the same prev only one sees true.
func (r *GormUserRepository) SwapLastSentAt(ctx context.Context, userID int64, prev, next *time.Time) (bool, error) {
	q := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", userID)
	if prev == nil {
		q = q.Where("vacancy_last_sent_at IS NULL")
	} else {
		q = q.Where("vacancy_last_sent_at = ?", prev.UTC())
	}

	res := q.Update("vacancy_last_sent_at", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
