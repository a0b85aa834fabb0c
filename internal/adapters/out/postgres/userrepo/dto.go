// Package userrepo reads bot users and stores their delivery state.
package userrepo

import (
	"time"

	"vacancybot/internal/adapters/out/postgres/searchrepo"
	"vacancybot/internal/core/domain/model/delivery"
	"vacancybot/internal/core/domain/model/user"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// UserDTO is the "users" row. Delivery preferences are typed columns.
type UserDTO struct {
	ID                  int64  `gorm:"primaryKey;autoIncrement:false"`
	TgUserID            int64  `gorm:"not null;uniqueIndex"`
	LanguageCode        string `gorm:"size:8"`
	HhAreaID            string `gorm:"size:16"`
	SearchFilters       datatypes.JSONMap
	VacancyScheduleTime string         `gorm:"size:5;index"`
	Timezone            string         `gorm:"size:64"`
	SentVacancyIDs      pq.StringArray `gorm:"type:text[]"`
	VacancyLastSentAt   *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u user.User) (UserDTO, error) {
	filters, err := searchrepo.FiltersToMap(u.Filters)
	if err != nil {
		return UserDTO{}, err
	}
	return UserDTO{
		ID:                  u.ID,
		TgUserID:            u.ChatID,
		LanguageCode:        u.LanguageCode,
		HhAreaID:            u.AreaID,
		SearchFilters:       filters,
		VacancyScheduleTime: u.Delivery.ScheduleTime(),
		Timezone:            u.Delivery.Timezone(),
		SentVacancyIDs:      pq.StringArray(u.Delivery.SentIDs()),
		VacancyLastSentAt:   u.Delivery.LastSentAt(),
	}, nil
}

func toDomain(dto UserDTO) (user.User, error) {
	filters, err := searchrepo.FiltersFromMap(dto.SearchFilters)
	if err != nil {
		return user.User{}, err
	}
	return user.User{
		ID:           dto.ID,
		ChatID:       dto.TgUserID,
		LanguageCode: dto.LanguageCode,
		AreaID:       dto.HhAreaID,
		Filters:      filters,
		Delivery: delivery.RestorePreferences(
			dto.VacancyScheduleTime,
			dto.Timezone,
			dto.SentVacancyIDs,
			dto.VacancyLastSentAt,
		),
	}, nil
}
