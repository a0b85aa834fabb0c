package ports

import (
	"context"

	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/core/domain/model/vacancy"
)

// VacancyRepository persists listings keyed by their external id.
type VacancyRepository interface {
	// Upsert inserts new vacancies and refreshes display fields of known ones.
	// It returns the internal id of every input vacancy keyed by external id.
	// Internal ids never change once assigned.
	Upsert(ctx context.Context, vacancies []vacancy.Vacancy) (map[string]kernel.UUID, error)
}
