package vacancyrepo

import (
	"context"

	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 100

// GormVacancyRepository implements ports.VacancyRepository using GORM.
type GormVacancyRepository struct {
	db *gorm.DB
}

func NewGormVacancyRepository(db *gorm.DB) *GormVacancyRepository {
	return &GormVacancyRepository{db: db}
}

// Upsert inserts unseen vacancies and refreshes display fields of known ones
// with a single INSERT .. ON CONFLICT (external_id) DO UPDATE per batch, then
// reads back the ids of every input row.
func (r *GormVacancyRepository) Upsert(ctx context.Context, vacancies []vacancy.Vacancy) (map[string]kernel.UUID, error) {
	if len(vacancies) == 0 {
		return map[string]kernel.UUID{}, nil
	}

	// Postgres refuses to touch the same row twice in one statement, so
	// repeated external ids collapse to their last occurrence.
	position := make(map[string]int, len(vacancies))
	dtos := make([]VacancyDTO, 0, len(vacancies))
	for _, v := range vacancies {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if i, ok := position[v.ExternalID]; ok {
			id := dtos[i].ID
			dtos[i] = fromDomain(v)
			dtos[i].ID = id
			continue
		}
		position[v.ExternalID] = len(dtos)
		dtos = append(dtos, fromDomain(v))
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns(refreshedColumns),
		}).
		CreateInBatches(&dtos, upsertBatchSize).Error
	if err != nil {
		return nil, err
	}

	externalIDs := make([]string, 0, len(dtos))
	for _, dto := range dtos {
		externalIDs = append(externalIDs, dto.ExternalID)
	}

	var rows []struct {
		ID         uuid.UUID
		ExternalID string
	}
	err = r.db.WithContext(ctx).
		Model(&VacancyDTO{}).
		Select("id", "external_id").
		Where("external_id IN ?", externalIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make(map[string]kernel.UUID, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		ids[row.ExternalID] = id
	}
	if len(ids) != len(dtos) {
		return nil, errs.NewObjectNotFoundError("vacancy", "upserted rows")
	}

	return ids, nil
}
