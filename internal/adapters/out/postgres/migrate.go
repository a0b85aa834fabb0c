package postgres

import (
	"context"
	"fmt"

	"vacancybot/internal/adapters/out/postgres/searchrepo"
	"vacancybot/internal/adapters/out/postgres/userrepo"
	"vacancybot/internal/adapters/out/postgres/vacancyrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in creation order.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&vacancyrepo.VacancyDTO{},
		&searchrepo.SearchQueryDTO{},
		&searchrepo.UserSearchResultDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
