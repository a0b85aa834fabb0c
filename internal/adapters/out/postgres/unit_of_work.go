// Package postgres provides the GORM implementation of the unit of work that
// bounds every write of the vacancy bot: a search's query record, vacancy
// upserts and result links commit together or not at all.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.SearchQueryRepository().Add(ctx, record); err != nil {
//	    return err
//	}
//	ids, err := uow.VacancyRepository().Upsert(ctx, items)
//	...
//	return uow.Commit(ctx)
//
// Each UnitOfWork is single-goroutine; concurrent operations create their own.
package postgres

import (
	"context"

	"vacancybot/internal/adapters/out/postgres/searchrepo"
	"vacancybot/internal/adapters/out/postgres/userrepo"
	"vacancybot/internal/adapters/out/postgres/vacancyrepo"
	"vacancybot/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with no transaction open.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction. Repositories obtained
// from it run inside the transaction once Begin has been called and directly
// on the pool otherwise.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the transaction's changes permanent.
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction's changes. It is safe to defer right after
// Begin: after a successful Commit it returns gorm.ErrInvalidTransaction,
// which callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) VacancyRepository() ports.VacancyRepository {
	return vacancyrepo.NewGormVacancyRepository(uow.conn())
}

func (uow *GormUnitOfWork) SearchQueryRepository() ports.SearchQueryRepository {
	return searchrepo.NewGormSearchQueryRepository(uow.conn())
}

func (uow *GormUnitOfWork) SearchResultRepository() ports.SearchResultRepository {
	return searchrepo.NewGormSearchResultRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}
