package repositories

import (
	"context"
	"errors"
	"time"

	"speedballhub/internal/database"
	"speedballhub/internal/logger"
	. "speedballhub/internal/models"
	"speedballhub/internal/services"

	"gorm.io/gorm"
)

const TEST_CACHE_EXPIRY = 1 * time.Hour

type TestRepository interface {
	GetAll(ctx context.Context, filter TestListFilter) ([]Test, error)
	GetByID(ctx context.Context, id string) (*Test, error)
	Create(ctx context.Context, test *Test) error
	Update(ctx context.Context, test *Test) error
	Delete(ctx context.Context, id string) error
}

type testRepository struct {
	db  database.DB
	log logger.Logger
}

func NewTest(db database.DB) TestRepository {
	return &testRepository{
		db:  db,
		log: logger.New("testRepository"),
	}
}

func (r *testRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *testRepository) GetAll(ctx context.Context, filter TestListFilter) ([]Test, error) {
	log := r.log.Function("GetAll")

	query := r.getDB(ctx).Model(&Test{})

	if filter.TestType != "" {
		query = query.Where("test_type = ?", filter.TestType)
	}

	var tests []Test
	if err := query.
		Order("date_conducted DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&tests).Error; err != nil {
		return nil, log.Err("failed to get tests", err, "filter", filter)
	}

	return tests, nil
}

func (r *testRepository) GetByID(ctx context.Context, id string) (*Test, error) {
	log := r.log.Function("GetByID")

	var test Test
	found, err := database.NewCacheBuilder(r.db.Cache.Test, id).WithContext(ctx).Get(&test)
	if err != nil {
		log.Warn("failed to read test from cache", "testID", id, "error", err)
	}
	if found {
		return &test, nil
	}

	if err := r.getDB(ctx).First(&test, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("test")
		}
		return nil, log.Err("failed to get test", err, "id", id)
	}

	r.addToCache(ctx, &test)

	return &test, nil
}

func (r *testRepository) Create(ctx context.Context, test *Test) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(test).Error; err != nil {
		return log.Err("failed to create test", err, "test", test)
	}

	r.addToCache(ctx, test)

	return nil
}

func (r *testRepository) Update(ctx context.Context, test *Test) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(test).Error; err != nil {
		return log.Err("failed to update test", err, "test", test)
	}

	r.addToCache(ctx, test)

	return nil
}

func (r *testRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&Test{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete test", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("test")
	}

	if err := database.NewCacheBuilder(r.db.Cache.Test, id).Delete(); err != nil {
		log.Warn("failed to remove test from cache", "testID", id, "error", err)
	}

	return nil
}

func (r *testRepository) addToCache(ctx context.Context, test *Test) {
	if err := database.NewCacheBuilder(r.db.Cache.Test, test.ID).
		WithStruct(test).
		WithTTL(TEST_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		r.log.Function("addToCache").
			Warn("failed to add test to cache", "testID", test.ID, "error", err)
	}
}
