package repositories

import (
	"context"
	"errors"

	"speedballhub/internal/database"
	"speedballhub/internal/logger"
	. "speedballhub/internal/models"
	"speedballhub/internal/services"

	"gorm.io/gorm"
)

type ResultRepository interface {
	GetAll(ctx context.Context, filter ResultListFilter) ([]TestResult, error)
	GetByID(ctx context.Context, id string) (*TestResult, error)
	GetByPlayer(ctx context.Context, playerID string) ([]TestResult, error)
	GetByPlayerWithTests(ctx context.Context, playerID string) ([]TestResult, error)
	GetByTestWithPlayers(ctx context.Context, testID string) ([]TestResult, error)
	Create(ctx context.Context, result *TestResult) error
	Update(ctx context.Context, result *TestResult) error
	Delete(ctx context.Context, id string) error
}

type resultRepository struct {
	db  database.DB
	log logger.Logger
}

func NewResult(db database.DB) ResultRepository {
	return &resultRepository{
		db:  db,
		log: logger.New("resultRepository"),
	}
}

func (r *resultRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *resultRepository) GetAll(ctx context.Context, filter ResultListFilter) ([]TestResult, error) {
	log := r.log.Function("GetAll")

	var results []TestResult
	if err := r.getDB(ctx).
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&results).Error; err != nil {
		return nil, log.Err("failed to get results", err, "filter", filter)
	}

	return results, nil
}

func (r *resultRepository) GetByID(ctx context.Context, id string) (*TestResult, error) {
	log := r.log.Function("GetByID")

	var result TestResult
	if err := r.getDB(ctx).First(&result, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("test result")
		}
		return nil, log.Err("failed to get result", err, "id", id)
	}

	return &result, nil
}

func (r *resultRepository) GetByPlayer(ctx context.Context, playerID string) ([]TestResult, error) {
	log := r.log.Function("GetByPlayer")

	var results []TestResult
	if err := r.getDB(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, log.Err("failed to get results by player", err, "playerID", playerID)
	}

	return results, nil
}

func (r *resultRepository) GetByPlayerWithTests(ctx context.Context, playerID string) ([]TestResult, error) {
	log := r.log.Function("GetByPlayerWithTests")

	var results []TestResult
	if err := r.getDB(ctx).
		Preload("Test").
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, log.Err("failed to get results with tests", err, "playerID", playerID)
	}

	return results, nil
}

func (r *resultRepository) GetByTestWithPlayers(ctx context.Context, testID string) ([]TestResult, error) {
	log := r.log.Function("GetByTestWithPlayers")

	var results []TestResult
	if err := r.getDB(ctx).
		Preload("Player").
		Where("test_id = ?", testID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, log.Err("failed to get results with players", err, "testID", testID)
	}

	return results, nil
}

func (r *resultRepository) Create(ctx context.Context, result *TestResult) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(result).Error; err != nil {
		return log.Err("failed to create result", err, "result", result)
	}

	return nil
}

func (r *resultRepository) Update(ctx context.Context, result *TestResult) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(result).Error; err != nil {
		return log.Err("failed to update result", err, "result", result)
	}

	return nil
}

func (r *resultRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&TestResult{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete result", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("test result")
	}

	return nil
}
