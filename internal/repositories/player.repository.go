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

const PLAYER_CACHE_EXPIRY = 1 * time.Hour

type PlayerRepository interface {
	GetAll(ctx context.Context, filter PlayerListFilter) ([]Player, error)
	GetByID(ctx context.Context, id string) (*Player, error)
	Create(ctx context.Context, player *Player) error
	Update(ctx context.Context, player *Player) error
	Delete(ctx context.Context, id string) error
}

type playerRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPlayer(db database.DB) PlayerRepository {
	return &playerRepository{
		db:  db,
		log: logger.New("playerRepository"),
	}
}

func (r *playerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// GetAll applies search, gender, ordering, and pagination in SQL. The age
// group filter is derived and applied by the controller after this returns.
func (r *playerRepository) GetAll(ctx context.Context, filter PlayerListFilter) ([]Player, error) {
	log := r.log.Function("GetAll")

	query := r.getDB(ctx).Model(&Player{})

	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}

	var players []Player
	if err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&players).Error; err != nil {
		return nil, log.Err("failed to get players", err, "filter", filter)
	}

	return players, nil
}

func (r *playerRepository) GetByID(ctx context.Context, id string) (*Player, error) {
	log := r.log.Function("GetByID")

	var player Player
	found, err := database.NewCacheBuilder(r.db.Cache.Player, id).WithContext(ctx).Get(&player)
	if err != nil {
		log.Warn("failed to read player from cache", "playerID", id, "error", err)
	}
	if found {
		return &player, nil
	}

	if err := r.getDB(ctx).First(&player, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("player")
		}
		return nil, log.Err("failed to get player", err, "id", id)
	}

	r.addToCache(ctx, &player)

	return &player, nil
}

func (r *playerRepository) Create(ctx context.Context, player *Player) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(player).Error; err != nil {
		return log.Err("failed to create player", err, "player", player)
	}

	r.addToCache(ctx, player)

	return nil
}

func (r *playerRepository) Update(ctx context.Context, player *Player) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(player).Error; err != nil {
		return log.Err("failed to update player", err, "player", player)
	}

	r.addToCache(ctx, player)

	return nil
}

func (r *playerRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&Player{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete player", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("player")
	}

	if err := database.NewCacheBuilder(r.db.Cache.Player, id).Delete(); err != nil {
		log.Warn("failed to remove player from cache", "playerID", id, "error", err)
	}

	return nil
}

func (r *playerRepository) addToCache(ctx context.Context, player *Player) {
	// Only the canonical row is cached; age and age group are derived on
	// every read so they can never go stale across a day boundary.
	if err := database.NewCacheBuilder(r.db.Cache.Player, player.ID).
		WithStruct(player).
		WithTTL(PLAYER_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		r.log.Function("addToCache").
			Warn("failed to add player to cache", "playerID", player.ID, "error", err)
	}
}
