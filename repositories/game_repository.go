package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"versusfut/models"
)

type GameRepository interface {
	Create(ctx context.Context, g *models.Game) error
	Get(ctx context.Context, id string) (*models.Game, error)
	ListByMatch(ctx context.Context, matchID string) ([]models.Game, error)
	// NextOrder returns max(game_order)+1 for the match, 1 when it has no games
	NextOrder(ctx context.Context, matchID string) (int, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	// UpdateIfStatus applies updates only while the game is still in status from.
	// It reports false when no row matched.
	UpdateIfStatus(ctx context.Context, id, from string, updates map[string]interface{}) (bool, error)
	CountByMatch(ctx context.Context, matchID string) (int64, error)
	// CompleteOpen marks every non-completed game of the match as completed without touching scores
	CompleteOpen(ctx context.Context, matchID string, at time.Time) (int64, error)
}

type gormGameRepository struct {
	db *gorm.DB
}

func (r *gormGameRepository) Create(ctx context.Context, g *models.Game) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gormGameRepository) Get(ctx context.Context, id string) (*models.Game, error) {
	var g models.Game
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *gormGameRepository) ListByMatch(ctx context.Context, matchID string) ([]models.Game, error) {
	var out []models.Game
	err := r.db.WithContext(ctx).
		Where("internal_match_id = ?", matchID).
		Order("game_order ASC").
		Find(&out).Error
	return out, err
}

func (r *gormGameRepository) NextOrder(ctx context.Context, matchID string) (int, error) {
	var maxOrder int
	err := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Select("COALESCE(MAX(game_order), 0)").
		Where("internal_match_id = ?", matchID).
		Row().
		Scan(&maxOrder)
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

func (r *gormGameRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Game{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormGameRepository) UpdateIfStatus(ctx context.Context, id, from string, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormGameRepository) CountByMatch(ctx context.Context, matchID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Game{}).Where("internal_match_id = ?", matchID).Count(&n).Error
	return n, err
}

func (r *gormGameRepository) CompleteOpen(ctx context.Context, matchID string, at time.Time) (int64, error) {
	db := r.db.WithContext(ctx)
	// Stamp end time only where none was recorded
	if err := db.Model(&models.Game{}).
		Where("internal_match_id = ? AND status <> ? AND ended_at IS NULL", matchID, models.GameStatusCompleted).
		Update("ended_at", at).Error; err != nil {
		return 0, err
	}
	res := db.Model(&models.Game{}).
		Where("internal_match_id = ? AND status <> ?", matchID, models.GameStatusCompleted).
		Update("status", models.GameStatusCompleted)
	return res.RowsAffected, res.Error
}
