package repositories

import (
	"context"

	"gorm.io/gorm"

	"versusfut/models"
)

type StatRepository interface {
	CreateBatch(ctx context.Context, lines []models.StatLine) error
	ListByMatch(ctx context.Context, matchID string) ([]models.StatLine, error)
	ListByMatches(ctx context.Context, matchIDs []string) ([]models.StatLine, error)
}

type gormStatRepository struct {
	db *gorm.DB
}

func (r *gormStatRepository) CreateBatch(ctx context.Context, lines []models.StatLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *gormStatRepository) ListByMatch(ctx context.Context, matchID string) ([]models.StatLine, error) {
	var out []models.StatLine
	err := r.db.WithContext(ctx).
		Where("internal_match_id = ?", matchID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *gormStatRepository) ListByMatches(ctx context.Context, matchIDs []string) ([]models.StatLine, error) {
	if len(matchIDs) == 0 {
		return nil, nil
	}
	var out []models.StatLine
	err := r.db.WithContext(ctx).
		Where("internal_match_id IN ?", matchIDs).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
