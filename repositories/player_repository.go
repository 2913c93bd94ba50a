package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"versusfut/models"
)

type PlayerRepository interface {
	// Upsert inserts the player or refreshes every mirrored column on id conflict
	Upsert(ctx context.Context, p *models.Player) error
	ListByTeam(ctx context.Context, teamID string) ([]models.Player, error)
	GetMany(ctx context.Context, ids []string) ([]models.Player, error)
	LatestUpdate(ctx context.Context) (*models.Player, error)
}

type gormPlayerRepository struct {
	db *gorm.DB
}

func (r *gormPlayerRepository) Upsert(ctx context.Context, p *models.Player) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"team_id", "name", "nickname", "position", "shirt_number", "active", "updated_at",
		}),
	}).Create(p).Error
}

func (r *gormPlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	var out []models.Player
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

func (r *gormPlayerRepository) GetMany(ctx context.Context, ids []string) ([]models.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Player
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *gormPlayerRepository) LatestUpdate(ctx context.Context) (*models.Player, error) {
	var p models.Player
	if err := r.db.WithContext(ctx).Order("updated_at DESC").First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}
