package repositories

import (
	"context"

	"gorm.io/gorm"

	"versusfut/models"
)

type MatchRepository interface {
	Create(ctx context.Context, m *models.InternalMatch) error
	Get(ctx context.Context, id string) (*models.InternalMatch, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.InternalMatch, error)
	// ListCompletedByTeam filters by match_date when from/to are non-empty (inclusive, YYYY-MM-DD)
	ListCompletedByTeam(ctx context.Context, teamID, from, to string) ([]models.InternalMatch, error)
	// ListUnarchived returns completed matches without a report, never-attempted
	// ones first, then the least recently attempted.
	ListUnarchived(ctx context.Context, limit int) ([]models.InternalMatch, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	// Delete removes the match and every row it owns
	Delete(ctx context.Context, id string) error
}

type gormMatchRepository struct {
	db *gorm.DB
}

func (r *gormMatchRepository) Create(ctx context.Context, m *models.InternalMatch) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormMatchRepository) Get(ctx context.Context, id string) (*models.InternalMatch, error) {
	var m models.InternalMatch
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *gormMatchRepository) ListByTeam(ctx context.Context, teamID string) ([]models.InternalMatch, error) {
	var out []models.InternalMatch
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("match_date DESC, match_time DESC, created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *gormMatchRepository) ListCompletedByTeam(ctx context.Context, teamID, from, to string) ([]models.InternalMatch, error) {
	q := r.db.WithContext(ctx).
		Where("team_id = ? AND status = ?", teamID, models.MatchStatusCompleted)
	if from != "" {
		q = q.Where("match_date >= ?", from)
	}
	if to != "" {
		q = q.Where("match_date <= ?", to)
	}
	var out []models.InternalMatch
	err := q.Order("match_date ASC, created_at ASC").Find(&out).Error
	return out, err
}

func (r *gormMatchRepository) ListUnarchived(ctx context.Context, limit int) ([]models.InternalMatch, error) {
	var out []models.InternalMatch
	err := r.db.WithContext(ctx).
		Where("status = ? AND report_archived_at IS NULL", models.MatchStatusCompleted).
		Order("report_attempted_at IS NOT NULL, report_attempted_at ASC, ended_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *gormMatchRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.InternalMatch{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormMatchRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("internal_match_id = ?", id).Delete(&models.StatLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("internal_match_id = ?", id).Delete(&models.Game{}).Error; err != nil {
			return err
		}
		if err := deleteSquads(tx, id); err != nil {
			return err
		}
		if err := tx.Where("internal_match_id = ?", id).Delete(&models.AttendanceEntry{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.InternalMatch{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
