package repositories

import (
	"context"

	"gorm.io/gorm"

	"versusfut/models"
)

type AttendanceRepository interface {
	Create(ctx context.Context, e *models.AttendanceEntry) error
	// CreateBatch inserts all entries in a single statement
	CreateBatch(ctx context.Context, entries []models.AttendanceEntry) error
	Get(ctx context.Context, id string) (*models.AttendanceEntry, error)
	FindByPlayer(ctx context.Context, matchID, playerID string) (*models.AttendanceEntry, error)
	ListByMatch(ctx context.Context, matchID string) ([]models.AttendanceEntry, error)
	Delete(ctx context.Context, id string) error
}

type gormAttendanceRepository struct {
	db *gorm.DB
}

func (r *gormAttendanceRepository) Create(ctx context.Context, e *models.AttendanceEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *gormAttendanceRepository) CreateBatch(ctx context.Context, entries []models.AttendanceEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *gormAttendanceRepository) Get(ctx context.Context, id string) (*models.AttendanceEntry, error) {
	var e models.AttendanceEntry
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (r *gormAttendanceRepository) FindByPlayer(ctx context.Context, matchID, playerID string) (*models.AttendanceEntry, error) {
	var e models.AttendanceEntry
	err := r.db.WithContext(ctx).
		Where("internal_match_id = ? AND player_id = ?", matchID, playerID).
		First(&e).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (r *gormAttendanceRepository) ListByMatch(ctx context.Context, matchID string) ([]models.AttendanceEntry, error) {
	var out []models.AttendanceEntry
	err := r.db.WithContext(ctx).
		Where("internal_match_id = ?", matchID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *gormAttendanceRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AttendanceEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
