package repositories

import (
	"context"

	"gorm.io/gorm"

	"versusfut/models"
)

type SquadRepository interface {
	// ListByMatch returns the squads in sort order with their members preloaded
	ListByMatch(ctx context.Context, matchID string) ([]models.MatchTeam, error)
	// Replace drops every squad of the match and inserts the given ones
	Replace(ctx context.Context, matchID string, teams []models.MatchTeam) error
}

type gormSquadRepository struct {
	db *gorm.DB
}

func (r *gormSquadRepository) ListByMatch(ctx context.Context, matchID string) ([]models.MatchTeam, error) {
	var out []models.MatchTeam
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("internal_match_id = ?", matchID).
		Order("sort_order ASC").
		Find(&out).Error
	return out, err
}

func (r *gormSquadRepository) Replace(ctx context.Context, matchID string, teams []models.MatchTeam) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteSquads(tx, matchID); err != nil {
			return err
		}
		for i := range teams {
			teams[i].InternalMatchID = matchID
			// Members are saved through the association
			if err := tx.Create(&teams[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func deleteSquads(tx *gorm.DB, matchID string) error {
	teamIDs := tx.Model(&models.MatchTeam{}).Select("id").Where("internal_match_id = ?", matchID)
	if err := tx.Where("internal_match_team_id IN (?)", teamIDs).Delete(&models.MatchTeamMember{}).Error; err != nil {
		return err
	}
	return tx.Where("internal_match_id = ?", matchID).Delete(&models.MatchTeam{}).Error
}
