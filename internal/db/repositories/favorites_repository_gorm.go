package repositories

import (
	"context"
	"fmt"

	gormModels "evlanka/ampere/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoritesRepositoryGORM struct {
	db *gorm.DB
}

// NewFavoritesRepositoryGORM creates a new GORM-based favorites repository
func NewFavoritesRepositoryGORM(db *gorm.DB) *FavoritesRepositoryGORM {
	return &FavoritesRepositoryGORM{db: db}
}

// ListByUserEmail retrieves every favorite row belonging to the given user.
func (r *FavoritesRepositoryGORM) ListByUserEmail(ctx context.Context, userEmail string) ([]gormModels.Favorite, error) {
	var favorites []gormModels.Favorite

	err := r.db.WithContext(ctx).
		Where("user_email = ?", userEmail).
		Find(&favorites).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}

	return favorites, nil
}

// Insert stores a new favorite row. Uniqueness of (user_email, station_id) is the
// caller's responsibility; the table carries no constraint for it.
func (r *FavoritesRepositoryGORM) Insert(ctx context.Context, userEmail string, stationID string, stationData string) error {
	favorite := gormModels.Favorite{
		ID:          uuid.New().String(),
		UserEmail:   userEmail,
		StationID:   stationID,
		StationData: stationData,
	}

	if err := r.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}

	return nil
}

// Delete removes all favorite rows matching (user_email, station_id).
func (r *FavoritesRepositoryGORM) Delete(ctx context.Context, userEmail string, stationID string) error {
	err := r.db.WithContext(ctx).
		Where("user_email = ? AND station_id = ?", userEmail, stationID).
		Delete(&gormModels.Favorite{}).Error

	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	return nil
}
