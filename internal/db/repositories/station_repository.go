package repositories

import (
	"context"

	"evlanka/ampere/internal/constants"
	"evlanka/ampere/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type StationRepository struct {
	db *sqlx.DB
}

func NewStationRepository(db *sqlx.DB) *StationRepository {
	return &StationRepository{db}
}

// ListAll returns every charging station row ordered by id ascending.
func (r *StationRepository) ListAll(ctx context.Context) ([]entities.ChargingStation, error) {
	var stations []entities.ChargingStation

	err := r.db.SelectContext(ctx, &stations, constants.GetAllChargingStations)
	if err != nil {
		return nil, err
	}

	return stations, nil
}
