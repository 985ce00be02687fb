package gorm

import "time"

// Favorite is one (user, station) marking. The full enriched station snapshot is
// denormalized into station_data so the list renders offline without a join back
// to charging_stations.
type Favorite struct {
	ID          string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	UserEmail   string    `gorm:"column:user_email;type:varchar(255);not null;index"`
	StationID   string    `gorm:"column:station_id;type:varchar(50);not null;index"`
	StationData string    `gorm:"column:station_data;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Favorite) TableName() string {
	return "favorites"
}
