package entities

// ChargingStation is a raw row from the charging_stations table.
type ChargingStation struct {
	ID          int     `db:"id"`
	Name        string  `db:"name"`
	Address     string  `db:"address"`
	Operator    string  `db:"operator"`
	ChargerType string  `db:"charger_type"`
	Latitude    float64 `db:"latitude"`
	Longitude   float64 `db:"longitude"`
	Status      string  `db:"status"`
}
