package constants

const (
	GetAllChargingStations = `
	SELECT * FROM charging_stations ORDER BY id ASC
	`
)
