package config

// Default paths
const (
	// DefaultDatabasePath matches the file name the desk has always used,
	// so an existing database is picked up without configuration.
	DefaultDatabasePath = "./car_rental.db"

	// DefaultExportDir is where listing exports are written
	DefaultExportDir = "./exports"
)
