package config

const (
	// DefaultDatabasePath is the default path for the library database.
	DefaultDatabasePath = "./songvault.db"

	// DefaultTagTypeColor is the color seeded as a new user's default tag
	// type when none is configured (0xFFFFFF, white).
	DefaultTagTypeColor = 0xFFFFFF
)
