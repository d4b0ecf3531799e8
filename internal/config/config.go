package config

import (
	"time"

	"github.com/spf13/viper"
)

// Backend selects which library store implementation a process uses.
// Backends are chosen once at start and never mixed at runtime.
type Backend string

const (
	BackendMemory Backend = "memory" // ephemeral, development only
	BackendSQLite Backend = "sqlite" // persistent (default)
)

type (
	Config struct {
		Store
		Auth
		Library
	}

	Store struct {
		Backend   Backend
		Path      string        // SQLite database file
		OpTimeout time.Duration // per-operation deadline for I/O backends
	}
	Auth struct {
		BcryptCost int
	}
	Library struct {
		DefaultTagTypeColor int // color seeded as a new user's default tag type
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("store_backend", string(BackendSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("db_op_timeout", "5s")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("default_tag_type_color", DefaultTagTypeColor)

	return &Config{
		Store: Store{
			Backend:   Backend(v.GetString("STORE_BACKEND")),
			Path:      v.GetString("DATABASE_PATH"),
			OpTimeout: v.GetDuration("DB_OP_TIMEOUT"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		Library: Library{
			DefaultTagTypeColor: v.GetInt("DEFAULT_TAG_TYPE_COLOR"),
		},
	}
}
