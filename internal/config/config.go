package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Store    StoreConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Worker   WorkerConfig
	Booking  BookingConfig
	Log      LogConfig
}
type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}
type DatabaseConfig struct {
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	Name            string        `env:"DB_NAME" envDefault:"slot_ledger"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"false"`
	MigrationsDir   string        `env:"DB_MIGRATIONS_DIR" envDefault:"migrations"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"5m"`
}

// StoreConfig selects the repository implementation: "postgres" or "memory".
type StoreConfig struct {
	Driver string `env:"STORE_DRIVER" envDefault:"postgres"`
}

// RedisConfig enables the tournament list cache when URL is set.
type RedisConfig struct {
	URL string        `env:"REDIS_URL"`
	TTL time.Duration `env:"REDIS_CACHE_TTL" envDefault:"30s"`
}

// NATSConfig enables booking events when URL is set.
type NATSConfig struct {
	URL           string `env:"NATS_URL"`
	Token         string `env:"NATS_TOKEN"`
	SubjectPrefix string `env:"NATS_SUBJECT_PREFIX" envDefault:"slotledger"`
}
type WorkerConfig struct {
	ReaperInterval time.Duration `env:"WORKER_REAPER_INTERVAL" envDefault:"1m"`
}
type BookingConfig struct {
	IntentStaleAfter time.Duration `env:"BOOKING_INTENT_STALE_AFTER" envDefault:"5m"`
	LockTimeout      time.Duration `env:"BOOKING_LOCK_TIMEOUT" envDefault:"3s"`
	// highest slot number of a tournament without a player cap
	UncappedSlots int `env:"BOOKING_UNCAPPED_SLOTS" envDefault:"100"`
}
type LogConfig struct {
	Pretty bool   `env:"LOG_PRETTY" envDefault:"true"`
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.Store.Driver {
	case "postgres", "memory":
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	if cfg.Worker.ReaperInterval <= 0 {
		return nil, fmt.Errorf("WORKER_REAPER_INTERVAL must be positive")
	}
	return cfg, nil
}
