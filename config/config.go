package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Game     GameConfig
	Jobs     JobsConfig
}

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	Env          string        `env:"APP_ENV" envDefault:"development"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
}

type DatabaseConfig struct {
	DSN             string        `env:"DB_DSN" envDefault:"sprout:sprout@tcp(localhost:3306)/sprout?charset=utf8mb4&parseTime=True&loc=Local"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
}

type GameConfig struct {
	// CoinRateCents is the fixed exchange rate for coin conversions,
	// in cents per coin. Decimal string so fractional rates work.
	CoinRateCents string `env:"COIN_RATE_CENTS" envDefault:"5"`
	DailyXPCap    int64  `env:"DAILY_XP_CAP" envDefault:"500"`
}

type JobsConfig struct {
	AxionNightlyCron string `env:"AXION_NIGHTLY_CRON" envDefault:"0 3 * * *"`
	AllowanceCron    string `env:"ALLOWANCE_CRON" envDefault:"0 8 * * 1"`
	BatchSize        int    `env:"JOB_BATCH_SIZE" envDefault:"200"`
}

// Load reads .env (if present) then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
