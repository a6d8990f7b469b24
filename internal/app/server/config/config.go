package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath   = ".env"
	SecretKey = "SecRetKey"
	EnvLocal  = "local"
	EnvDev    = "dev"
	EnvProd   = "prod"

	defaultRunAddress  = ":8080"
	defaultMigrations  = "migrations"
	defaultTokenTTL    = 7 * 24 * time.Hour
	defaultPinHashCost = 10
	defaultShutdownTTL = 10 * time.Second
)

type Config struct {
	Env     string
	DB      DB
	Server  Server
	Logger  Logger
	Auth    Auth
	ShutTTL time.Duration
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type Logger struct {
	// LogLevel переопределяет уровень окружения, пусто - уровень по APP_ENV.
	LogLevel string `env:"LOG_LEVEL"`
}

type Auth struct {
	Secret      string        `env:"SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL"`
	PinHashCost int           `env:"PIN_HASH_COST"`
}

var (
	ErrNoDatabase = errors.New("DATABASE_URI is required")
	ErrNoSecret   = errors.New("SECRET must be set in prod")
)

// MustLoad загружает конфигурацию и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalln(err)
	}
	return cfg
}

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("failed to load %s: %v", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("run_address", defaultRunAddress)
	v.SetDefault("migrations_path", defaultMigrations)
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("token_ttl", defaultTokenTTL)
	v.SetDefault("pin_hash_cost", defaultPinHashCost)
	v.SetDefault("shutdown_timeout", defaultShutdownTTL)

	cfg := &Config{
		Env: v.GetString("app_env"),
		DB: DB{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Server: Server{RunAddress: v.GetString("run_address")},
		Logger: Logger{LogLevel: v.GetString("log_level")},
		Auth: Auth{
			Secret:      v.GetString("secret"),
			TokenTTL:    v.GetDuration("token_ttl"),
			PinHashCost: v.GetInt("pin_hash_cost"),
		},
		ShutTTL: v.GetDuration("shutdown_timeout"),
	}

	if cfg.Auth.Secret == "" {
		if cfg.Env == EnvProd {
			return nil, ErrNoSecret
		}
		cfg.Auth.Secret = SecretKey
	}

	if cfg.DB.DatabaseURI == "" {
		return nil, ErrNoDatabase
	}

	return cfg, nil
}
