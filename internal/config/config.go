package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultEstadoBaseURL is the hardcoded fallback for the state/ranking
// endpoints when ESTADO_BASE_URL is unset.
const DefaultEstadoBaseURL = "https://despensa-estado.fly.dev"

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// State endpoint (remote document store + ranking)
	EstadoBaseURL string `mapstructure:"ESTADO_BASE_URL"`

	// Redis — worker queue and ranking cache
	RedisURL string `mapstructure:"REDIS_URL"`

	// Local backup mirror (sqlite)
	RespaldoDBPath string `mapstructure:"RESPALDO_DB_PATH"`

	// Debounce window for whole-document saves, in milliseconds
	GuardadoRetardoMS int `mapstructure:"GUARDADO_RETARDO_MS"`

	// Credit-ledger capability secrets (plain or bcrypt-hashed)
	SecretoFiados         string `mapstructure:"SECRETO_FIADOS"`
	SecretoEliminarFiador string `mapstructure:"SECRETO_ELIMINAR_FIADOR"`

	// Report branding defaults (overridable per-user in Configuracion)
	NombreComercio string `mapstructure:"NOMBRE_COMERCIO"`
	LogoURL        string `mapstructure:"LOGO_URL"`
}

// GuardadoRetardo returns the debounce window as a duration.
func (c *Config) GuardadoRetardo() time.Duration {
	return time.Duration(c.GuardadoRetardoMS) * time.Millisecond
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 3)
	viper.SetDefault("ESTADO_BASE_URL", DefaultEstadoBaseURL)
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("RESPALDO_DB_PATH", "/tmp/despensaapp/respaldo.db")
	viper.SetDefault("GUARDADO_RETARDO_MS", 750)
	viper.SetDefault("SECRETO_FIADOS", "1234")
	viper.SetDefault("SECRETO_ELIMINAR_FIADOR", "9999")
	viper.SetDefault("NOMBRE_COMERCIO", "Despensa")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
