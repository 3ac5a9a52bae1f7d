package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort           string        `env:"HTTP_PORT" envDefault:"8080"`
	AssistantBaseURL   string        `env:"ASSISTANT_BASE_URL" envDefault:"http://localhost:8000"`
	AssistantTimeout   time.Duration `env:"ASSISTANT_TIMEOUT" envDefault:"60s"`
	SavedVenuesBaseURL string        `env:"SAVED_VENUES_BASE_URL"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	RedisAddr          string        `env:"REDIS_ADDR"`
	RedisPassword      string        `env:"REDIS_PASSWORD"`
	RedisDB            int           `env:"REDIS_DB" envDefault:"0"`
	ResultTTL          time.Duration `env:"RESULT_TTL" envDefault:"30m"`
	JWTSecret          string        `env:"JWT_SECRET"`
	JWTIssuer          string        `env:"JWT_ISSUER"`
	CORSOrigins        []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	SynthDeterministic bool          `env:"SYNTH_DETERMINISTIC" envDefault:"false"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if cfg.SavedVenuesBaseURL == "" {
		cfg.SavedVenuesBaseURL = cfg.AssistantBaseURL
	}
	return &cfg, nil
}
