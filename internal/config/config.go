package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the process-wide configuration loaded once at startup.
// It is passed by reference into each service at construction.
type Config struct {
	Port          int           `env:"PORT"            envDefault:"5000"`
	MongoURI      string        `env:"MONGO_URI,required,notEmpty"`
	MongoDatabase string        `env:"MONGO_DATABASE"  envDefault:"screenscout"`
	JWTSecret     string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL      time.Duration `env:"TOKEN_TTL"       envDefault:"168h"`

	// GoogleClientID enables the Google sign-in endpoint when set.
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`

	// ConsulAddr enables service registration when set.
	ConsulAddr string `env:"CONSUL_ADDR"`

	// AdvertiseHost is the address Consul health checks reach this instance on.
	AdvertiseHost string `env:"ADVERTISE_HOST" envDefault:"localhost"`
}

// Load parses the configuration from environment variables. Missing required
// variables are reported as an error so the caller can fail the process.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
