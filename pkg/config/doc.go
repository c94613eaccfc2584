// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
// the default .env file is read once, then each config struct is parsed from
// the environment using `env` and `envDefault` tags and cached per type.
//
//	type Config struct {
//		WebhookURL string        `env:"WEBHOOK_URL"`
//		Timeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Structs implementing Validator are checked after parsing; a failing
// Validate is reported as ErrInvalidConfig and nothing is cached.
// ResetCache clears the cache between tests.
package config
