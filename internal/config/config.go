package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
// PASSWORD is the shared secret checked both by /start and by the HTTP API.
type Config struct {
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`
	Password string `envconfig:"PASSWORD" required:"true"`
	DBPath   string `envconfig:"DB_PATH" default:"./data/larry.db"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
