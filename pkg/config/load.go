package config

import (
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, optionally seeding it from
// a .env file first. A missing .env file is not an error; containerized
// deployments set real environment variables instead.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	path := ".env"
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		path = envFilePath[0]
	}
	if err := godotenv.Load(path); err != nil {
		logger.Warn("no env file found, relying on process environment", "path", path)
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("app config loaded",
		"env", cfg.Env,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"db", maskValue(cfg.DB.Url),
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"idempotency_window", cfg.Transfer.IdempotencyWindow,
	)
	return &cfg, nil
}

// maskValue hides credentials embedded in connection strings when logging.
func maskValue(v string) string {
	if v == "" {
		return ""
	}
	if at := strings.LastIndex(v, "@"); at > 0 {
		if scheme := strings.Index(v, "://"); scheme > 0 {
			return v[:scheme+3] + "****" + v[at:]
		}
	}
	if len(v) <= 6 {
		return "****"
	}
	return v[:2] + "****" + v[len(v)-4:]
}
