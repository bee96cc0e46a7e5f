package config

import "time"

type DB struct {
	Url string `envconfig:"URL"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Transfer holds knobs for the transfer coordinator.
type Transfer struct {
	// IdempotencyWindow is how long a client idempotency key stays
	// reserved; a duplicate inside the window is rejected.
	IdempotencyWindow time.Duration `envconfig:"IDEMPOTENCY_WINDOW" default:"24h"`
}

// App is the root application configuration, loaded from the environment.
type App struct {
	Env       string    `envconfig:"APP_ENV" default:"development"`
	Server    Server    `envconfig:"APP"`
	DB        DB        `envconfig:"DATABASE"`
	RateLimit RateLimit `envconfig:"RATE_LIMIT"`
	Transfer  Transfer  `envconfig:"TRANSFER"`
}
