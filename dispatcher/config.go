package dispatcher

import "github.com/rs/zerolog"

// config holds SimDispatcher construction parameters, mirroring the
// manager package's config-plus-functional-options split.
type config struct {
	Logger zerolog.Logger
}

func defaultConfig() config {
	return config{Logger: zerolog.Nop()}
}

// Option configures a SimDispatcher.
type Option func(*config)

// WithLogger sets the structured logger used for component-panic
// diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.Logger = l }
}
