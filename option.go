package goscip

import "github.com/rs/zerolog"

type Option func(*Model) error

// WithLogger routes the solver's log output to the given logger: normal and
// dialog messages at debug level, warnings at warn level. The default is a
// no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Model) error {
		m.log = logger

		return nil
	}
}

// WithParam sets a solver parameter during model construction.
func WithParam(name string, value interface{}) Option {
	return func(m *Model) error {
		return m.SetParam(name, value)
	}
}
