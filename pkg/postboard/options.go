package postboard

import (
	"github.com/bft-labs/postboard/pkg/log"
)

// Option configures optional behavior of an App.
type Option func(*options)

type options struct {
	logger       log.Logger
	eventHandler EventHandler
	instanceID   string
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEventHandler sets a handler for lifecycle events.
// Events are delivered synchronously from the goroutine that changed state.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithInstanceID overrides the generated instance id.
func WithInstanceID(id string) Option {
	return func(o *options) {
		o.instanceID = id
	}
}
