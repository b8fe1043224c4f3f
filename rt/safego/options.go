package safego

import "github.com/go-logr/logr"

type config struct {
	name string
	tags []Tag

	onPanic PanicHandler
	logger  logr.Logger
}

// Option configures a single Run call.
type Option func(*config)

func defaultConfig() config {
	return config{
		logger: DefaultLogger().WithName("safego"),
	}
}

// WithName sets a human-friendly name for the function being run.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithTag appends a single tag (key/value) to reports.
func WithTag(key, value string) Option {
	return func(c *config) {
		c.tags = append(c.tags, Tag{Key: key, Value: value})
	}
}

// WithTags appends tags to reports (preserving order).
func WithTags(tags ...Tag) Option {
	return func(c *config) {
		if len(tags) == 0 {
			return
		}
		c.tags = append(c.tags, tags...)
	}
}

// WithPanicHandler sets the panic handler. If not set, panics are logged.
//
// Panics in the handler are contained: they are recovered and logged.
func WithPanicHandler(h PanicHandler) Option {
	return func(c *config) { c.onPanic = h }
}

// WithLogger sets the logger used when no panic handler is configured.
func WithLogger(l logr.Logger) Option {
	return func(c *config) { c.logger = l }
}
