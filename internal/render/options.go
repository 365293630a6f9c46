package render

import "github.com/GregMSThompson/dashboard-builder/internal/models"

// Option configures Render.
type Option func(*config)

type config struct {
	known map[string]bool
}

// WithCatalog restricts resolution to paths present in fields. A widget bound
// to any other path renders as no data, even if the record happens to hold a
// value there.
func WithCatalog(fields []models.FieldDescriptor) Option {
	return func(c *config) {
		c.known = make(map[string]bool, len(fields))
		for _, f := range fields {
			c.known[f.Path] = true
		}
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) allowed(path string) bool {
	if c.known == nil {
		return true
	}
	return c.known[path]
}
