package browserslist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Option configures a Resolver.
type Option func(*resolverConfig) error

// resolverConfig holds all resolution configuration.
type resolverConfig struct {
	mobileToDesktop       bool
	ignoreUnknownVersions bool
	nodeVersion           string
	now                   func() time.Time
	path                  string
	configPath            string
	env                   string
	throwOnMissing        bool

	// logger is the structured logger for debug output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithMobileToDesktop resolves mobile browsers against their desktop
// counterpart's release history.
func WithMobileToDesktop(enabled bool) Option {
	return func(c *resolverConfig) error {
		c.mobileToDesktop = enabled
		return nil
	}
}

// WithIgnoreUnknownVersions makes queries for unknown versions resolve to
// nothing instead of failing.
func WithIgnoreUnknownVersions(ignore bool) Option {
	return func(c *resolverConfig) error {
		c.ignoreUnknownVersions = ignore
		return nil
	}
}

// WithNodeVersion sets the Node.js version reported by "current node".
func WithNodeVersion(version string) Option {
	return func(c *resolverConfig) error {
		c.nodeVersion = version
		return nil
	}
}

// WithClock sets the clock used by date-relative queries.
func WithClock(now func() time.Time) Option {
	return func(c *resolverConfig) error {
		if now == nil {
			return errors.New("clock must not be nil")
		}
		c.now = now
		return nil
	}
}

// WithPath sets the directory Execute searches for configuration from.
func WithPath(dir string) Option {
	return func(c *resolverConfig) error {
		c.path = dir
		return nil
	}
}

// WithConfigPath sets an explicit configuration file for Execute.
func WithConfigPath(path string) Option {
	return func(c *resolverConfig) error {
		c.configPath = path
		return nil
	}
}

// WithEnv selects the configuration section used by Execute.
func WithEnv(env string) Option {
	return func(c *resolverConfig) error {
		c.env = env
		return nil
	}
}

// WithThrowOnMissing makes Execute fail when the selected section is missing.
func WithThrowOnMissing(throw bool) Option {
	return func(c *resolverConfig) error {
		c.throwOnMissing = throw
		return nil
	}
}

// WithLogger sets a structured logger for resolution diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	r, err := browserslist.NewResolver(browserslist.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *resolverConfig) error {
		c.logger = l
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *resolverConfig) validate() error {
	if c.nodeVersion != "" {
		if _, err := semver.NewVersion(strings.TrimPrefix(c.nodeVersion, "v")); err != nil {
			return fmt.Errorf("node version %q: %w", c.nodeVersion, err)
		}
	}

	return nil
}

// discardHandler is a slog.Handler that discards all log records.
// This is used when no logger is configured to avoid nil checks throughout the code.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newResolverConfig creates a new resolver configuration by applying
// the given options and validating the result.
func newResolverConfig(opts ...Option) (*resolverConfig, error) {
	c := &resolverConfig{}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// toOpts converts the resolver config to the Opts struct.
func (c *resolverConfig) toOpts() Opts {
	return Opts{
		MobileToDesktop:       c.mobileToDesktop,
		IgnoreUnknownVersions: c.ignoreUnknownVersions,
		NodeVersion:           c.nodeVersion,
		Now:                   c.now,
		Logger:                c.logger,
		Path:                  c.path,
		ConfigPath:            c.configPath,
		Env:                   c.env,
		ThrowOnMissing:        c.throwOnMissing,
	}
}
