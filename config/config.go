// Package config locates and reads query configuration.
//
// Queries can come from, in order of precedence:
//
//   - the BROWSERSLIST environment variable
//   - an explicit file, from Options.ConfigPath or BROWSERSLIST_CONFIG
//   - the nearest directory, searching upward from Options.Path, that holds
//     a browserslist or .browserslistrc file, a package.json with a
//     "browserslist" field, or a BUILD.bazel/BUILD file with a browserslist
//     rule
//
// A configuration may be split into named sections, one per environment.
// The section is picked by Options.Env, then BROWSERSLIST_ENV, then NODE_ENV,
// and finally "production"; queries outside any section are the fallback.
package config

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultEnv is the section used when no environment is configured.
const DefaultEnv = "production"

// defaultsSection holds queries listed outside any section.
const defaultsSection = "defaults"

var (
	// ErrDuplicatedSection indicates a section name declared twice in one file.
	ErrDuplicatedSection = errors.New("duplicated section")

	// ErrDuplicatedConfig indicates a directory with more than one
	// configuration source.
	ErrDuplicatedConfig = errors.New("duplicated config")

	// ErrMissingEnv indicates that ThrowOnMissing is set and the selected
	// section does not exist.
	ErrMissingEnv = errors.New("missing config for environment")

	// ErrMissingBrowserslistField indicates an explicit package.json without a
	// "browserslist" field.
	ErrMissingBrowserslistField = errors.New(`missing "browserslist" field`)

	// ErrMissingBrowserslistRule indicates an explicit BUILD or .bzl file
	// without a browserslist rule.
	ErrMissingBrowserslistRule = errors.New("missing browserslist rule")
)

// Config is a parsed configuration source.
type Config struct {
	// Defaults holds the queries listed outside any section.
	Defaults []string
	// Sections maps an environment name to its queries.
	Sections map[string][]string
}

// Queries returns the queries for env, falling back to Defaults when the
// section is missing. With throwOnMissing, a missing section other than
// "defaults" is an error instead.
//
// The result is never nil, so an empty configuration selects nothing rather
// than the default queries.
func (c *Config) Queries(env string, throwOnMissing bool) ([]string, error) {
	if queries, ok := c.Sections[env]; ok {
		return nonNil(queries), nil
	}
	if throwOnMissing && env != defaultsSection {
		return nil, fmt.Errorf("%w `%s`", ErrMissingEnv, env)
	}
	return nonNil(c.Defaults), nil
}

func nonNil(queries []string) []string {
	if queries == nil {
		return []string{}
	}
	return queries
}

// Options control how Load finds configuration.
type Options struct {
	// Path is the directory the upward search starts from.
	// If empty, the working directory is used.
	Path string

	// ConfigPath names a configuration file, bypassing the search.
	ConfigPath string

	// Env selects the configuration section.
	Env string

	// ThrowOnMissing makes a missing section an error.
	ThrowOnMissing bool

	// Environment overrides the process environment. If nil, it is read
	// with LoadEnvironment.
	Environment *Environment

	// Logger receives debug output about the source that was used.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

func (o *Options) log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Load returns the configured queries. It returns nil queries and a nil
// error when no configuration exists.
func Load(opts Options) ([]string, error) {
	logger := opts.log()

	environ := opts.Environment
	if environ == nil {
		e, err := LoadEnvironment()
		if err != nil {
			return nil, err
		}
		environ = &e
	}

	if environ.Queries != "" {
		logger.Debug("using queries from environment", "variable", "BROWSERSLIST")
		return []string{environ.Queries}, nil
	}

	env := environ.SectionName(opts.Env)

	if path := cmp.Or(opts.ConfigPath, environ.ConfigPath); path != "" {
		cfg, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("using config file", "path", path, "env", env)
		return cfg.Queries(env, opts.ThrowOnMissing)
	}

	dir := opts.Path
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	cfg, path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		logger.Debug("no config found", "dir", dir)
		return nil, nil
	}
	logger.Debug("using config file", "path", path, "env", env)
	return cfg.Queries(env, opts.ThrowOnMissing)
}

// ReadFile parses a configuration file. The format follows the file name:
// package.json, BUILD, BUILD.bazel and *.bzl files have their own parsers,
// anything else is read as a .browserslistrc file.
func ReadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch base := filepath.Base(path); {
	case base == packageJSON:
		cfg, err := ParsePackageJSON(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if cfg == nil {
			return nil, fmt.Errorf("%s: %w", path, ErrMissingBrowserslistField)
		}
		return cfg, nil
	case isStarlark(base):
		cfg, err := ParseStarlark(path, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if cfg == nil {
			return nil, fmt.Errorf("%s: %w", path, ErrMissingBrowserslistRule)
		}
		return cfg, nil
	default:
		cfg, err := ParseRC(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, nil
	}
}
