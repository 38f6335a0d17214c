package config

import (
	"cmp"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Environment holds the environment variables that affect configuration.
type Environment struct {
	// Queries replaces every configuration file when set.
	Queries string `env:"BROWSERSLIST"`
	// ConfigPath names the configuration file to read.
	ConfigPath string `env:"BROWSERSLIST_CONFIG"`
	// Env selects the configuration section.
	Env string `env:"BROWSERSLIST_ENV"`
	// NodeEnv selects the configuration section when Env is empty.
	NodeEnv string `env:"NODE_ENV"`
}

// LoadEnvironment reads Environment from the process environment.
func LoadEnvironment() (Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return Environment{}, fmt.Errorf("parse environment: %w", err)
	}
	return e, nil
}

// EnvironmentFrom reads Environment from a fixed set of variables instead of
// the process environment. A nil map is treated as empty.
func EnvironmentFrom(vars map[string]string) (Environment, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	var e Environment
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Environment{}, fmt.Errorf("parse environment: %w", err)
	}
	return e, nil
}

// SectionName picks the configuration section: explicit, then
// BROWSERSLIST_ENV, then NODE_ENV, then DefaultEnv.
func (e Environment) SectionName(explicit string) string {
	return cmp.Or(explicit, e.Env, e.NodeEnv, DefaultEnv)
}
