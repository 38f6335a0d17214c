package browserslist

import (
	"log/slog"
	"time"
)

// Distrib is a single browser or runtime release selected by a query.
type Distrib struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// NewDistrib returns the distrib for name at version.
func NewDistrib(name, version string) Distrib {
	return Distrib{Name: name, Version: version}
}

// String renders the distrib as "<name> <version>", e.g. "chrome 119".
func (d Distrib) String() string {
	return d.Name + " " + d.Version
}

// Opts configures query resolution.
//
// The zero value is ready to use: mobile browsers keep their own release
// history, unknown versions are errors, and the clock is time.Now.
type Opts struct {
	// MobileToDesktop resolves mobile browsers (and_chr, and_ff, ie_mob,
	// op_mob, android) against the release history of their desktop
	// counterpart.
	MobileToDesktop bool

	// IgnoreUnknownVersions makes single-version queries for versions that
	// do not exist resolve to nothing instead of failing.
	IgnoreUnknownVersions bool

	// NodeVersion is the running Node.js version reported by "current node",
	// with or without a leading "v".
	NodeVersion string

	// Now is the clock used by "last N years" and "maintained node versions".
	// If nil, time.Now is used.
	Now func() time.Time

	// Logger receives debug output for every resolved clause.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// Path is the directory Execute starts searching for configuration in.
	// If empty, the working directory is used.
	Path string

	// ConfigPath names a configuration file for Execute, bypassing the search.
	ConfigPath string

	// Env selects the configuration section used by Execute.
	Env string

	// ThrowOnMissing makes Execute fail when Env names a section that the
	// configuration does not define.
	ThrowOnMissing bool
}

func (o *Opts) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Opts) log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(discardHandler{})
}
