// Package browserslist resolves browser queries such as "> 0.5%, last 2
// versions, not dead" into the concrete browser and runtime releases they
// select.
//
// # Overview
//
// A query is made of clauses joined by "or" (or a comma) and "and". Each
// clause is matched against a fixed, ordered set of forms: usage shares
// ("> 1%", "cover 99.5%"), release counts ("last 2 versions",
// "last 1 chrome major version"), version comparisons ("safari >= 15",
// "ios 15.2 - 16"), dates ("since 2020", "last 2 years"), Electron and
// Node.js releases ("electron >= 25", "maintained node versions") and
// composites ("defaults", "dead"). A clause prefixed with "not" removes what
// it selects.
//
// Browser data, usage shares and the Electron and Node.js release tables are
// embedded snapshots; resolution does no I/O.
//
// # Quick Start
//
//	distribs, err := browserslist.Resolve([]string{"> 1%, not dead"}, browserslist.Opts{})
//	for _, d := range distribs {
//	    fmt.Println(d) // "chrome 119", ...
//	}
//
//	// Read queries from .browserslistrc, package.json or BUILD files.
//	distribs, err := browserslist.Execute(browserslist.Opts{Path: "web/app"})
//
// # Errors
//
// Failures are returned as *QueryError values wrapping a sentinel:
//
//	_, err := browserslist.Resolve([]string{"yuru 1.0"}, browserslist.Opts{})
//	errors.Is(err, browserslist.ErrBrowserNotFound) // true
//
// # Thread Safety
//
// All public types in this package are safe for concurrent use.
package browserslist

import (
	"fmt"

	"github.com/albertocavalcante/go-browserslist/config"
)

// Resolve evaluates queries with opts. See Resolver.Resolve.
func Resolve(queries []string, opts Opts) ([]Distrib, error) {
	r := &Resolver{opts: opts}
	return r.Resolve(queries)
}

// ResolveStrings is Resolve with every distrib rendered as "<name> <version>".
func ResolveStrings(queries []string, opts Opts) ([]string, error) {
	distribs, err := Resolve(queries, opts)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(distribs))
	for i, d := range distribs {
		out[i] = d.String()
	}
	return out, nil
}

// Execute resolves the queries configured for opts.Path. See
// Resolver.Execute.
func Execute(opts Opts) ([]Distrib, error) {
	r := &Resolver{opts: opts}
	return r.Execute()
}

// Execute loads queries from the environment or configuration files and
// resolves them. The default queries are used when no configuration exists.
func (r *Resolver) Execute() ([]Distrib, error) {
	queries, err := config.Load(config.Options{
		Path:           r.opts.Path,
		ConfigPath:     r.opts.ConfigPath,
		Env:            r.opts.Env,
		ThrowOnMissing: r.opts.ThrowOnMissing,
		Logger:         r.opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if queries == nil {
		r.opts.log().Debug("no config found, using defaults")
		queries = defaultQueries
	}
	return r.Resolve(queries)
}
