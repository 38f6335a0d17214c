package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bazelbuild/buildtools/build"

	"github.com/albertocavalcante/go-browserslist/internal/buildutil"
)

// ruleName is the Starlark function that declares queries in BUILD files.
const ruleName = "browserslist"

// buildFiles are the BUILD file names searched for a browserslist rule, in
// order of preference.
var buildFiles = []string{"BUILD.bazel", "BUILD"}

func isStarlark(base string) bool {
	return base == "BUILD" || base == "BUILD.bazel" || strings.HasSuffix(base, ".bzl")
}

// ParseStarlark reads a browserslist rule from a BUILD or .bzl file:
//
//	browserslist(
//	    name = "browsers",
//	    queries = ["defaults", "not op_mini all"],
//	    env = {
//	        "development": ["last 1 chrome version"],
//	    },
//	)
//
// queries and each env value may be a single string or a list of strings.
// ParseStarlark returns a nil Config when the file has no browserslist rule,
// and ErrDuplicatedConfig when it has more than one.
func ParseStarlark(filename string, content []byte) (*Config, error) {
	parse := build.ParseBuild
	if strings.HasSuffix(filename, ".bzl") {
		parse = build.ParseBzl
	}
	f, err := parse(filename, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(filename), err)
	}

	var (
		cfg  *Config
		rule string
	)
	for _, stmt := range f.Stmt {
		call, ok := stmt.(*build.CallExpr)
		if !ok || !buildutil.IsFuncCall(call, ruleName) {
			continue
		}
		if cfg != nil {
			return nil, fmt.Errorf("%w: %s rules %q and %q", ErrDuplicatedConfig, ruleName, rule, buildutil.String(call, "name"))
		}
		rule = buildutil.String(call, "name")
		cfg = &Config{
			Defaults: buildutil.StringOrList(call, "queries"),
			Sections: buildutil.StringListDict(call, "env"),
		}
		if cfg.Sections == nil {
			cfg.Sections = map[string][]string{}
		}
	}
	return cfg, nil
}
