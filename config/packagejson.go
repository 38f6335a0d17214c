package config

import (
	"encoding/json"
	"errors"
	"fmt"
)

const packageJSON = "package.json"

type packageManifest struct {
	Browserslist json.RawMessage `json:"browserslist"`
	Misspelled   json.RawMessage `json:"browserlist"`
}

// ParsePackageJSON reads the "browserslist" field of a package.json file.
//
// The field may be a query string, a list of queries, or an object mapping
// section names to either. A "defaults" key in the object provides the
// fallback queries. ParsePackageJSON returns a nil Config when the field is
// absent.
func ParsePackageJSON(content []byte) (*Config, error) {
	var manifest packageManifest
	if err := json.Unmarshal(content, &manifest); err != nil {
		return nil, fmt.Errorf("parse %s: %w", packageJSON, err)
	}
	if isAbsent(manifest.Browserslist) {
		if !isAbsent(manifest.Misspelled) {
			return nil, errors.New("`browserlist` key instead of `browserslist`")
		}
		return nil, nil
	}

	if queries, ok := decodeQueries(manifest.Browserslist); ok {
		return &Config{Defaults: queries, Sections: map[string][]string{}}, nil
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(manifest.Browserslist, &sections); err != nil {
		return nil, fmt.Errorf(`"browserslist" field must be a string, a list or an object: %w`, err)
	}
	cfg := &Config{Sections: make(map[string][]string, len(sections))}
	for name, raw := range sections {
		queries, ok := decodeQueries(raw)
		if !ok {
			return nil, fmt.Errorf(`"browserslist" section %q must be a string or a list of strings`, name)
		}
		if name == defaultsSection {
			cfg.Defaults = queries
			continue
		}
		cfg.Sections[name] = queries
	}
	return cfg, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// decodeQueries accepts a query string or a list of query strings.
func decodeQueries(raw json.RawMessage) ([]string, bool) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}, true
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, true
	}
	return nil, false
}
