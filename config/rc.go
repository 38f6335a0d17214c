package config

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	rcComment = regexp.MustCompile(`#[^\n]*`)
	rcSplit   = regexp.MustCompile(`\n|,`)
	rcSection = regexp.MustCompile(`^\s*\[(.+)]\s*$`)
)

// ParseRC parses the contents of a browserslist or .browserslistrc file.
//
// Queries are separated by newlines or commas, and '#' starts a comment.
// A "[name]" line starts a section; "[production staging]" starts a section
// shared by both names. Queries before the first section header are the
// defaults.
func ParseRC(content []byte) (*Config, error) {
	cfg := &Config{Sections: make(map[string][]string)}
	seen := map[string]bool{defaultsSection: true}
	current := []string{defaultsSection}

	text := rcComment.ReplaceAllString(string(content), "")
	for _, line := range rcSplit.Split(text, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := rcSection.FindStringSubmatch(line); m != nil {
			current = strings.Fields(m[1])
			for _, name := range current {
				if seen[name] {
					return nil, fmt.Errorf("%w `%s`", ErrDuplicatedSection, name)
				}
				seen[name] = true
				cfg.Sections[name] = []string{}
			}
			continue
		}

		for _, name := range current {
			if name == defaultsSection {
				cfg.Defaults = append(cfg.Defaults, line)
				continue
			}
			cfg.Sections[name] = append(cfg.Sections[name], line)
		}
	}
	return cfg, nil
}
