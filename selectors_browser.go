package browserslist

import (
	"regexp"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-browserslist/data"
	"github.com/albertocavalcante/go-browserslist/version"
)

var (
	reLastMajorVersions        = regexp.MustCompile(`(?i)^last\s+(\d+)\s+major\s+versions?$`)
	reLastVersions             = regexp.MustCompile(`(?i)^last\s+(\d+)\s+versions?$`)
	reLastBrowserMajorVersions = regexp.MustCompile(`(?i)^last\s+(\d+)\s+(\w+)\s+major\s+versions?$`)
	reLastBrowserVersions      = regexp.MustCompile(`(?i)^last\s+(\d+)\s+(\w+)\s+versions?$`)
	reUnreleasedVersions       = regexp.MustCompile(`(?i)^unreleased\s+versions$`)
	reUnreleasedBrowser        = regexp.MustCompile(`(?i)^unreleased\s+(\w+)\s+versions?$`)
	reBrowserRange             = regexp.MustCompile(`(?i)^(\w+)\s+([\d.]+)\s*-\s*([\d.]+)$`)
	reBrowserComparison        = regexp.MustCompile(`(?i)^(\w+)\s*(>=?|<=?)\s*([\d.]+)$`)
	reFirefoxESR               = regexp.MustCompile(`(?i)^(?:firefox|ff|fx)\s+esr$`)
	reOperaMiniAll             = regexp.MustCompile(`(?i)^(?:operamini|op_mini)\s+all$`)
	rePhantomJS                = regexp.MustCompile(`(?i)^phantomjs\s+(1\.9|2\.1)$`)
	reBrowserVersion           = regexp.MustCompile(`(?i)^(\w+)\s+(tp|[\d.]+)$`)
)

// lastMajorVersions handles "last N major versions" for every browser.
type lastMajorVersions struct{}

func (lastMajorVersions) pattern() *regexp.Regexp { return reLastMajorVersions }

func (lastMajorVersions) selectMatch(m []string, r *Resolver) ([]Distrib, error) {
	count, err := parseCount(m[1])
	if err != nil {
		return nil, err
	}
	var out []Distrib
	r.eachBrowser(func(name string, stat *data.BrowserStat) {
		n := data.AdjustCount(name, count, r.opts.MobileToDesktop)
		out = append(out, distribsOf(name, lastMajors(stat.Released, n, majorOf))...)
	})
	return out, nil
}

// lastVersions handles "last N versions" for every browser.
type lastVersions struct{}

func (lastVersions) pattern() *regexp.Regexp { return reLastVersions }

func (lastVersions) selectMatch(m []string, r *Resolver) ([]Distrib, error) {
	count, err := parseCount(m[1])
	if err != nil {
		return nil, err
	}
	var out []Distrib
	r.eachBrowser(func(name string, stat *data.BrowserStat) {
		n := data.AdjustCount(name, count, r.opts.MobileToDesktop)
		out = append(out, distribsOf(name, lastN(stat.Released, n))...)
	})
	return out, nil
}

// lastBrowserMajorVersions handles "last N <browser> major versions".
type lastBrowserMajorVersions struct{}

func (lastBrowserMajorVersions) pattern() *regexp.Regexp { return reLastBrowserMajorVersions }

func (lastBrowserMajorVersions) selectMatch(m []string, r *Resolver) ([]Distrib, error) {
	count, err := parseCount(m[1])
	if err != nil {
		return nil, err
	}
	name, stat, err := r.lookup(m[2])
	if err != nil {
		return nil, err
	}
	n := data.AdjustCount(name, count, r.opts.MobileToDesktop)
	return distribsOf(name, lastMajors(stat.Released, n, majorOf)), nil
}

// lastBrowserVersions handles "last N <browser> versions".
type lastBrowserVersions struct{}

func (lastBrowserVersions) pattern() *regexp.Regexp { return reLastBrowserVersions }

func (lastBrowserVersions) selectMatch(m []string, r *Resolver) ([]Distrib, error) {
	count, err := parseCount(m[1])
	if err != nil {
		return nil, err
	}
	name, stat, err := r.lookup(m[2])
	if err != nil {
		return nil, err
	}
	n := data.AdjustCount(name, count, r.opts.MobileToDesktop)
	return distribsOf(name, lastN(stat.Released, n)), nil
}

func unreleased(stat *data.BrowserStat) []string {
	return slices.DeleteFunc(slices.Clone(stat.Versions), func(v string) bool {
		return slices.Contains(stat.Released, v)
	})
}

// unreleasedVersions handles "unreleased versions" for every browser.
type unreleasedVersions struct{}

func (unreleasedVersions) pattern() *regexp.Regexp { return reUnreleasedVersions }

func (unreleasedVersions) selectMatch(_ []string, r *Resolver) ([]Distrib, error) {
	var out []Distrib
	r.eachBrowser(func(name string, stat *data.BrowserStat) {
		out = append(out, distribsOf(name, unreleased(stat))...)
	})
	return out, nil
}

// unreleasedBrowserVersions handles "unreleased <browser> versions".
type unreleasedBrowserVersions struct{}

func (unreleasedBrowserVersions) pattern() *regexp.Regexp { return reUnreleasedBrowser }

func (unreleasedBrowserVersions) selectMatch(m []string, r *Resolver) ([]Distrib, error) {
	name, stat, err := r.lookup(m[1])
	if err != nil {
		return nil, err
	}
	return distribsOf(name, unreleased(stat)), nil
}

// browserRange handles "<browser> A - B", inclusive on both ends.
type browserRange struct{}

func (browserRange) pattern() *regexp.Regexp { return reBrowserRange }

func (browserRange) selectMatch(m []string, r *Resolver) ([]Distrib, error) {
	name, stat, err := r.lookup(m[1])
	if err != nil {
		return nil, err
	}
	for _, bound := range m[2:4] {
		if _, ok := version.ParseFloat(bound); !ok {
			return nil, versionError(ErrUnknownBrowserVersion, m[1], bound)
		}
	}
	from, okFrom := version.ParseFloat(normalizedOrRaw(stat, m[2]))
	to, okTo := version.ParseFloat(normalizedOrRaw(stat, m[3]))
	if !okFrom || !okTo {
		return nil, nil
	}

	var out []Distrib
	for _, v := range stat.Released {
		if f, ok := version.ParseFloat(v); ok && f >= from && f <= to {
			out = append(out, NewDistrib(name, v))
		}
	}
	return out, nil
}

func normalizedOrRaw(stat *data.BrowserStat, v string) string {
	if normalized, ok := stat.NormalizeVersion(v); ok {
		return normalized
	}
	return v
}

// browserComparison handles "<browser> >= V" and the other comparisons.
type browserComparison struct{}

func (browserComparison) pattern() *regexp.Regexp { return reBrowserComparison }

func (browserComparison) selectMatch(m []string, r *Resolver) ([]Distrib, error) {
	name, stat, err := r.lookup(m[1])
	if err != nil {
		return nil, err
	}
	sign, v := m[2], m[3]
	if _, ok := version.ParseFloat(v); !ok {
		return nil, versionError(ErrUnknownBrowserVersion, m[1], v)
	}
	if alias, ok := stat.Alias(v); ok {
		v = alias
	}
	bound, ok := version.ParseFloat(v)
	if !ok {
		return nil, nil
	}

	var out []Distrib
	for _, released := range stat.Released {
		if f, ok := version.ParseFloat(released); ok && compareFloat(sign, f, bound) {
			out = append(out, NewDistrib(name, released))
		}
	}
	return out, nil
}

// firefoxESR handles "firefox esr".
type firefoxESR struct{}

func (firefoxESR) pattern() *regexp.Regexp { return reFirefoxESR }

func (firefoxESR) selectMatch([]string, *Resolver) ([]Distrib, error) {
	return distribsOf("firefox", data.FirefoxESR), nil
}

// operaMiniAll handles "op_mini all".
type operaMiniAll struct{}

func (operaMiniAll) pattern() *regexp.Regexp { return reOperaMiniAll }

func (operaMiniAll) selectMatch([]string, *Resolver) ([]Distrib, error) {
	return []Distrib{NewDistrib("op_mini", "all")}, nil
}

// phantomJS handles "phantomjs 1.9" and "phantomjs 2.1" via their Safari
// engines.
type phantomJS struct{}

func (phantomJS) pattern() *regexp.Regexp { return rePhantomJS }

func (phantomJS) selectMatch(m []string, _ *Resolver) ([]Distrib, error) {
	if m[1] == "1.9" {
		return []Distrib{NewDistrib("safari", "5")}, nil
	}
	return []Distrib{NewDistrib("safari", "6")}, nil
}

// browserVersion handles "<browser> <version>" and "safari tp".
type browserVersion struct{}

func (browserVersion) pattern() *regexp.Regexp { return reBrowserVersion }

func (browserVersion) selectMatch(m []string, r *Resolver) ([]Distrib, error) {
	v := m[2]
	if strings.EqualFold(v, "tp") {
		v = "TP"
	}
	name, stat, err := r.lookup(m[1])
	if err != nil {
		return nil, err
	}

	if normalized, ok := stat.NormalizeVersion(v); ok {
		return []Distrib{NewDistrib(name, normalized)}, nil
	}

	// "10" and "10.0" name the same release.
	retry := v + ".0"
	if strings.Contains(v, ".") {
		retry = strings.TrimSuffix(v, ".0")
	}
	if normalized, ok := stat.NormalizeVersion(retry); ok {
		return []Distrib{NewDistrib(name, normalized)}, nil
	}

	if r.opts.IgnoreUnknownVersions {
		return nil, nil
	}
	return nil, versionError(ErrUnknownBrowserVersion, m[1], v)
}
