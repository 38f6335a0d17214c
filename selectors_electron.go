package browserslist

import (
	"regexp"
	"strings"

	"github.com/albertocavalcante/go-browserslist/data"
	"github.com/albertocavalcante/go-browserslist/version"
)

var (
	reLastElectronMajorVersions = regexp.MustCompile(`(?i)^last\s+(\d+)\s+electron\s+major\s+versions?$`)
	reLastElectronVersions      = regexp.MustCompile(`(?i)^last\s+(\d+)\s+electron\s+versions?$`)
	reUnreleasedElectron        = regexp.MustCompile(`(?i)^unreleased\s+electron\s+versions?$`)
	reElectronRange             = regexp.MustCompile(`(?i)^electron\s+([\d.]+)\s*-\s*([\d.]+)$`)
	reElectronComparison        = regexp.MustCompile(`(?i)^electron\s*(>=?|<=?)\s*([\d.]+)$`)
	reElectronVersion           = regexp.MustCompile(`(?i)^electron\s+([\d.]+)$`)
)

// normalizeElectron drops the patch segment of a full Electron version, so
// "1.4.0" becomes "1.4".
func normalizeElectron(v string) string {
	if parts := strings.Split(v, "."); len(parts) == 3 {
		return parts[0] + "." + parts[1]
	}
	return v
}

func chromiumOf(releases []data.ElectronRelease) []Distrib {
	out := make([]Distrib, len(releases))
	for i, r := range releases {
		out[i] = NewDistrib("chrome", r.Chromium)
	}
	return out
}

func electronMajor(r data.ElectronRelease) (int, bool) {
	return majorOf(r.Electron)
}

// lastElectronMajorVersions handles "last N electron major versions".
type lastElectronMajorVersions struct{}

func (lastElectronMajorVersions) pattern() *regexp.Regexp { return reLastElectronMajorVersions }

func (lastElectronMajorVersions) selectMatch(m []string, _ *Resolver) ([]Distrib, error) {
	count, err := parseCount(m[1])
	if err != nil {
		return nil, err
	}
	return chromiumOf(lastMajors(data.Electron(), count, electronMajor)), nil
}

// lastElectronVersions handles "last N electron versions".
type lastElectronVersions struct{}

func (lastElectronVersions) pattern() *regexp.Regexp { return reLastElectronVersions }

func (lastElectronVersions) selectMatch(m []string, _ *Resolver) ([]Distrib, error) {
	count, err := parseCount(m[1])
	if err != nil {
		return nil, err
	}
	return chromiumOf(lastN(data.Electron(), count)), nil
}

// unreleasedElectronVersions handles "unreleased electron versions". Every
// Electron release in the table has shipped, so it selects nothing.
type unreleasedElectronVersions struct{}

func (unreleasedElectronVersions) pattern() *regexp.Regexp { return reUnreleasedElectron }

func (unreleasedElectronVersions) selectMatch([]string, *Resolver) ([]Distrib, error) {
	return nil, nil
}

// electronRange handles "electron A - B", inclusive on both ends.
type electronRange struct{}

func (electronRange) pattern() *regexp.Regexp { return reElectronRange }

func (electronRange) selectMatch(m []string, _ *Resolver) ([]Distrib, error) {
	from, to := normalizeElectron(m[1]), normalizeElectron(m[2])
	for _, v := range []string{from, to} {
		if _, ok := data.ElectronChromium(v); !ok {
			return nil, versionError(ErrUnknownElectronVersion, "electron", v)
		}
	}
	low, _ := version.ParseFloat(from)
	high, _ := version.ParseFloat(to)

	var out []Distrib
	for _, r := range data.Electron() {
		if f, ok := version.ParseFloat(r.Electron); ok && f >= low && f <= high {
			out = append(out, NewDistrib("chrome", r.Chromium))
		}
	}
	return out, nil
}

// electronComparison handles "electron >= V" and the other comparisons.
type electronComparison struct{}

func (electronComparison) pattern() *regexp.Regexp { return reElectronComparison }

func (electronComparison) selectMatch(m []string, _ *Resolver) ([]Distrib, error) {
	bound, ok := version.ParseFloat(normalizeElectron(m[2]))
	if !ok {
		return nil, versionError(ErrUnknownElectronVersion, "electron", m[2])
	}
	var out []Distrib
	for _, r := range data.Electron() {
		if f, ok := version.ParseFloat(r.Electron); ok && compareFloat(m[1], f, bound) {
			out = append(out, NewDistrib("chrome", r.Chromium))
		}
	}
	return out, nil
}

// electronVersion handles "electron V".
type electronVersion struct{}

func (electronVersion) pattern() *regexp.Regexp { return reElectronVersion }

func (electronVersion) selectMatch(m []string, r *Resolver) ([]Distrib, error) {
	v := normalizeElectron(m[1])
	chromium, ok := data.ElectronChromium(v)
	if !ok {
		if r.opts.IgnoreUnknownVersions {
			return nil, nil
		}
		return nil, versionError(ErrUnknownElectronVersion, "electron", m[1])
	}
	return []Distrib{NewDistrib("chrome", chromium)}, nil
}
