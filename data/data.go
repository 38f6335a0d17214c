// Package data provides the embedded browser, usage, Electron and Node.js
// datasets that queries are evaluated against.
//
// The datasets are decoded on first use and shared for the life of the
// process. Slices, maps and *BrowserStat values returned by this package are
// read-only; callers that need to modify them must copy first.
package data

import (
	"cmp"
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

//go:embed json/*.json
var files embed.FS

// BrowserStat is the release history of a single browser.
type BrowserStat struct {
	// Name is the canonical caniuse identifier, e.g. "chrome" or "ios_saf".
	Name string `json:"name"`
	// Versions lists every known version in chronological order, including
	// unreleased ones.
	Versions []string `json:"versions"`
	// Released is the subset of Versions that has shipped, oldest first.
	Released []string `json:"released"`
	// ReleaseDate maps a version to its release time in Unix seconds. Versions
	// without a known date map to nil.
	ReleaseDate map[string]*int64 `json:"releaseDate"`

	aliases map[string]string
}

// ReleaseTime returns the release time of v in Unix seconds.
func (s *BrowserStat) ReleaseTime(v string) (int64, bool) {
	t := s.ReleaseDate[v]
	if t == nil {
		return 0, false
	}
	return *t, true
}

// HasVersion reports whether v is one of the browser's known versions.
func (s *BrowserStat) HasVersion(v string) bool {
	return slices.Contains(s.Versions, v)
}

// Alias returns the full range version that v is an endpoint of. For Safari
// on iOS, Alias("15.2") returns "15.2-15.3".
func (s *BrowserStat) Alias(v string) (string, bool) {
	full, ok := s.aliases[v]
	return full, ok
}

// NormalizeVersion maps v onto one of the browser's own version strings.
//
// An exact match is returned as is. Otherwise a range endpoint resolves to
// its range, and a browser with a single version resolves every input to that
// version.
func (s *BrowserStat) NormalizeVersion(v string) (string, bool) {
	if s.HasVersion(v) {
		return v, true
	}
	if full, ok := s.Alias(v); ok {
		return full, true
	}
	if len(s.Versions) == 1 {
		return s.Versions[0], true
	}
	return "", false
}

func (s *BrowserStat) indexAliases() {
	s.aliases = make(map[string]string)
	for _, full := range s.Versions {
		if !strings.Contains(full, "-") {
			continue
		}
		for _, endpoint := range strings.Split(full, "-") {
			s.aliases[endpoint] = full
		}
	}
}

// UsageEntry is the global usage share of one browser version, in percent.
type UsageEntry struct {
	Name    string
	Version string
	Usage   float32
}

// UnmarshalJSON decodes a usage row of the form [name, version, usage].
func (u *UsageEntry) UnmarshalJSON(b []byte) error {
	var row []json.RawMessage
	if err := json.Unmarshal(b, &row); err != nil {
		return err
	}
	if len(row) != 3 {
		return fmt.Errorf("usage row has %d fields, want 3", len(row))
	}
	if err := json.Unmarshal(row[0], &u.Name); err != nil {
		return fmt.Errorf("usage row name: %w", err)
	}
	if err := json.Unmarshal(row[1], &u.Version); err != nil {
		return fmt.Errorf("usage row version: %w", err)
	}
	if err := json.Unmarshal(row[2], &u.Usage); err != nil {
		return fmt.Errorf("usage row share: %w", err)
	}
	return nil
}

// ElectronRelease pairs an Electron version with the Chromium version it
// ships.
type ElectronRelease struct {
	Electron string
	Chromium string
}

// UnmarshalJSON decodes a release row of the form [electron, chromium].
func (r *ElectronRelease) UnmarshalJSON(b []byte) error {
	var row []string
	if err := json.Unmarshal(b, &row); err != nil {
		return err
	}
	if len(row) != 2 {
		return fmt.Errorf("electron row has %d fields, want 2", len(row))
	}
	r.Electron, r.Chromium = row[0], row[1]
	return nil
}

// decode reads an embedded dataset. The datasets are compiled into the
// binary and checked by Validate, so a decoding failure is a build defect.
func decode[T any](name string) T {
	var v T
	b, err := files.ReadFile("json/" + name)
	if err != nil {
		panic(fmt.Sprintf("data: reading %s: %v", name, err))
	}
	if err := json.Unmarshal(b, &v); err != nil {
		panic(fmt.Sprintf("data: decoding %s: %v", name, err))
	}
	return v
}

var (
	browsers = sync.OnceValue(func() map[string]*BrowserStat {
		m := decode[map[string]*BrowserStat]("browsers.json")
		for _, stat := range m {
			stat.indexAliases()
		}
		return m
	})

	browserNames = sync.OnceValue(func() []string {
		return slices.Sorted(maps.Keys(browsers()))
	})

	usage = sync.OnceValue(func() []UsageEntry {
		entries := decode[[]UsageEntry]("usage.json")
		slices.SortStableFunc(entries, func(a, b UsageEntry) int {
			return cmp.Compare(b.Usage, a.Usage)
		})
		return entries
	})

	electron = sync.OnceValue(func() []ElectronRelease {
		return decode[[]ElectronRelease]("electron.json")
	})
)

// BrowserNames returns the canonical names of all known browsers, sorted.
func BrowserNames() []string {
	return browserNames()
}

// Usage returns the global usage table sorted by share, highest first.
func Usage() []UsageEntry {
	return usage()
}

// Electron returns the Electron to Chromium mapping, oldest release first.
func Electron() []ElectronRelease {
	return electron()
}

// ElectronChromium returns the Chromium version shipped by the given
// Electron major.minor version.
func ElectronChromium(v string) (string, bool) {
	for _, r := range electron() {
		if r.Electron == v {
			return r.Chromium, true
		}
	}
	return "", false
}
