package data

import (
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/albertocavalcante/go-browserslist/version"
)

const (
	// AndroidEvergreenFirst is the first Android WebView release that tracks
	// Chrome version numbers.
	AndroidEvergreenFirst = 37

	// OperaMobileRange is the Opera desktop version that Opera Mobile
	// reports as plain "10".
	OperaMobileRange = "10.0-10.1"
)

// FirefoxESR lists the Firefox Extended Support Release versions.
var FirefoxESR = []string{"115"}

// nameAliases maps alternative browser spellings to caniuse names.
var nameAliases = map[string]string{
	"fx":             "firefox",
	"ff":             "firefox",
	"ios":            "ios_saf",
	"explorer":       "ie",
	"blackberry":     "bb",
	"explorermobile": "ie_mob",
	"operamini":      "op_mini",
	"operamobile":    "op_mob",
	"chromeandroid":  "and_chr",
	"firefoxandroid": "and_ff",
	"ucandroid":      "and_uc",
	"qqandroid":      "and_qq",
}

// desktopNames maps mobile browsers to the desktop browser whose releases
// they follow.
var desktopNames = map[string]string{
	"and_chr": "chrome",
	"and_ff":  "firefox",
	"ie_mob":  "ie",
	"op_mob":  "opera",
	"android": "chrome",
}

// nonDesktopAndroid matches the Android releases that predate Chrome-based
// WebView.
var nonDesktopAndroid = regexp.MustCompile(`^(?:[2-4]\.|[34]$)`)

// NormalizeName lowercases name and resolves alternative spellings.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	if alias, ok := nameAliases[name]; ok {
		return alias
	}
	return name
}

// DesktopName returns the desktop browser a mobile browser follows.
func DesktopName(name string) (string, bool) {
	desktop, ok := desktopNames[NormalizeName(name)]
	return desktop, ok
}

// Lookup finds the release history for a browser name.
//
// The returned name is the canonical form of name. With mobileToDesktop set,
// mobile browsers that follow a desktop browser report the desktop release
// history under their own name; Android additionally keeps its pre-Chromium
// releases.
func Lookup(name string, mobileToDesktop bool) (string, *BrowserStat, bool) {
	name = NormalizeName(name)
	if mobileToDesktop {
		if desktop, ok := desktopNames[name]; ok {
			switch name {
			case "android":
				return name, androidDesktop(), true
			case "op_mob":
				return name, operaMobileDesktop(), true
			default:
				stat, ok := browsers()[desktop]
				return name, stat, ok
			}
		}
	}
	stat, ok := browsers()[name]
	if !ok {
		return "", nil, false
	}
	return name, stat, true
}

var androidDesktop = sync.OnceValue(func() *BrowserStat {
	android := browsers()["android"]
	chrome := browsers()["chrome"]

	stat := &BrowserStat{
		Name:        android.Name,
		Versions:    withChromeTail(android.Versions, chrome.Versions),
		Released:    withChromeTail(android.Released, chrome.Released),
		ReleaseDate: maps.Clone(android.ReleaseDate),
	}
	for _, v := range stat.Versions {
		if _, ok := stat.ReleaseDate[v]; !ok {
			stat.ReleaseDate[v] = chrome.ReleaseDate[v]
		}
	}
	stat.indexAliases()
	return stat
})

// withChromeTail keeps the pre-Chromium Android versions and appends every
// Chrome version from AndroidEvergreenFirst on.
func withChromeTail(android, chrome []string) []string {
	out := slices.DeleteFunc(slices.Clone(android), func(v string) bool {
		return !nonDesktopAndroid.MatchString(v)
	})
	last, ok := version.ParseFloat(chrome[len(chrome)-1])
	if !ok {
		return out
	}
	// Chrome numbers its releases consecutively, so the tail length follows
	// from the last version.
	n := int(last) - AndroidEvergreenFirst + 1
	n = max(0, min(n, len(chrome)))
	return append(out, chrome[len(chrome)-n:]...)
}

var operaMobileDesktop = sync.OnceValue(func() *BrowserStat {
	opera := browsers()["opera"]
	rename := func(v string) string {
		if v == OperaMobileRange {
			return "10"
		}
		return v
	}

	stat := &BrowserStat{
		Name:        "op_mob",
		Versions:    mapVersions(opera.Versions, rename),
		Released:    mapVersions(opera.Released, rename),
		ReleaseDate: make(map[string]*int64, len(opera.ReleaseDate)),
	}
	for v, t := range opera.ReleaseDate {
		stat.ReleaseDate[rename(v)] = t
	}
	stat.indexAliases()
	return stat
})

func mapVersions(versions []string, f func(string) string) []string {
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = f(v)
	}
	return out
}

// AdjustCount converts a "last N versions" count for Android into the
// number of Android entries to take.
//
// Without desktop data Android only lists its newest Chromium-based release,
// so a count that reaches back past AndroidEvergreenFirst is reduced to the
// legacy releases it would cover. Other browsers, and Android with
// mobileToDesktop, keep count unchanged, as does a count of zero.
func AdjustCount(name string, count int, mobileToDesktop bool) int {
	if count <= 0 || mobileToDesktop || NormalizeName(name) != "android" {
		return count
	}
	released := browsers()["android"].Released
	last, ok := version.ParseFloat(released[len(released)-1])
	if !ok {
		return count
	}
	diff := int(last) - AndroidEvergreenFirst - count
	if diff > 0 {
		return 1
	}
	return 1 - diff
}
