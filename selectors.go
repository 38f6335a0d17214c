package browserslist

import (
	"regexp"
	"slices"
	"strconv"

	"github.com/albertocavalcante/go-browserslist/data"
	"github.com/albertocavalcante/go-browserslist/version"
)

// selector resolves one form of query clause.
type selector interface {
	// pattern matches the clause forms the selector handles. All patterns
	// are anchored and case-insensitive.
	pattern() *regexp.Regexp
	// selectMatch resolves a clause from the submatches of pattern.
	selectMatch(m []string, r *Resolver) ([]Distrib, error)
}

// selectors is tried in order and the first matching pattern wins, so more
// specific forms come before the general forms they overlap with.
var selectors = []selector{
	lastMajorVersions{},
	lastVersions{},
	lastElectronMajorVersions{},
	lastNodeMajorVersions{},
	lastBrowserMajorVersions{},
	lastElectronVersions{},
	lastNodeVersions{},
	lastBrowserVersions{},
	unreleasedVersions{},
	unreleasedElectronVersions{},
	unreleasedBrowserVersions{},
	lastYears{},
	since{},
	usagePercentage{},
	cover{},
	electronRange{},
	nodeRange{},
	browserRange{},
	electronComparison{},
	nodeComparison{},
	browserComparison{},
	firefoxESR{},
	operaMiniAll{},
	electronVersion{},
	nodeVersion{},
	currentNode{},
	maintainedNode{},
	phantomJS{},
	browserVersion{},
	defaults{},
	dead{},
}

// defaultQueries is the query list used when no configuration is found.
var defaultQueries = []string{"> 0.5%", "last 2 versions", "Firefox ESR", "not dead"}

// deadQueries selects browsers without official support or updates for
// 24 months.
var deadQueries = []string{"Baidu >= 0", "ie <= 11", "ie_mob <= 11", "bb <= 10", "op_mob <= 12.1", "samsung 4"}

// Defaults returns the queries used when no configuration is found.
func Defaults() []string {
	return slices.Clone(defaultQueries)
}

// lookup finds a browser by name, honoring MobileToDesktop.
func (r *Resolver) lookup(name string) (string, *data.BrowserStat, error) {
	canonical, stat, ok := data.Lookup(name, r.opts.MobileToDesktop)
	if !ok {
		return "", nil, queryError(ErrBrowserNotFound, name)
	}
	return canonical, stat, nil
}

// eachBrowser calls fn for every known browser in name order.
func (r *Resolver) eachBrowser(fn func(name string, stat *data.BrowserStat)) {
	for _, name := range data.BrowserNames() {
		canonical, stat, ok := data.Lookup(name, r.opts.MobileToDesktop)
		if !ok {
			continue
		}
		fn(canonical, stat)
	}
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, queryError(ErrParseVersionsCount, s)
	}
	return n, nil
}

func distribsOf(name string, versions []string) []Distrib {
	out := make([]Distrib, len(versions))
	for i, v := range versions {
		out[i] = NewDistrib(name, v)
	}
	return out
}

// lastN returns the last n entries of list, newest first.
func lastN[T any](list []T, n int) []T {
	if n <= 0 {
		return nil
	}
	out := slices.Clone(list[max(0, len(list)-n):])
	slices.Reverse(out)
	return out
}

// majorOf returns the numeric major segment of v.
func majorOf(v string) (int, bool) {
	n, err := strconv.Atoi(version.Major(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// lastMajors returns the entries of list whose major is at least the n-th
// distinct major from the end, newest first. Every entry is returned when
// list has fewer than n distinct majors.
func lastMajors[T any](list []T, n int, major func(T) (int, bool)) []T {
	if n <= 0 {
		return nil
	}
	var majors []int
	for _, v := range list {
		if m, ok := major(v); ok && !slices.Contains(majors, m) {
			majors = append(majors, m)
		}
	}
	if n > len(majors) {
		return lastN(list, len(list))
	}
	minimum := majors[len(majors)-n]

	var out []T
	for i := len(list) - 1; i >= 0; i-- {
		if m, ok := major(list[i]); ok && m >= minimum {
			out = append(out, list[i])
		}
	}
	return out
}

// compareFloat applies a comparison operator captured from a query.
func compareFloat(sign string, a, b float64) bool {
	switch sign {
	case ">":
		return a > b
	case "<":
		return a < b
	case "<=":
		return a <= b
	default:
		return a >= b
	}
}
