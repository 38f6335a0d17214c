// Package version implements the dotted version ordering used for browser,
// Electron and Node.js releases.
//
// Versions are compared segment by segment on their dot-separated numeric
// components. Anything after the first '-' is dropped before comparison, so a
// caniuse range such as "15.2-15.3" orders as its lower bound "15.2".
// Segments that are not plain integers ("all", "TP") count as zero.
//
// The ordering is newest first: Compare("10", "9") is negative, so sorting a
// slice with Compare puts the most recent release at index 0.
package version

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// looseSegments is the number of leading segments inspected by CompareLoose.
const looseSegments = 2

// Compare orders two version strings newest first.
//
// Segments are paired positionally and only up to the shorter of the two
// versions, so "10" and "10.1" compare equal.
func Compare(a, b string) int {
	return compareSegments(StripPrerelease(a), StripPrerelease(b), -1)
}

// CompareLoose is Compare restricted to the major and minor segments.
func CompareLoose(a, b string) int {
	return compareSegments(StripPrerelease(a), StripPrerelease(b), looseSegments)
}

// Sort sorts versions newest first. Equal versions keep their relative order.
func Sort(versions []string) {
	slices.SortStableFunc(versions, Compare)
}

// StripPrerelease returns v without the first '-' and everything after it.
func StripPrerelease(v string) string {
	if i := strings.IndexByte(v, '-'); i >= 0 {
		return v[:i]
	}
	return v
}

// Major returns the first dot-separated segment of v.
func Major(v string) string {
	if i := strings.IndexByte(v, '.'); i >= 0 {
		return v[:i]
	}
	return v
}

func compareSegments(a, b string, limit int) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := min(len(as), len(bs))
	if limit > 0 {
		n = min(n, limit)
	}
	for i := range n {
		if c := cmp.Compare(segment(bs[i]), segment(as[i])); c != 0 {
			return c
		}
	}
	return 0
}

func segment(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ParseFloat reads the longest leading decimal number of s, the way
// browser version ranges are compared: "4.4.3-4.4.4" reads as 4.4 and
// "15.2-15.3" as 15.2. It reports false when s has no numeric prefix.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end, dot, digits := 0, false, false
scan:
	for ; end < len(s); end++ {
		switch c := s[end]; {
		case c >= '0' && c <= '9':
			digits = true
		case c == '.' && !dot:
			dot = true
		default:
			break scan
		}
	}
	if !digits {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
