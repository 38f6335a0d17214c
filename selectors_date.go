package browserslist

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/albertocavalcante/go-browserslist/data"
)

const secondsPerYear = 365.25 * 24 * 60 * 60

var errDateOutOfRange = errors.New("date out of range")

var (
	reLastYears = regexp.MustCompile(`(?i)^last\s+(\d*\.?\d+)\s+years?$`)
	reSince     = regexp.MustCompile(`(?i)^since\s+((\d+)(?:-(\d+)(?:-(\d+))?)?)$`)
)

// releasedSince selects every version released at or after the Unix time
// cutoff.
func (r *Resolver) releasedSince(cutoff float64) []Distrib {
	var out []Distrib
	r.eachBrowser(func(name string, stat *data.BrowserStat) {
		for _, v := range stat.Versions {
			if t, ok := stat.ReleaseTime(v); ok && float64(t) >= cutoff {
				out = append(out, NewDistrib(name, v))
			}
		}
	})
	return out
}

// lastYears handles "last N years"; N may be fractional.
type lastYears struct{}

func (lastYears) pattern() *regexp.Regexp { return reLastYears }

func (lastYears) selectMatch(m []string, r *Resolver) ([]Distrib, error) {
	years, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, queryError(ErrParseYearsCount, m[1])
	}
	cutoff := float64(r.opts.now().Unix()) - years*secondsPerYear
	return r.releasedSince(cutoff), nil
}

// since handles "since YYYY", "since YYYY-MM" and "since YYYY-MM-DD".
type since struct{}

func (since) pattern() *regexp.Regexp { return reSince }

func (since) selectMatch(m []string, r *Resolver) ([]Distrib, error) {
	t, err := parseSinceDate(m[2], m[3], m[4])
	if err != nil {
		return nil, queryError(ErrInvalidDate, m[1])
	}
	return r.releasedSince(float64(t.Unix())), nil
}

// parseSinceDate returns UTC midnight of the given date. Month and day
// default to 1. Dates that do not exist on the calendar are rejected.
func parseSinceDate(year, month, day string) (time.Time, error) {
	parts := [3]int{0, 1, 1}
	for i, s := range []string{year, month, day} {
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return time.Time{}, err
		}
		parts[i] = n
	}

	t := time.Date(parts[0], time.Month(parts[1]), parts[2], 0, 0, 0, 0, time.UTC)
	if t.Year() != parts[0] || int(t.Month()) != parts[1] || t.Day() != parts[2] {
		return time.Time{}, errDateOutOfRange
	}
	return t, nil
}
