package browserslist

import (
	"regexp"
	"strconv"

	"github.com/albertocavalcante/go-browserslist/data"
)

var (
	reUsagePercentage = regexp.MustCompile(`(?i)^(>=?|<=?)\s*(\d*\.?\d+)%$`)
	reCover           = regexp.MustCompile(`(?i)^cover\s+(\d*\.?\d+)%$`)
)

func parsePercentage(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, queryError(ErrParsePercentage, s)
	}
	return float32(f), nil
}

// usagePercentage handles "> X%" and the other usage comparisons.
type usagePercentage struct{}

func (usagePercentage) pattern() *regexp.Regexp { return reUsagePercentage }

func (usagePercentage) selectMatch(m []string, _ *Resolver) ([]Distrib, error) {
	threshold, err := parsePercentage(m[2])
	if err != nil {
		return nil, err
	}
	var out []Distrib
	for _, e := range data.Usage() {
		if compareFloat(m[1], float64(e.Usage), float64(threshold)) {
			out = append(out, NewDistrib(e.Name, e.Version))
		}
	}
	return out, nil
}

// cover handles "cover X%".
type cover struct{}

func (cover) pattern() *regexp.Regexp { return reCover }

func (cover) selectMatch(m []string, _ *Resolver) ([]Distrib, error) {
	coverage, err := parsePercentage(m[1])
	if err != nil {
		return nil, err
	}
	return coverUsage(data.Usage(), coverage), nil
}

// coverUsage takes entries from the top of a usage table sorted by share
// until their total reaches coverage. The entry that crosses the threshold is
// included. Walking stops early at the first entry with no usage.
func coverUsage(entries []data.UsageEntry, coverage float32) []Distrib {
	var (
		out   []Distrib
		total float32
	)
	for _, e := range entries {
		if total >= coverage || e.Usage == 0 {
			break
		}
		out = append(out, NewDistrib(e.Name, e.Version))
		total += e.Usage
	}
	return out
}
