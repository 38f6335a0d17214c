package browserslist

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/albertocavalcante/go-browserslist/data"
)

var (
	reLastNodeMajorVersions = regexp.MustCompile(`(?i)^last\s+(\d+)\s+node\s+major\s+versions?$`)
	reLastNodeVersions      = regexp.MustCompile(`(?i)^last\s+(\d+)\s+node\s+versions?$`)
	reNodeRange             = regexp.MustCompile(`(?i)^node\s+([\d.]+)\s*-\s*([\d.]+)$`)
	reNodeComparison        = regexp.MustCompile(`(?i)^node\s*(>=?|<=?)\s*([\d.]+)$`)
	reNodeVersion           = regexp.MustCompile(`(?i)^node\s+(\d+(?:\.\d+)?(?:\.\d+)?)$`)
	reCurrentNode           = regexp.MustCompile(`(?i)^current\s+node$`)
	reMaintainedNode        = regexp.MustCompile(`(?i)^maintained\s+node\s+versions$`)
)

func nodeDistribs(releases []*semver.Version) []Distrib {
	out := make([]Distrib, len(releases))
	for i, v := range releases {
		out[i] = NewDistrib("node", v.Original())
	}
	return out
}

func nodeMajor(v *semver.Version) (int, bool) {
	return int(v.Major()), true
}

// matchingReleases returns the Node.js releases satisfying c, oldest first.
func matchingReleases(c *semver.Constraints) []*semver.Version {
	var out []*semver.Version
	for _, v := range data.NodeReleases() {
		if c.Check(v) {
			out = append(out, v)
		}
	}
	return out
}

// newestRelease returns the newest Node.js release satisfying c.
func newestRelease(c *semver.Constraints) (*semver.Version, bool) {
	matched := matchingReleases(c)
	if len(matched) == 0 {
		return nil, false
	}
	return matched[len(matched)-1], true
}

// truncateLoose keeps the major and minor of v. Constraints built from the
// result compare only those segments.
func truncateLoose(v string) string {
	if parts := strings.SplitN(v, ".", 3); len(parts) == 3 {
		return parts[0] + "." + parts[1]
	}
	return v
}

// padStrict fills missing minor and patch segments of v with zeros.
func padStrict(v string) string {
	if n := strings.Count(v, "."); n < 2 {
		return v + strings.Repeat(".0", 2-n)
	}
	return v
}

// lastNodeMajorVersions handles "last N node major versions".
type lastNodeMajorVersions struct{}

func (lastNodeMajorVersions) pattern() *regexp.Regexp { return reLastNodeMajorVersions }

func (lastNodeMajorVersions) selectMatch(m []string, _ *Resolver) ([]Distrib, error) {
	count, err := parseCount(m[1])
	if err != nil {
		return nil, err
	}
	return nodeDistribs(lastMajors(data.NodeReleases(), count, nodeMajor)), nil
}

// lastNodeVersions handles "last N node versions".
type lastNodeVersions struct{}

func (lastNodeVersions) pattern() *regexp.Regexp { return reLastNodeVersions }

func (lastNodeVersions) selectMatch(m []string, _ *Resolver) ([]Distrib, error) {
	count, err := parseCount(m[1])
	if err != nil {
		return nil, err
	}
	return nodeDistribs(lastN(data.NodeReleases(), count)), nil
}

// nodeRange handles "node A - B". Bounds compare on major and minor only, so
// "node 10 - 12" includes every 12.x release.
type nodeRange struct{}

func (nodeRange) pattern() *regexp.Regexp { return reNodeRange }

func (nodeRange) selectMatch(m []string, _ *Resolver) ([]Distrib, error) {
	c, err := semver.NewConstraint(">= " + truncateLoose(m[1]) + ", <= " + truncateLoose(m[2]))
	if err != nil {
		return nil, versionError(ErrUnknownNodeVersion, "node", m[1]+" - "+m[2])
	}
	return nodeDistribs(matchingReleases(c)), nil
}

// nodeComparison handles "node >= V" and the other comparisons. Missing
// segments of V count as zero, so "node > 10" includes 10.1.0.
type nodeComparison struct{}

func (nodeComparison) pattern() *regexp.Regexp { return reNodeComparison }

func (nodeComparison) selectMatch(m []string, _ *Resolver) ([]Distrib, error) {
	c, err := semver.NewConstraint(m[1] + " " + padStrict(m[2]))
	if err != nil {
		return nil, versionError(ErrUnknownNodeVersion, "node", m[2])
	}
	return nodeDistribs(matchingReleases(c)), nil
}

// nodeVersion handles "node V", selecting the newest release that V is a
// prefix of.
type nodeVersion struct{}

func (nodeVersion) pattern() *regexp.Regexp { return reNodeVersion }

func (nodeVersion) selectMatch(m []string, r *Resolver) ([]Distrib, error) {
	c, err := semver.NewConstraint(m[1])
	if err == nil {
		if v, ok := newestRelease(c); ok {
			return []Distrib{NewDistrib("node", v.Original())}, nil
		}
	}
	if r.opts.IgnoreUnknownVersions {
		return nil, nil
	}
	return nil, versionError(ErrUnknownNodeVersion, "node", m[1])
}

// currentNode handles "current node" from Opts.NodeVersion.
type currentNode struct{}

func (currentNode) pattern() *regexp.Regexp { return reCurrentNode }

func (currentNode) selectMatch(_ []string, r *Resolver) ([]Distrib, error) {
	v := strings.TrimPrefix(strings.TrimSpace(r.opts.NodeVersion), "v")
	if v == "" {
		return nil, &QueryError{Kind: ErrCurrentNodeUnavailable}
	}
	return []Distrib{NewDistrib("node", v)}, nil
}

// maintainedNode handles "maintained node versions": the newest release of
// every release line whose support window contains the current time.
type maintainedNode struct{}

func (maintainedNode) pattern() *regexp.Regexp { return reMaintainedNode }

func (maintainedNode) selectMatch(_ []string, r *Resolver) ([]Distrib, error) {
	now := r.opts.now()
	var out []Distrib
	for _, s := range data.NodeSchedules() {
		if !s.Active(now) {
			continue
		}
		c, err := semver.NewConstraint(s.Major)
		if err != nil {
			continue
		}
		if v, ok := newestRelease(c); ok {
			out = append(out, NewDistrib("node", v.Original()))
		}
	}
	return out, nil
}
