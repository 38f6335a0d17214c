package data

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
)

const scheduleDateLayout = time.DateOnly

// NodeSchedule is the support window of one Node.js release line.
type NodeSchedule struct {
	// Major is the release line without its "v" prefix, e.g. "18" or "0.12".
	Major string
	Start time.Time
	End   time.Time
}

// Active reports whether now falls strictly inside the support window.
func (s NodeSchedule) Active(now time.Time) bool {
	return now.After(s.Start) && now.Before(s.End)
}

type nodeSchedule struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type nodeFile struct {
	Versions []string                `json:"versions"`
	Schedule map[string]nodeSchedule `json:"schedule"`
}

var (
	nodeData = sync.OnceValue(func() nodeFile {
		return decode[nodeFile]("node.json")
	})

	nodeReleases = sync.OnceValue(func() []*semver.Version {
		versions := nodeData().Versions
		out := make([]*semver.Version, 0, len(versions))
		for _, v := range versions {
			sv, err := semver.StrictNewVersion(v)
			if err != nil {
				panic(fmt.Sprintf("data: node release %q: %v", v, err))
			}
			out = append(out, sv)
		}
		return out
	})

	nodeSchedules = sync.OnceValue(func() []NodeSchedule {
		out, err := parseSchedules(nodeData().Schedule)
		if err != nil {
			panic(fmt.Sprintf("data: node schedule: %v", err))
		}
		return out
	})
)

// NodeVersions returns every Node.js release, oldest first.
func NodeVersions() []string {
	return nodeData().Versions
}

// NodeReleases returns every Node.js release parsed as a semantic version,
// oldest first.
func NodeReleases() []*semver.Version {
	return nodeReleases()
}

// NodeSchedules returns the Node.js release schedule ordered by release line.
func NodeSchedules() []NodeSchedule {
	return nodeSchedules()
}

func parseSchedules(raw map[string]nodeSchedule) ([]NodeSchedule, error) {
	out := make([]NodeSchedule, 0, len(raw))
	for name, s := range raw {
		start, err := time.Parse(scheduleDateLayout, s.Start)
		if err != nil {
			return nil, fmt.Errorf("%s start: %w", name, err)
		}
		end, err := time.Parse(scheduleDateLayout, s.End)
		if err != nil {
			return nil, fmt.Errorf("%s end: %w", name, err)
		}
		out = append(out, NodeSchedule{
			Major: strings.TrimPrefix(name, "v"),
			Start: start,
			End:   end,
		})
	}
	slices.SortFunc(out, func(a, b NodeSchedule) int {
		return cmp.Or(a.Start.Compare(b.Start), strings.Compare(a.Major, b.Major))
	})
	return out, nil
}

// UnmarshalJSON rejects schedule entries missing either date.
func (s *nodeSchedule) UnmarshalJSON(b []byte) error {
	type plain nodeSchedule
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if p.Start == "" || p.End == "" {
		return errors.New("schedule entry needs start and end")
	}
	*s = nodeSchedule(p)
	return nil
}
