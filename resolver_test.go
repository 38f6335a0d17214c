package browserslist

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/go-browserslist/data"
)

// queryCase is one entry of testdata/queries.yaml.
type queryCase struct {
	Query           string    `yaml:"query"`
	MobileToDesktop bool      `yaml:"mobileToDesktop"`
	NodeVersion     string    `yaml:"nodeVersion"`
	Now             time.Time `yaml:"now"`
	Want            []string  `yaml:"want"`
}

func (c queryCase) opts() Opts {
	opts := Opts{
		MobileToDesktop: c.MobileToDesktop,
		NodeVersion:     c.NodeVersion,
	}
	if !c.Now.IsZero() {
		opts.Now = fixedClock(c.Now)
	}
	return opts
}

func loadQueryCases(t *testing.T) []queryCase {
	t.Helper()
	content, err := os.ReadFile("testdata/queries.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var cases []queryCase
	if err := yaml.Unmarshal(content, &cases); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("testdata/queries.yaml has no cases")
	}
	return cases
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func TestResolve_Golden(t *testing.T) {
	for _, tc := range loadQueryCases(t) {
		name := tc.Query
		if tc.MobileToDesktop {
			name += " (mobile to desktop)"
		}
		t.Run(name, func(t *testing.T) {
			got, err := ResolveStrings([]string{tc.Query}, tc.opts())
			if err != nil {
				t.Fatalf("ResolveStrings(%q) error = %v", tc.Query, err)
			}
			if diff := cmp.Diff(tc.Want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ResolveStrings(%q) mismatch (-want +got):\n%s", tc.Query, diff)
			}
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		opts        Opts
		wantKind    error
		wantText    string
		wantVersion string
	}{
		{
			name:     "unknown browser",
			query:    "yuru 1.0",
			wantKind: ErrBrowserNotFound,
			wantText: "yuru",
		},
		{
			name:     "unknown browser in last versions",
			query:    "last 2 yuru versions",
			wantKind: ErrBrowserNotFound,
			wantText: "yuru",
		},
		{
			name:     "bare browser name",
			query:    "chrome",
			wantKind: ErrVersionRequired,
			wantText: "chrome",
		},
		{
			name:     "bare alias",
			query:    "ios",
			wantKind: ErrVersionRequired,
			wantText: "ios",
		},
		{
			name:     "unknown query",
			query:    "good browsers",
			wantKind: ErrUnknownQuery,
			wantText: "good browsers",
		},
		{
			name:        "unknown browser version",
			query:       "chrome 1000",
			wantKind:    ErrUnknownBrowserVersion,
			wantText:    "chrome",
			wantVersion: "1000",
		},
		{
			name:        "unparseable range bound",
			query:       "chrome 90 - ...",
			wantKind:    ErrUnknownBrowserVersion,
			wantText:    "chrome",
			wantVersion: "...",
		},
		{
			name:        "unparseable comparison bound",
			query:       "firefox >= ...",
			wantKind:    ErrUnknownBrowserVersion,
			wantText:    "firefox",
			wantVersion: "...",
		},
		{
			name:        "unknown electron version",
			query:       "electron 99",
			wantKind:    ErrUnknownElectronVersion,
			wantText:    "electron",
			wantVersion: "99",
		},
		{
			name:        "unknown electron range bound",
			query:       "electron 0.1 - 27",
			wantKind:    ErrUnknownElectronVersion,
			wantText:    "electron",
			wantVersion: "0.1",
		},
		{
			name:        "unknown node version",
			query:       "node 99",
			wantKind:    ErrUnknownNodeVersion,
			wantText:    "node",
			wantVersion: "99",
		},
		{
			name:     "current node without version",
			query:    "current node",
			wantKind: ErrCurrentNodeUnavailable,
		},
		{
			name:     "nonexistent day",
			query:    "since 2023-02-30",
			wantKind: ErrInvalidDate,
			wantText: "2023-02-30",
		},
		{
			name:     "nonexistent month",
			query:    "since 2023-13",
			wantKind: ErrInvalidDate,
			wantText: "2023-13",
		},
		{
			name:     "count overflow",
			query:    "last 99999999999999999999 versions",
			wantKind: ErrParseVersionsCount,
			wantText: "99999999999999999999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve([]string{tt.query}, tt.opts)
			if err == nil {
				t.Fatalf("Resolve(%q) = %v, want error", tt.query, got)
			}
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("Resolve(%q) error = %v, want %v", tt.query, err, tt.wantKind)
			}
			var qerr *QueryError
			if !errors.As(err, &qerr) {
				t.Fatalf("Resolve(%q) error type = %T, want *QueryError", tt.query, err)
			}
			if qerr.Text != tt.wantText {
				t.Errorf("QueryError.Text = %q, want %q", qerr.Text, tt.wantText)
			}
			if qerr.Version != tt.wantVersion {
				t.Errorf("QueryError.Version = %q, want %q", qerr.Version, tt.wantVersion)
			}
		})
	}
}

func TestResolve_ErrorAbortsQueryList(t *testing.T) {
	got, err := Resolve([]string{"last 2 chrome versions", "yuru 1.0"}, Opts{})
	if !errors.Is(err, ErrBrowserNotFound) {
		t.Fatalf("Resolve() error = %v, want %v", err, ErrBrowserNotFound)
	}
	if got != nil {
		t.Errorf("Resolve() = %v, want nil result on error", got)
	}
}

func TestResolve_IgnoreUnknownVersions(t *testing.T) {
	opts := Opts{IgnoreUnknownVersions: true}
	for _, query := range []string{"chrome 1000", "electron 99", "node 99"} {
		got, err := Resolve([]string{query}, opts)
		if err != nil {
			t.Errorf("Resolve(%q) error = %v", query, err)
			continue
		}
		if len(got) != 0 {
			t.Errorf("Resolve(%q) = %v, want empty", query, got)
		}
	}

	// Unknown browsers are still errors.
	if _, err := Resolve([]string{"yuru 1.0"}, opts); !errors.Is(err, ErrBrowserNotFound) {
		t.Errorf("Resolve(yuru 1.0) error = %v, want %v", err, ErrBrowserNotFound)
	}
}

func TestResolve_Dead(t *testing.T) {
	got, err := ResolveStrings([]string{"dead"}, Opts{})
	if err != nil {
		t.Fatalf("ResolveStrings(dead) error = %v", err)
	}
	want := []string{
		"baidu 13.18",
		"bb 10", "bb 7",
		"ie 11", "ie 10", "ie 9", "ie 8", "ie 7", "ie 6", "ie 5.5",
		"ie_mob 11", "ie_mob 10",
		"op_mob 12.1", "op_mob 12", "op_mob 11.5", "op_mob 11.1", "op_mob 11", "op_mob 10",
		"samsung 4",
	}
	// Opera Mobile versions tie under version comparison, so only the set
	// is stable.
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("ResolveStrings(dead) mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_Defaults(t *testing.T) {
	got, err := Resolve([]string{"defaults"}, Opts{})
	if err != nil {
		t.Fatalf("Resolve(defaults) error = %v", err)
	}
	want, err := Resolve(Defaults(), Opts{})
	if err != nil {
		t.Fatalf("Resolve(Defaults()) error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve(defaults) mismatch (-want +got):\n%s", diff)
	}
	if !containsDistrib(got, NewDistrib("firefox", "115")) {
		t.Errorf("Resolve(defaults) = %v, want firefox 115 included", got)
	}
	if containsDistrib(got, NewDistrib("ie", "11")) {
		t.Errorf("Resolve(defaults) = %v, want ie 11 excluded", got)
	}
}

func TestDefaultsReturnsCopy(t *testing.T) {
	d := Defaults()
	d[0] = "changed"
	if Defaults()[0] == "changed" {
		t.Error("Defaults() shares its backing array")
	}
}

func TestResolve_Negation(t *testing.T) {
	queries := []string{"last 2 versions", "> 1%", "dead", "since 2023"}
	for _, q := range queries {
		got, err := Resolve([]string{q, "not " + q}, Opts{})
		if err != nil {
			t.Fatalf("Resolve(%q, not %q) error = %v", q, q, err)
		}
		if len(got) != 0 {
			t.Errorf("Resolve(%q, not %q) = %v, want empty", q, q, got)
		}
	}
}

func TestResolve_AndIsIntersection(t *testing.T) {
	a, b := "last 3 versions", "> 0.5%"

	got, err := Resolve([]string{a + " and " + b}, Opts{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	left, err := Resolve([]string{a}, Opts{})
	if err != nil {
		t.Fatalf("Resolve(%q) error = %v", a, err)
	}
	right, err := Resolve([]string{b}, Opts{})
	if err != nil {
		t.Fatalf("Resolve(%q) error = %v", b, err)
	}

	var want []Distrib
	for _, d := range left {
		if containsDistrib(right, d) {
			want = append(want, d)
		}
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty(), sortDistribsOpt); diff != "" {
		t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", a+" and "+b, diff)
	}
}

func TestResolve_Deduplicates(t *testing.T) {
	once, err := Resolve([]string{"> 1%"}, Opts{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	twice, err := Resolve([]string{"> 1%", "> 1%"}, Opts{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if diff := cmp.Diff(once, twice, sortDistribsOpt); diff != "" {
		t.Errorf("duplicate query changed result (-once +twice):\n%s", diff)
	}
}

func TestResolve_SortedByName(t *testing.T) {
	got, err := Resolve([]string{"last 2 versions", "node >= 20", "last 2 electron versions"}, Opts{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Name > got[i].Name {
			t.Fatalf("Resolve() not sorted by name at %d: %v before %v", i, got[i-1], got[i])
		}
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	pairs := [][2]string{
		{"last 2 versions", "LAST 2 VERSIONS"},
		{"firefox esr", "Firefox ESR"},
		{"not dead", "NOT DEAD"},
		{"maintained node versions", "Maintained Node Versions"},
	}
	opts := Opts{Now: fixedClock(time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC))}
	for _, p := range pairs {
		lower, err := Resolve([]string{"defaults", p[0]}, opts)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", p[0], err)
		}
		upper, err := Resolve([]string{"defaults", p[1]}, opts)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", p[1], err)
		}
		if diff := cmp.Diff(lower, upper); diff != "" {
			t.Errorf("Resolve(%q) != Resolve(%q) (-lower +upper):\n%s", p[0], p[1], diff)
		}
	}
}

func TestResolve_LastYears(t *testing.T) {
	since := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)
	now := since.Add(time.Duration(secondsPerYear/2) * time.Second)

	got, err := Resolve([]string{"last 0.5 years"}, Opts{Now: fixedClock(now)})
	if err != nil {
		t.Fatalf("Resolve(last 0.5 years) error = %v", err)
	}
	want, err := Resolve([]string{"since 2023-10-01"}, Opts{})
	if err != nil {
		t.Fatalf("Resolve(since 2023-10-01) error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve(last 0.5 years) mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_SinceEpoch(t *testing.T) {
	got, err := Resolve([]string{"since 1970"}, Opts{})
	if err != nil {
		t.Fatalf("Resolve(since 1970) error = %v", err)
	}

	var want int
	for _, name := range data.BrowserNames() {
		_, stat, _ := data.Lookup(name, false)
		for _, v := range stat.Versions {
			if _, ok := stat.ReleaseTime(v); ok {
				want++
			}
		}
	}
	if len(got) != want {
		t.Errorf("len(Resolve(since 1970)) = %d, want %d", len(got), want)
	}
}

func TestResolve_MobileToDesktopAndroid(t *testing.T) {
	tests := []struct {
		query string
		m2d   bool
		want  int
	}{
		{"last 1 android versions", false, 1},
		{"last 2 android versions", false, 1},
		{"last 2 android versions", true, 2},
		{"last 1 android major versions", true, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/m2d=%v", tt.query, tt.m2d), func(t *testing.T) {
			got, err := Resolve([]string{tt.query}, Opts{MobileToDesktop: tt.m2d})
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.query, err)
			}
			if len(got) != tt.want {
				t.Errorf("Resolve(%q) = %v, want %d distribs", tt.query, got, tt.want)
			}
			for _, d := range got {
				if d.Name != "android" {
					t.Errorf("Resolve(%q) returned %v, want android only", tt.query, d)
				}
			}
		})
	}
}

func TestResolve_MobileToDesktopKeepsMobileName(t *testing.T) {
	got, err := ResolveStrings([]string{"and_ff 100", "ie_mob 9"}, Opts{MobileToDesktop: true})
	if err != nil {
		t.Fatalf("ResolveStrings() error = %v", err)
	}
	want := []string{"and_ff 100", "ie_mob 9"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveStrings() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := Resolve([]string{"last 1 chrome version and not dead"}, Opts{Logger: logger}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"resolved clause", "clause=\"last 1 chrome version\"", "op=and", "negated=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestResolver_Concurrent(t *testing.T) {
	r, err := NewResolver(WithClock(fixedClock(time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC))))
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	queries := []string{"defaults", "maintained node versions", "last 1 year", "cover 90%"}
	want, err := r.Resolve(queries)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	var g errgroup.Group
	for range 16 {
		g.Go(func() error {
			got, err := r.Resolve(queries)
			if err != nil {
				return err
			}
			if diff := cmp.Diff(want, got); diff != "" {
				return fmt.Errorf("concurrent result mismatch (-want +got):\n%s", diff)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Error(err)
	}
}

// sortDistribsOpt compares distrib lists as sets. Versions that compare
// equal may appear in either order.
var sortDistribsOpt = cmpopts.SortSlices(func(a, b Distrib) bool { return a.String() < b.String() })

func containsDistrib(list []Distrib, d Distrib) bool {
	for _, x := range list {
		if x == d {
			return true
		}
	}
	return false
}
