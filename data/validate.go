package data

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/albertocavalcante/go-browserslist/version"
)

// FieldError represents a validation failure for a specific field.
type FieldError struct {
	Field   string // Field path (e.g., `browsers["chrome"].released[3]`)
	Message string // Human-readable error message
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors struct {
	Errors []*FieldError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&b, "\n  - %s", err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying errors for errors.Is/As compatibility.
func (e *ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Add appends a validation error.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &FieldError{Field: field, Message: message})
}

// HasErrors returns true if any errors were collected.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// ToError returns nil if no errors, otherwise returns self.
func (e *ValidationErrors) ToError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Validate checks the embedded datasets for internal consistency.
// Returns nil if valid, or ValidationErrors containing all issues found.
func Validate() error {
	var errs ValidationErrors
	validateBrowsers(&errs, browsers())
	validateUsage(&errs, usage(), browsers())
	validateElectron(&errs, electron(), browsers()["chrome"])
	validateNode(&errs, nodeData())
	return errs.ToError()
}

// ValidateBrowsers checks a browser table: every stat is keyed by its own
// name, released versions are a subset of known versions, and release dates
// only refer to known versions.
func ValidateBrowsers(stats map[string]*BrowserStat) error {
	var errs ValidationErrors
	validateBrowsers(&errs, stats)
	return errs.ToError()
}

// ValidateUsage checks that a usage table refers to known browser versions,
// carries no negative shares and is sorted by share, highest first.
func ValidateUsage(entries []UsageEntry, stats map[string]*BrowserStat) error {
	var errs ValidationErrors
	validateUsage(&errs, entries, stats)
	return errs.ToError()
}

func validateBrowsers(errs *ValidationErrors, stats map[string]*BrowserStat) {
	if len(stats) == 0 {
		errs.Add("browsers", "required field is missing or empty")
		return
	}
	for _, key := range slices.Sorted(maps.Keys(stats)) {
		stat := stats[key]
		field := fmt.Sprintf("browsers[%q]", key)
		if stat == nil {
			errs.Add(field, "entry is null")
			continue
		}
		if stat.Name != key {
			errs.Add(field+".name", fmt.Sprintf("name %q does not match key", stat.Name))
		}
		if len(stat.Versions) == 0 {
			errs.Add(field+".versions", "required field is missing or empty")
		}
		for i, v := range stat.Released {
			if !stat.HasVersion(v) {
				errs.Add(fmt.Sprintf("%s.released[%d]", field, i),
					fmt.Sprintf("version %q is not listed in versions", v))
			}
		}
		for _, v := range slices.Sorted(maps.Keys(stat.ReleaseDate)) {
			if !stat.HasVersion(v) {
				errs.Add(fmt.Sprintf("%s.releaseDate[%q]", field, v), "version is not listed in versions")
			}
		}
	}
}

func validateUsage(errs *ValidationErrors, entries []UsageEntry, stats map[string]*BrowserStat) {
	for i, e := range entries {
		field := fmt.Sprintf("usage[%d]", i)
		stat, ok := stats[e.Name]
		switch {
		case !ok:
			errs.Add(field, fmt.Sprintf("unknown browser %q", e.Name))
		case !stat.HasVersion(e.Version):
			errs.Add(field, fmt.Sprintf("unknown %s version %q", e.Name, e.Version))
		}
		if e.Usage < 0 {
			errs.Add(field, "usage must not be negative")
		}
		if i > 0 && e.Usage > entries[i-1].Usage {
			errs.Add(field, "usage table must be sorted by share, highest first")
		}
	}
}

func validateElectron(errs *ValidationErrors, releases []ElectronRelease, chrome *BrowserStat) {
	prev := -1.0
	for i, r := range releases {
		field := fmt.Sprintf("electron[%d]", i)
		f, ok := version.ParseFloat(r.Electron)
		if !ok {
			errs.Add(field, fmt.Sprintf("electron version %q is not numeric", r.Electron))
			continue
		}
		if f < prev {
			errs.Add(field, "electron releases must be sorted, oldest first")
		}
		prev = f
		if chrome != nil && !chrome.HasVersion(r.Chromium) {
			errs.Add(field, fmt.Sprintf("chromium version %q is not a known chrome version", r.Chromium))
		}
	}
}

func validateNode(errs *ValidationErrors, f nodeFile) {
	var prev *semver.Version
	for i, v := range f.Versions {
		field := fmt.Sprintf("node.versions[%d]", i)
		sv, err := semver.StrictNewVersion(v)
		if err != nil {
			errs.Add(field, err.Error())
			continue
		}
		if prev != nil && !sv.GreaterThan(prev) {
			errs.Add(field, "node releases must be sorted, oldest first")
		}
		prev = sv
	}
	for _, name := range slices.Sorted(maps.Keys(f.Schedule)) {
		s := f.Schedule[name]
		field := fmt.Sprintf("node.schedule[%q]", name)
		start, err := time.Parse(scheduleDateLayout, s.Start)
		if err != nil {
			errs.Add(field+".start", err.Error())
			continue
		}
		end, err := time.Parse(scheduleDateLayout, s.End)
		if err != nil {
			errs.Add(field+".end", err.Error())
			continue
		}
		if !end.After(start) {
			errs.Add(field, "end must be after start")
		}
	}
}
