package browserslist

import (
	"errors"
	"fmt"
)

// Sentinel errors for query resolution failures. Every error returned by
// Resolve wraps exactly one of them in a *QueryError.
var (
	// ErrUnknownQuery indicates the clause matches no known query form.
	ErrUnknownQuery = errors.New("unknown query")

	// ErrBrowserNotFound indicates the clause names a browser that is not in
	// the dataset.
	ErrBrowserNotFound = errors.New("unknown browser")

	// ErrVersionRequired indicates a bare browser name without a version or
	// comparison, e.g. "chrome".
	ErrVersionRequired = errors.New("version required")

	// ErrParsePercentage indicates a malformed usage percentage.
	ErrParsePercentage = errors.New("failed to parse percentage")

	// ErrParseVersionsCount indicates a "last N" count that is not a valid
	// integer.
	ErrParseVersionsCount = errors.New("failed to parse versions count")

	// ErrParseYearsCount indicates a "last N years" count that is not a valid
	// number.
	ErrParseYearsCount = errors.New("failed to parse years count")

	// ErrInvalidDate indicates a "since" clause naming a date that does not
	// exist.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnknownBrowserVersion indicates a version the browser never had.
	ErrUnknownBrowserVersion = errors.New("unknown browser version")

	// ErrUnknownElectronVersion indicates an Electron version missing from
	// the Electron to Chromium table.
	ErrUnknownElectronVersion = errors.New("unknown electron version")

	// ErrUnknownNodeVersion indicates a Node.js version with no matching
	// release.
	ErrUnknownNodeVersion = errors.New("unknown node version")

	// ErrCurrentNodeUnavailable indicates a "current node" query without a
	// configured Node.js version.
	ErrCurrentNodeUnavailable = errors.New("current node version unavailable")
)

// QueryError describes a clause that failed to resolve.
type QueryError struct {
	Kind    error  // One of the Err* sentinels
	Text    string // Offending clause, browser name or literal
	Version string // Offending version, when Kind concerns one
}

func (e *QueryError) Error() string {
	switch e.Kind {
	case ErrBrowserNotFound:
		return fmt.Sprintf("unknown browser: `%s`", e.Text)
	case ErrVersionRequired:
		return fmt.Sprintf("specify versions in query for browser: `%s`", e.Text)
	case ErrUnknownBrowserVersion:
		return fmt.Sprintf("unknown version `%s` of browser `%s`", e.Version, e.Text)
	case ErrUnknownElectronVersion, ErrUnknownNodeVersion:
		return fmt.Sprintf("%v: `%s`", e.Kind, e.Version)
	case ErrCurrentNodeUnavailable:
		return e.Kind.Error()
	default:
		return fmt.Sprintf("%v: `%s`", e.Kind, e.Text)
	}
}

// Unwrap returns the sentinel so errors.Is matches on the error kind.
func (e *QueryError) Unwrap() error {
	return e.Kind
}

func queryError(kind error, text string) *QueryError {
	return &QueryError{Kind: kind, Text: text}
}

func versionError(kind error, text, version string) *QueryError {
	return &QueryError{Kind: kind, Text: text, Version: version}
}
