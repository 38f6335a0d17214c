package browserslist

import "regexp"

var (
	reDefaults = regexp.MustCompile(`(?i)^defaults$`)
	reDead     = regexp.MustCompile(`(?i)^dead$`)
)

// defaults handles "defaults" by resolving the default query list.
type defaults struct{}

func (defaults) pattern() *regexp.Regexp { return reDefaults }

func (defaults) selectMatch(_ []string, r *Resolver) ([]Distrib, error) {
	return r.Resolve(defaultQueries)
}

// dead handles "dead" by resolving the list of unsupported browsers.
type dead struct{}

func (dead) pattern() *regexp.Regexp { return reDead }

func (dead) selectMatch(_ []string, r *Resolver) ([]Distrib, error) {
	return r.Resolve(deadQueries)
}
