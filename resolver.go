package browserslist

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/albertocavalcante/go-browserslist/data"
	"github.com/albertocavalcante/go-browserslist/version"
)

// Resolver resolves queries with a fixed set of options.
//
// A Resolver holds no mutable state and is safe for concurrent use.
type Resolver struct {
	opts Opts
}

// NewResolver creates a Resolver from functional options.
func NewResolver(opts ...Option) (*Resolver, error) {
	c, err := newResolverConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Resolver{opts: c.toOpts()}, nil
}

// Opts returns the options the resolver was created with.
func (r *Resolver) Opts() Opts {
	return r.opts
}

// Resolve evaluates queries in order and returns the selected distribs.
//
// Every query is split into clauses that are folded into one running list:
// OpOr clauses append, OpAnd clauses intersect, and clauses starting with
// "not" remove what they select regardless of their Op. The result is sorted
// by name, newest version first, with duplicates removed.
//
// The first clause that fails aborts resolution; no partial result is
// returned.
func (r *Resolver) Resolve(queries []string) ([]Distrib, error) {
	logger := r.opts.log()

	var distribs []Distrib
	for _, query := range queries {
		for _, clause := range ParseQuery(query) {
			text, negated := stripNegation(clause.Text)
			selected, err := r.resolveClause(text)
			if err != nil {
				return nil, err
			}
			logger.Debug("resolved clause",
				"clause", text,
				"op", clause.Op,
				"negated", negated,
				"count", len(selected))

			switch {
			case negated:
				distribs = subtract(distribs, selected)
			case clause.Op == OpAnd:
				distribs = intersect(distribs, selected)
			default:
				distribs = append(distribs, selected...)
			}
		}
	}

	sortDistribs(distribs)
	distribs = lo.Uniq(distribs)
	logger.Debug("resolved queries", "queries", len(queries), "distribs", len(distribs))
	return distribs, nil
}

// resolveClause runs the first selector whose pattern matches text.
func (r *Resolver) resolveClause(text string) ([]Distrib, error) {
	for _, s := range selectors {
		m := s.pattern().FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return s.selectMatch(m, r)
	}

	if _, _, ok := data.Lookup(text, r.opts.MobileToDesktop); ok {
		return nil, queryError(ErrVersionRequired, text)
	}
	return nil, queryError(ErrUnknownQuery, text)
}

func subtract(distribs, remove []Distrib) []Distrib {
	set := distribSet(remove)
	return slices.DeleteFunc(distribs, func(d Distrib) bool {
		_, ok := set[d]
		return ok
	})
}

func intersect(distribs, keep []Distrib) []Distrib {
	set := distribSet(keep)
	return slices.DeleteFunc(distribs, func(d Distrib) bool {
		_, ok := set[d]
		return !ok
	})
}

func distribSet(distribs []Distrib) map[Distrib]struct{} {
	set := make(map[Distrib]struct{}, len(distribs))
	for _, d := range distribs {
		set[d] = struct{}{}
	}
	return set
}

// sortDistribs orders distribs by name, then newest version first.
func sortDistribs(distribs []Distrib) {
	slices.SortStableFunc(distribs, func(a, b Distrib) int {
		return cmp.Or(
			cmp.Compare(a.Name, b.Name),
			version.Compare(a.Version, b.Version),
		)
	})
}
