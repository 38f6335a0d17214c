package browserslist

import (
	"regexp"
	"strings"
)

// Op is the way a clause combines with the clauses before it.
type Op int

const (
	// OpOr adds the clause's distribs to the running result.
	OpOr Op = iota
	// OpAnd keeps only the running distribs the clause also selects.
	OpAnd
)

func (o Op) String() string {
	if o == OpAnd {
		return "and"
	}
	return "or"
}

// Clause is a single query term together with how it combines.
type Clause struct {
	Op   Op
	Text string
}

var (
	orSeparator  = regexp.MustCompile(`(?i)\s+or\s+|\s*,\s*`)
	andSeparator = regexp.MustCompile(`(?i)\s+and\s+`)
)

// ParseQuery splits a query into clauses.
//
// A query is a list of groups separated by "or" or commas. Each group is a
// list of clauses separated by "and". The first clause of a group is tagged
// OpOr and the rest OpAnd. Keywords are case-insensitive, and empty clauses
// left by stray separators are dropped.
//
//	ParseQuery("> 1%, last 2 versions and not dead")
//	// [{OpOr "> 1%"} {OpOr "last 2 versions"} {OpAnd "not dead"}]
func ParseQuery(query string) []Clause {
	var clauses []Clause
	for _, group := range orSeparator.Split(query, -1) {
		op := OpOr
		for _, text := range andSeparator.Split(group, -1) {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			clauses = append(clauses, Clause{Op: op, Text: text})
			op = OpAnd
		}
	}
	return clauses
}

var negation = regexp.MustCompile(`(?i)^not\s+`)

// stripNegation removes a leading "not" and reports whether it was present.
func stripNegation(text string) (string, bool) {
	loc := negation.FindStringIndex(text)
	if loc == nil {
		return text, false
	}
	return text[loc[1]:], true
}
