package browserslist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []Clause
	}{
		{
			name:  "single clause",
			query: "> 1%",
			want:  []Clause{{Op: OpOr, Text: "> 1%"}},
		},
		{
			name:  "comma separated",
			query: "> 1%, last 2 versions",
			want: []Clause{
				{Op: OpOr, Text: "> 1%"},
				{Op: OpOr, Text: "last 2 versions"},
			},
		},
		{
			name:  "or keyword",
			query: "ie 6 or ie 7",
			want: []Clause{
				{Op: OpOr, Text: "ie 6"},
				{Op: OpOr, Text: "ie 7"},
			},
		},
		{
			name:  "and keyword",
			query: "> 1% and last 2 versions",
			want: []Clause{
				{Op: OpOr, Text: "> 1%"},
				{Op: OpAnd, Text: "last 2 versions"},
			},
		},
		{
			name:  "mixed groups",
			query: "> 1%, last 2 versions and not dead",
			want: []Clause{
				{Op: OpOr, Text: "> 1%"},
				{Op: OpOr, Text: "last 2 versions"},
				{Op: OpAnd, Text: "not dead"},
			},
		},
		{
			name:  "keywords are case-insensitive",
			query: "ie 6 OR ie 7 AND ie > 6",
			want: []Clause{
				{Op: OpOr, Text: "ie 6"},
				{Op: OpOr, Text: "ie 7"},
				{Op: OpAnd, Text: "ie > 6"},
			},
		},
		{
			name:  "surrounding whitespace",
			query: "   chrome 100 ,  firefox 90   ",
			want: []Clause{
				{Op: OpOr, Text: "chrome 100"},
				{Op: OpOr, Text: "firefox 90"},
			},
		},
		{
			name:  "stray separators",
			query: ", chrome 100,,",
			want:  []Clause{{Op: OpOr, Text: "chrome 100"}},
		},
		{
			name:  "keyword inside a word is not a separator",
			query: "operamini all",
			want:  []Clause{{Op: OpOr, Text: "operamini all"}},
		},
		{
			name:  "empty",
			query: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuery(tt.query)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseQuery(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestStripNegation(t *testing.T) {
	tests := []struct {
		text        string
		want        string
		wantNegated bool
	}{
		{"not dead", "dead", true},
		{"NOT ie <= 6", "ie <= 6", true},
		{"not   ie 6", "ie 6", true},
		{"dead", "dead", false},
		{"nothing", "nothing", false},
	}

	for _, tt := range tests {
		got, negated := stripNegation(tt.text)
		if got != tt.want || negated != tt.wantNegated {
			t.Errorf("stripNegation(%q) = (%q, %v), want (%q, %v)", tt.text, got, negated, tt.want, tt.wantNegated)
		}
	}
}

func TestOpString(t *testing.T) {
	if got := OpOr.String(); got != "or" {
		t.Errorf("OpOr.String() = %q, want %q", got, "or")
	}
	if got := OpAnd.String(); got != "and" {
		t.Errorf("OpAnd.String() = %q, want %q", got, "and")
	}
}
