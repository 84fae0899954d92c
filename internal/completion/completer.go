// Package completion turns partial pipeline text into ranked completion proposals.
package completion

import (
	"sort"

	"github.com/NikitaCOEUR/pipecomplete/internal/pipeline"
	"github.com/NikitaCOEUR/pipecomplete/internal/registry"
)

// Proposal is one completion offered to the caller.
// Text always starts with the raw text that was completed.
type Proposal struct {
	Text        string `json:"text" yaml:"text"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// Request is a single completion call
type Request struct {
	RawText     string `json:"start" yaml:"start"`
	DetailLevel int    `json:"detailLevel,omitempty" yaml:"detailLevel,omitempty"`
}

// Level returns the detail level clamped to at least 1
func (r Request) Level() int {
	if r.DetailLevel < 1 {
		return 1
	}
	return r.DetailLevel
}

// Candidate is what a generator proposes to append to the raw text
type Candidate struct {
	Continuation string
	Explanation  string
}

// Context is the parser state handed to a generator
type Context struct {
	Expr  *pipeline.Expression
	Stage *pipeline.Stage
	// Prefix is the partially typed stage name, option name or value
	Prefix string
	// Option is the option whose value is being completed
	Option string
	// Quote is the opening quote of an unterminated value
	Quote string
	// Lead is inserted before a stage name that directly follows a pipe
	Lead string
}

// Generator proposes continuations for one grammatical position
type Generator interface {
	Generate(ctx Context, snap *registry.Snapshot, level int) []Candidate
}

// sortCandidates orders by continuation, then explanation
func sortCandidates(c []Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].Continuation != c[j].Continuation {
			return c[i].Continuation < c[j].Continuation
		}
		return c[i].Explanation < c[j].Explanation
	})
}
