package text

import (
	"context"
)

// Rule defines a single literal substitution
type Rule struct {
	// Search is the literal text to look for
	Search string `json:"search" yaml:"search" hcl:"search"`

	// Replace is the text written in its place
	Replace string `json:"replace" yaml:"replace" hcl:"replace"`
}

// FontPathRule turns absolute app:/// font urls emitted by the css bundler into
// urls relative to the packaged app root.
var FontPathRule = Rule{
	Search:  "app:///fonts",
	Replace: "app://./fonts",
}

// DefaultRules returns the rule set used when nothing is configured
func DefaultRules() []Rule {
	return []Rule{FontPathRule}
}

// Result contains the outcome of applying a rule set to some content
type Result struct {
	// Original is the content before any rule ran
	Original []byte

	// Rewritten is the content after every rule ran, in order
	Rewritten []byte

	// Counts holds the number of matches of each rule, indexed like the rule set
	Counts []int
}

// Replacements returns the total number of substitutions made
func (r *Result) Replacements() int {
	total := 0
	for _, c := range r.Counts {
		total += c
	}
	return total
}

// Changed reports whether the rewritten bytes differ from the original
func (r *Result) Changed() bool {
	return string(r.Original) != string(r.Rewritten)
}

// Replacer defines the interface for text replacement
type Replacer interface {
	// Replace applies the rules, in order, to content
	Replace(ctx context.Context, content []byte, rules []Rule) (*Result, error)

	// Validate checks that every rule can be applied
	Validate(rules []Rule) error
}
