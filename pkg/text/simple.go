package text

import (
	"bytes"
	"context"

	"gitlab.com/tozd/go/errors"
)

// SimpleReplacer implements Replacer with plain literal matching. Search tokens
// are never interpreted as patterns.
type SimpleReplacer struct{}

// NewSimpleReplacer creates a new SimpleReplacer
func NewSimpleReplacer() *SimpleReplacer {
	return &SimpleReplacer{}
}

// Replace implements Replacer.Replace
func (r *SimpleReplacer) Replace(ctx context.Context, content []byte, rules []Rule) (*Result, error) {
	if err := r.Validate(rules); err != nil {
		return nil, err
	}

	result := &Result{
		Original: content,
		Counts:   make([]int, len(rules)),
	}

	current := content
	for i, rule := range rules {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("applying rule %d: %w", i, err)
		}

		n := bytes.Count(current, []byte(rule.Search))
		if n == 0 {
			continue
		}

		result.Counts[i] = n
		current = bytes.ReplaceAll(current, []byte(rule.Search), []byte(rule.Replace))
	}

	result.Rewritten = current
	return result, nil
}

// Validate implements Replacer.Validate
func (r *SimpleReplacer) Validate(rules []Rule) error {
	for i, rule := range rules {
		if rule.Search == "" {
			return errors.Errorf("rule %d: search is required", i)
		}
	}
	return nil
}
