package status

import (
	"fmt"
)

// FileFormatter defines how run events are rendered as messages
type FileFormatter interface {
	// FormatFile formats the outcome of a single entry
	FormatFile(result FileResult) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatSummary formats the closing line of a run
	FormatSummary(report *Report) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFile formats a file outcome with emojis
func (f *DefaultFileFormatter) FormatFile(result FileResult) string {
	switch result.Status {
	case StatusRewritten:
		return fmt.Sprintf("📝 Rewrote %s (%s)", result.Name, plural(result.Replacements, "replacement"))
	case StatusStale:
		return fmt.Sprintf("⏳ Would rewrite %s (%s)", result.Name, plural(result.Replacements, "replacement"))
	case StatusSkipped:
		if result.Reason != "" {
			return fmt.Sprintf("⏭️  Skipped %s (%s)", result.Name, result.Reason)
		}
		return fmt.Sprintf("⏭️  Skipped %s", result.Name)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s: %v", result.Name, result.Err)
	case StatusPending:
		return fmt.Sprintf("… Pending %s", result.Name)
	default:
		return fmt.Sprintf("👍 Unchanged %s", result.Name)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatSummary formats the result counts of a run
func (f *DefaultFileFormatter) FormatSummary(report *Report) string {
	if report == nil {
		return ""
	}
	verb := "rewritten"
	changed := report.Count(StatusRewritten)
	if report.DryRun {
		verb = "stale"
		changed = report.Count(StatusStale)
	}
	return fmt.Sprintf("%s: %d %s, %d unchanged, %d skipped, %d failed",
		report.Dir,
		changed,
		verb,
		report.Count(StatusUnchanged),
		report.Count(StatusSkipped),
		report.Count(StatusFailed),
	)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
