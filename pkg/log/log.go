// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/pathrewrite/pkg/status"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 15 // Width for status text
)

// 🎯 Logger writes rewrite progress to a console and to zerolog
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	formatter status.FileFormatter
	mu        sync.Mutex
	dir       string
	total     int
	processed int
}

var _ status.Reporter = (*Logger)(nil)

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFileFormatter(),
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileResult formats a file result for display
func (l *Logger) formatFileResult(res status.FileResult) string {
	var symbol rune
	var symbolColor color.Attribute
	var detail string
	switch res.Status {
	case status.StatusRewritten:
		symbol = '⟳'
		symbolColor = color.FgBlue
		detail = plural(res.Replacements, "replacement")
	case status.StatusStale:
		symbol = '!'
		symbolColor = color.FgYellow
		detail = plural(res.Replacements, "replacement")
	case status.StatusFailed:
		symbol = '✗'
		symbolColor = color.FgRed
		if res.Err != nil {
			detail = res.Err.Error()
		}
	case status.StatusSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
		detail = res.Reason
	case status.StatusPending:
		symbol = '…'
		symbolColor = color.Faint
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, res.Name),
		fmt.Sprintf("%-*s", statusWidth, res.Status.String()))
	if detail != "" {
		line += " " + color.New(color.Faint).Sprint(detail)
	}
	return line
}

// 📝 StartOperation prints the header of a run over dir
func (l *Logger) StartOperation(ctx context.Context, dir string, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.dir = dir
	l.total = total
	l.processed = 0

	fmt.Fprintf(l.console, "[rewriting %s]\n", color.New(color.FgCyan).Sprint(dir))

	l.zlog.Info().
		Str("dir", dir).
		Int("total", total).
		Msg(l.formatter.FormatProgress(0, total))
}

// 📝 TrackFile prints the outcome of one entry
func (l *Logger) TrackFile(ctx context.Context, res status.FileResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.processed++
	fmt.Fprintln(l.console, l.formatFileResult(res))

	var ev *zerolog.Event
	if res.Err != nil {
		ev = l.zlog.Error().Err(res.Err)
	} else {
		ev = l.zlog.Info()
	}
	ev.Str("dir", l.dir).
		Str("file", res.Name).
		Str("status", res.Status.String()).
		Int("replacements", res.Replacements).
		Int("processed", l.processed).
		Int("total", l.total).
		Msg(l.formatter.FormatFile(res))
}

// 📝 FinishOperation prints the summary of a run
func (l *Logger) FinishOperation(ctx context.Context, report *status.Report) {
	l.mu.Lock()
	defer l.mu.Unlock()

	summary := l.formatter.FormatSummary(report)
	if report != nil && report.Count(status.StatusFailed) > 0 {
		fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(summary))
		l.zlog.Error().Msg(summary)
	} else {
		fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(summary))
		l.zlog.Info().Msg(summary)
	}

	l.dir = ""
	l.total = 0
	l.processed = 0
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("pathrewrite")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
