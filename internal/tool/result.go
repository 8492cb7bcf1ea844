package tool

import (
	"fmt"
	"strings"
)

// Result is the outcome of a tool invocation. Subprocess and filesystem
// failures are carried here as text rather than returned as Go errors.
type Result struct {
	text   string
	failed bool
}

// Ok returns a successful result carrying text verbatim.
func Ok(text string) Result {
	return Result{text: text}
}

// Err returns a failed result carrying a diagnostic.
func Err(text string) Result {
	return Result{text: text, failed: true}
}

// IsErr reports whether the result is a failure.
func (r Result) IsErr() bool { return r.failed }

// Text returns the raw payload.
func (r Result) Text() string { return r.text }

// LLMContent renders the result for the model. Failures are prefixed so the
// model reads them as plain-text errors, unless the diagnostic already leads
// with "Error".
func (r Result) LLMContent() string {
	if !r.failed {
		return r.text
	}
	if strings.HasPrefix(r.text, "Error") {
		return r.text
	}
	return "Error: " + r.text
}

// Display summarizes the result for the terminal.
func (r Result) Display() ToolDisplay {
	if r.failed {
		return ErrorDisplay(firstLine(r.text))
	}
	return StringDisplay(summarize(r.text))
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func summarize(s string) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return "(no output)"
	}
	lines := strings.Count(s, "\n") + 1
	if lines == 1 {
		return firstLine(s)
	}
	return fmt.Sprintf("%s (+%d more lines)", firstLine(s), lines-1)
}
