package log

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Reporter prints the human readable per-message progress of a generator run.
type Reporter interface {
	// Message reports the outcome for one message; index is zero based.
	Message(index, total int, name string, id string, err error)
	// Summary reports how many messages were produced out of those attempted.
	Summary(produced, attempted int)
}

// reporter implements Reporter with thread-safe output.
type reporter struct {
	w     io.Writer
	width int
	mu    sync.Mutex
}

const defaultReportWidth = 84

// NewReporter creates a Reporter writing to w. If w is nil, returns a no-op reporter.
// When w is a terminal the label column is sized to its width.
func NewReporter(w io.Writer) Reporter {
	return &reporter{w: w, width: columnWidth(w)}
}

func columnWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultReportWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 40 {
		return defaultReportWidth
	}
	// leave room for the status and progress columns
	return min(cols-40, 120)
}

// Message emits a line like
//
//	Creating record for HEARTBEAT (id=0)...        Success!            [1/5 ( 20%)]
func (r *reporter) Message(index, total int, name string, id string, err error) {
	if r.w == nil {
		return
	}

	label := fmt.Sprintf(" Creating record for %s (id=%s)... ", name, id)
	status := "Success!"
	if err != nil {
		status = "Failed!"
	}

	digits := len(strconv.Itoa(total))
	percent := 100
	if total > 0 {
		percent = (index + 1) * 100 / total
	}
	line := fmt.Sprintf("%s%s[%*d/%d (%3d%%)]\n", pad(label, r.width), pad(status, 20), digits, index+1, total, percent)
	if err != nil {
		line += "   " + err.Error() + "\n"
	}

	r.mu.Lock()
	_, _ = io.WriteString(r.w, line)
	r.mu.Unlock()
}

func (r *reporter) Summary(produced, attempted int) {
	if r.w == nil {
		return
	}
	line := fmt.Sprintf("Finished [%d/%d messages produced]\n", produced, attempted)

	r.mu.Lock()
	_, _ = io.WriteString(r.w, line)
	r.mu.Unlock()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
