// Package timing measures the steps of a single CLI invocation.
package timing

import (
	"fmt"
	"strings"
	"time"

	"github.com/NikitaCOEUR/pipecomplete/internal/logger"
)

// Span is one measured step
type Span struct {
	Label    string
	Duration time.Duration
}

// Timer records consecutive step durations
type Timer struct {
	now   func() time.Time
	start time.Time
	last  time.Time
	spans []Span
}

// NewTimer creates a timer starting now
func NewTimer() *Timer {
	return newTimerWithClock(time.Now)
}

func newTimerWithClock(now func() time.Time) *Timer {
	t := &Timer{now: now}
	t.start = now()
	t.last = t.start
	return t
}

// Step closes the current step under label and returns its duration
func (t *Timer) Step(label string) time.Duration {
	current := t.now()
	d := current.Sub(t.last)
	t.last = current
	t.spans = append(t.spans, Span{Label: label, Duration: d})
	return d
}

// Elapsed returns total elapsed time since timer creation
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Spans returns the recorded steps in order
func (t *Timer) Spans() []Span {
	out := make([]Span, len(t.spans))
	copy(out, t.spans)
	return out
}

// Summary returns a one-line rendering such as "total=1.204ms parse=0.101ms"
func (t *Timer) Summary() string {
	parts := make([]string, 0, len(t.spans)+1)
	parts = append(parts, "total="+millis(t.Elapsed()))
	for _, s := range t.spans {
		parts = append(parts, s.Label+"="+millis(s.Duration))
	}
	return strings.Join(parts, " ")
}

// Log writes every span as a field of a single debug entry
func (t *Timer) Log(log *logger.Logger, msg string) {
	if !log.IsDebug() {
		return
	}
	entry := log.Debug().Dur("total_ms", t.Elapsed())
	for _, s := range t.spans {
		entry = entry.Dur(s.Label+"_ms", s.Duration)
	}
	entry.Msg(msg)
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
