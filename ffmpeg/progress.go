package ffmpeg

import (
	"strconv"
	"strings"
)

// DefaultProgressKey is the -progress field carrying elapsed output time in microseconds.
const DefaultProgressKey = "out_time_us"

// Parser extracts an elapsed time in seconds from one line of subprocess
// output. ok is false for lines that are not elapsed-time markers and for
// markers whose value is a placeholder such as "N/A".
type Parser interface {
	Parse(line string) (elapsed float64, ok bool)
}

// KeyParser matches "key=value" lines with an integer value expressed in
// units of 1/UnitsPerSecond seconds.
type KeyParser struct {
	Key            string
	UnitsPerSecond float64
}

// DefaultParser reads ffmpeg's out_time_us marker.
func DefaultParser() KeyParser {
	return KeyParser{Key: DefaultProgressKey, UnitsPerSecond: 1_000_000}
}

func (p KeyParser) Parse(line string) (float64, bool) {
	key, value, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found || strings.TrimSpace(key) != p.Key {
		return 0, false
	}
	units, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, false
	}
	scale := p.UnitsPerSecond
	if scale <= 0 {
		scale = 1
	}
	return float64(units) / scale, true
}

// isKeyValue reports whether line looks like a -progress field rather than a
// diagnostic message.
func isKeyValue(line string) bool {
	key, _, found := strings.Cut(line, "=")
	return found && key != "" && !strings.ContainsAny(key, " \t[]:")
}

// Progress is the per-job progress state. Current never decreases.
type Progress struct {
	Current float64
	Total   float64
}

// Observe records an elapsed-time marker and returns how far progress moved.
// Values at or below Current leave the state unchanged and return 0.
func (p *Progress) Observe(elapsed float64) float64 {
	if !(elapsed > p.Current) {
		return 0
	}
	delta := elapsed - p.Current
	p.Current = elapsed
	return delta
}

// Fraction returns Current/Total clamped to [0, 1]; 0 when Total is unknown.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := p.Current / p.Total
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// Indicator displays the progress of one job. Finish is called exactly once,
// on success and failure alike.
type Indicator interface {
	Advance(delta float64)
	Finish(ok bool)
}

// IndicatorFactory creates the indicator for a job, scaled to job.Total.
type IndicatorFactory func(job Job) Indicator

type nopIndicator struct{}

func (nopIndicator) Advance(float64) {}
func (nopIndicator) Finish(bool)     {}

// tail keeps the last n diagnostic lines of a job's output.
type tail struct {
	limit int
	lines []string
}

func newTail(limit int) *tail {
	return &tail{limit: limit}
}

func (t *tail) add(line string) {
	if t.limit <= 0 {
		return
	}
	if len(t.lines) == t.limit {
		copy(t.lines, t.lines[1:])
		t.lines = t.lines[:t.limit-1]
	}
	t.lines = append(t.lines, line)
}

func (t *tail) snapshot() []string {
	return append([]string(nil), t.lines...)
}
