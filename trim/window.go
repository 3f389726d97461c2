// Package trim turns start/end offsets into an absolute time window.
package trim

import (
	"fmt"
	"math"
)

// Window is the absolute [Start, End) range to extract from a source of
// duration Source. A valid window satisfies 0 <= Start < End <= Source.
type Window struct {
	Start  float64
	End    float64
	Source float64
}

// Length returns End - Start.
func (w Window) Length() float64 {
	return w.End - w.Start
}

// InvalidRangeError reports offsets that leave no time to extract.
type InvalidRangeError struct {
	StartOffset float64
	EndOffset   float64
	Duration    float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf(
		"invalid trim times: start offset %gs and end offset %gs leave nothing of a %gs video; check start and end times",
		e.StartOffset, e.EndOffset, e.Duration,
	)
}

// Skip reports whether no trimming was requested. The input file is then
// encoded directly and Plan need not be called.
func Skip(startOffset, endOffset float64) bool {
	return startOffset == 0 && endOffset == 0
}

// Plan computes the window that starts startOffset seconds into the source and
// ends endOffset seconds before its end. Offsets are not bounded individually;
// only the resulting window is validated, so an end offset larger than the
// duration fails the same way as an overlapping start. Bounds are rounded to
// milliseconds, the precision of the trim arguments, before validation.
func Plan(duration, startOffset, endOffset float64) (Window, error) {
	invalid := &InvalidRangeError{StartOffset: startOffset, EndOffset: endOffset, Duration: duration}
	if startOffset < 0 || endOffset < 0 || math.IsNaN(startOffset) || math.IsNaN(endOffset) || math.IsNaN(duration) {
		return Window{}, invalid
	}
	start := roundMillis(startOffset)
	end := roundMillis(duration - endOffset)
	if !(start < end) {
		return Window{}, invalid
	}
	return Window{Start: start, End: end, Source: duration}, nil
}

func roundMillis(seconds float64) float64 {
	return math.Round(seconds*1000) / 1000
}
