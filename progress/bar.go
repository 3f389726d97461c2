package progress

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Bar is a single-line terminal progress bar. Seconds are tracked in
// milliseconds so short clips still move smoothly.
type Bar struct {
	bar     *progressbar.ProgressBar
	out     io.Writer
	total   float64
	current float64
}

// NewBar creates a bar for a job of totalSeconds. An unknown total (<= 0)
// renders a spinner instead.
func NewBar(out io.Writer, description string, totalSeconds float64) *Bar {
	limit := int64(math.Round(totalSeconds * 1000))
	if limit <= 0 {
		limit = -1
	}
	bar := progressbar.NewOptions64(limit,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(fmt.Sprintf("%-10s", description)),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "|",
			BarEnd:        "|",
		}),
	)
	return &Bar{bar: bar, out: out, total: totalSeconds}
}

func (b *Bar) Advance(delta float64) {
	b.current += delta
	value := b.current
	if b.total > 0 && value > b.total {
		value = b.total
	}
	_ = b.bar.Set64(int64(math.Round(value * 1000)))
}

// Finish completes the bar on success and freezes it where it stopped on failure.
func (b *Bar) Finish(ok bool) {
	if ok {
		_ = b.bar.Finish()
	} else {
		_ = b.bar.Exit()
	}
	fmt.Fprintln(b.out)
}
