package ffmpeg

import (
	"context"
	"fmt"
	"strconv"

	"github.com/user/vid2gif-cli/pkg/cliputil"
	"github.com/user/vid2gif-cli/pkg/timeutil"
	"github.com/user/vid2gif-cli/probe"
	"github.com/user/vid2gif-cli/trim"
)

// DefaultFrameRate is the GIF frame rate used when none is configured.
const DefaultFrameRate = 24

// Job is a single ffmpeg invocation. Total is the number of seconds of output
// the job is expected to report, used to scale its progress indicator.
type Job struct {
	Args        []string
	Total       float64
	Description string
	Output      string
}

// TrimOptions controls the copy-mode trim pass.
type TrimOptions struct {
	// Suffix is appended to the input base name; defaults to "_trimmed".
	Suffix string
}

// EncodeOptions controls the GIF encode pass.
type EncodeOptions struct {
	FrameRate float64
	// Loop repeats the animation forever; otherwise it plays once.
	Loop bool
	// ScaleWidth resizes to the given width keeping aspect ratio; 0 keeps the source size.
	ScaleWidth int
	// Extension of the output; defaults to ".gif".
	Extension string
}

// commonArgs asks for key=value progress on stdout and silences the normal log.
func commonArgs() []string {
	return []string{"-hide_banner", "-nostats", "-loglevel", "error", "-progress", "pipe:1", "-y"}
}

// TrimJob builds a copy-mode trim of input to the window [w.Start, w.End).
// Streams are copied without re-encoding.
func TrimJob(input string, w trim.Window, opts TrimOptions) Job {
	output := cliputil.TrimmedPath(input, opts.Suffix)
	args := commonArgs()
	args = append(args,
		"-ss", timeutil.FormatSeconds(w.Start),
		"-to", timeutil.FormatSeconds(w.End),
		"-i", input,
		"-c", "copy",
		output,
	)
	return Job{
		Args:        args,
		Total:       w.Length(),
		Description: "trim",
		Output:      output,
	}
}

// EncodeJob builds the GIF encode of input. duration is the full length of
// input in seconds.
func EncodeJob(input string, duration float64, opts EncodeOptions) Job {
	output := cliputil.EncodedPath(input, opts.Extension)
	loop := "-1"
	if opts.Loop {
		loop = "0"
	}
	args := commonArgs()
	args = append(args,
		"-i", input,
		"-vf", filterChain(opts),
		"-loop", loop,
		output,
	)
	return Job{
		Args:        args,
		Total:       duration,
		Description: "gif encode",
		Output:      output,
	}
}

func filterChain(opts EncodeOptions) string {
	rate := opts.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	chain := "fps=" + strconv.FormatFloat(rate, 'f', -1, 64)
	if opts.ScaleWidth > 0 {
		chain += fmt.Sprintf(",scale=%d:-1:flags=lanczos", opts.ScaleWidth)
	}
	return chain
}

// DurationProber reports the duration of a media file.
type DurationProber interface {
	Probe(ctx context.Context, path string) (probe.Duration, error)
}

// Builder constructs jobs that need a fresh duration probe.
type Builder struct {
	Prober DurationProber
}

// Encode probes input, which may be a freshly trimmed file, and builds its
// encode job scaled to that duration.
func (b *Builder) Encode(ctx context.Context, input string, opts EncodeOptions) (Job, error) {
	duration, err := b.Prober.Probe(ctx, input)
	if err != nil {
		return Job{}, err
	}
	return EncodeJob(input, duration.Seconds(), opts), nil
}
