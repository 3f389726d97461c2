// Package ffmpeg builds ffmpeg invocations and runs them while tracking the
// encoder's own progress reports.
//
// Key types:
//   - Job: one ffmpeg invocation with the progress scale it reports against
//   - Runner: launches a Job, drains its merged output and drives an Indicator
//   - Parser: recognises elapsed-time markers in the -progress stream
//
// Progress follows the elapsed output time ffmpeg writes with -progress
// pipe:1 rather than wall-clock time.
package ffmpeg
