package progress

import (
	"log/slog"
	"sync"

	"github.com/user/vid2gif-cli/logging"
)

// Sampler suppresses repetitive progress output while still emitting each
// time the percentage crosses a bucket boundary.
type Sampler struct {
	bucketSize float64
	lastBucket int
}

// NewSampler constructs a sampler with the given bucket size in percent
// (default 10%).
func NewSampler(bucketSize float64) *Sampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &Sampler{bucketSize: bucketSize, lastBucket: -1}
}

// ShouldEmit reports whether percent entered a new bucket.
func (s *Sampler) ShouldEmit(percent float64) bool {
	if percent < 0 {
		return false
	}
	if percent > 100 {
		percent = 100
	}
	bucket := int(percent / s.bucketSize)
	if bucket <= s.lastBucket {
		return false
	}
	s.lastBucket = bucket
	return true
}

// Log reports progress as structured log records, one per 10% bucket.
type Log struct {
	mu          sync.Mutex
	logger      *slog.Logger
	description string
	total       float64
	current     float64
	sampler     *Sampler
}

// NewLog creates a log indicator for a job of totalSeconds.
func NewLog(logger *slog.Logger, description string, totalSeconds float64) *Log {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Log{
		logger:      logger,
		description: description,
		total:       totalSeconds,
		sampler:     NewSampler(10),
	}
}

func (l *Log) Advance(delta float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current += delta
	if l.total <= 0 {
		return
	}
	percent := l.current / l.total * 100
	if percent >= 100 || !l.sampler.ShouldEmit(percent) {
		return
	}
	l.logger.Info("progress",
		logging.String(logging.FieldJob, l.description),
		logging.Float64("percent", float64(int(percent))),
		logging.Float64("elapsed_seconds", l.current),
	)
}

func (l *Log) Finish(ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ok {
		l.logger.Info("job finished", logging.String(logging.FieldJob, l.description))
		return
	}
	l.logger.Warn("job failed",
		logging.String(logging.FieldJob, l.description),
		logging.Float64("elapsed_seconds", l.current),
		logging.Float64("total_seconds", l.total),
	)
}
