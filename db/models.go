package db

import "time"

// Conversion statuses.
const (
	StatusProcessing = "processing"
	StatusComplete   = "complete"
	StatusError      = "error"
)

// Conversion represents a row in the conversions table.
type Conversion struct {
	ID             string
	InputPath      string
	TrimmedPath    string
	OutputPath     string
	StartOffset    float64
	EndOffset      float64
	SourceDuration float64
	FPS            int
	Loop           bool
	Status         string
	Filesize       int64
	StartedAt      time.Time
	FinishedAt     *time.Time
	ErrorAt        *time.Time
	Log            string
}

// NewConversion describes a run at the moment it starts.
type NewConversion struct {
	InputPath   string
	StartOffset float64
	EndOffset   float64
	FPS         int
	Loop        bool
}

// ConversionResult is recorded when a run completes.
type ConversionResult struct {
	OutputPath     string
	TrimmedPath    string
	SourceDuration float64
	Filesize       int64
}
