package db

import (
	"database/sql"
	"time"
)

// History records conversion runs. It satisfies the recorder the
// conversion pipeline writes to.
type History struct {
	DB  *sql.DB
	Now func() time.Time
}

// NewHistory wraps an open database.
func NewHistory(db *sql.DB) *History {
	return &History{DB: db, Now: time.Now}
}

// OpenHistory opens the database at path and wraps it.
func OpenHistory(path string) (*History, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewHistory(db), nil
}

func (h *History) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// Start records a new processing row.
func (h *History) Start(c NewConversion) (string, error) {
	return InsertConversion(h.DB, c, h.now())
}

// Complete marks id as complete.
func (h *History) Complete(id string, result ConversionResult) error {
	return MarkConversionComplete(h.DB, id, h.now(), result)
}

// Fail marks id as failed with cause's message.
func (h *History) Fail(id string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return MarkConversionError(h.DB, id, h.now(), msg)
}

// Recent returns up to limit conversions, newest first.
func (h *History) Recent(limit int) ([]Conversion, error) {
	return SelectConversions(h.DB, limit)
}

// Get returns the conversion with id, or sql.ErrNoRows.
func (h *History) Get(id string) (*Conversion, error) {
	return SelectConversionByID(h.DB, id)
}

// Close closes the underlying database.
func (h *History) Close() error {
	if h == nil || h.DB == nil {
		return nil
	}
	return h.DB.Close()
}
