package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// maxErrorLog bounds the error text kept per row.
	maxErrorLog = 4096
	// timeLayout is fixed width so stored timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// InsertConversion inserts a processing row and returns its generated ID.
func InsertConversion(db *sql.DB, c NewConversion, startedAt time.Time) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(InsertConversionSQL, id, c.InputPath, c.StartOffset, c.EndOffset, c.FPS, boolToInt(c.Loop), formatTime(startedAt))
	if err != nil {
		return "", fmt.Errorf("insert conversion: %w", err)
	}
	return id, nil
}

// MarkConversionComplete updates a conversions row to complete status with the finish time and output details.
func MarkConversionComplete(db *sql.DB, id string, finishedAt time.Time, result ConversionResult) error {
	res, err := db.Exec(MarkConversionCompleteSQL, formatTime(finishedAt), result.OutputPath, result.TrimmedPath, result.SourceDuration, result.Filesize, id)
	if err != nil {
		return fmt.Errorf("mark conversion complete: %w", err)
	}
	return requireRow(res, id)
}

// MarkConversionError updates a conversions row to error status with the error time and message.
func MarkConversionError(db *sql.DB, id string, errorAt time.Time, logMsg string) error {
	if len(logMsg) > maxErrorLog {
		logMsg = logMsg[:maxErrorLog]
	}
	res, err := db.Exec(MarkConversionErrorSQL, formatTime(errorAt), logMsg, id)
	if err != nil {
		return fmt.Errorf("mark conversion error: %w", err)
	}
	return requireRow(res, id)
}

// SelectConversions returns the most recent conversions, newest first.
// A limit <= 0 returns all rows.
func SelectConversions(db *sql.DB, limit int) ([]Conversion, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(SelectConversionsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select conversions: %w", err)
	}
	defer rows.Close()

	var conversions []Conversion
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		conversions = append(conversions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}
	return conversions, nil
}

// SelectConversionByID returns a single conversions row. sql.ErrNoRows is
// returned when the ID is unknown.
func SelectConversionByID(db *sql.DB, id string) (*Conversion, error) {
	c, err := scanConversion(db.QueryRow(SelectConversionByIDSQL, id))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversion(row scanner) (Conversion, error) {
	var (
		c          Conversion
		loop       int
		startedAt  string
		finishedAt sql.NullString
		errorAt    sql.NullString
	)
	err := row.Scan(&c.ID, &c.InputPath, &c.TrimmedPath, &c.OutputPath, &c.StartOffset, &c.EndOffset, &c.SourceDuration,
		&c.FPS, &loop, &c.Status, &c.Filesize, &startedAt, &finishedAt, &errorAt, &c.Log)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Conversion{}, err
		}
		return Conversion{}, fmt.Errorf("scan conversion: %w", err)
	}
	c.Loop = loop != 0
	if c.StartedAt, err = parseTime(startedAt); err != nil {
		return Conversion{}, fmt.Errorf("conversion %s started_at: %w", c.ID, err)
	}
	if c.FinishedAt, err = parseNullTime(finishedAt); err != nil {
		return Conversion{}, fmt.Errorf("conversion %s finished_at: %w", c.ID, err)
	}
	if c.ErrorAt, err = parseNullTime(errorAt); err != nil {
		return Conversion{}, fmt.Errorf("conversion %s error_at: %w", c.ID, err)
	}
	return c, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("conversion %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(timeLayout, value)
}

func parseNullTime(value sql.NullString) (*time.Time, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	t, err := parseTime(value.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
