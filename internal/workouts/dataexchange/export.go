package dataexchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/activeweek/internal/workouts"
)

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"

	SchemaVersion = "1.0"

	csvDateLayout = "2006-01-02"
)

type Format string

// Envelope is the self-describing JSON export payload.
type Envelope struct {
	ExportDate    time.Time         `json:"exportDate"`
	Version       string            `json:"version"`
	TotalWorkouts int               `json:"totalWorkouts"`
	Workouts      []workouts.Record `json:"workouts"`
}

var csvHeader = []string{
	"Date",
	"Activity",
	"Duration (minutes)",
	"Secondary Activity",
	"Secondary Duration (minutes)",
	"Exercise Type",
	"PPL Split",
	"Custom Activity Name",
	"Custom Secondary Activity Name",
	"ID",
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatCSV:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// FileName is the suggested download name, e.g. workout-data-2024-03-04.json.
func FileName(format Format, now time.Time) string {
	return fmt.Sprintf("workout-data-%s.%s", now.Format(csvDateLayout), format)
}

func ExportJSON(records []workouts.Record, now time.Time) ([]byte, error) {
	if records == nil {
		records = []workouts.Record{}
	}
	envelope := Envelope{
		ExportDate:    now,
		Version:       SchemaVersion,
		TotalWorkouts: len(records),
		Workouts:      records,
	}
	payload, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export envelope: %w", err)
	}
	return payload, nil
}

// ExportCSV writes one row per record under the fixed header. Every field is
// double-quoted.
func ExportCSV(records []workouts.Record) ([]byte, error) {
	var buf bytes.Buffer
	writeQuotedRow(&buf, csvHeader)
	for _, r := range records {
		writeQuotedRow(&buf, []string{
			r.Date.Format(csvDateLayout),
			string(r.Activity),
			strconv.Itoa(r.Duration),
			string(r.SecondaryActivity),
			optionalInt(r.SecondaryDuration),
			string(r.ExerciseType),
			string(r.PPLSplit),
			r.CustomActivityName,
			r.CustomSecondaryActivityName,
			r.ID,
		})
	}
	return buf.Bytes(), nil
}

func writeQuotedRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}

func optionalInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}
