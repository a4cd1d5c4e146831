package dataexchange

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/activeweek/internal/workouts"
)

var (
	ErrUnknownFormat  = errors.New("payload is neither a workout JSON export nor a workout CSV")
	ErrNoValidRecords = errors.New("no valid workout entries found")
)

// ImportResult is what a payload yielded: the records that passed validation
// and how many were skipped.
type ImportResult struct {
	Format   Format            `json:"format"`
	Records  []workouts.Record `json:"records"`
	Accepted int               `json:"accepted"`
	Skipped  int               `json:"skipped"`
}

// Parse detects the payload format (JSON first, CSV header second) and
// validates every record. Records missing an id, date, known activity or
// positive duration are skipped; splits and custom names on the wrong activity
// are dropped from otherwise valid records.
func Parse(payload []byte) (*ImportResult, error) {
	if elems, ok := jsonRecords(payload); ok {
		candidates := make([]candidate, 0, len(elems))
		for _, elem := range elems {
			var raw rawRecord
			if err := json.Unmarshal(elem, &raw); err != nil {
				log.Debugf("import: skipping undecodable json record: %s", err)
				candidates = append(candidates, candidate{})
				continue
			}
			candidates = append(candidates, candidate{raw: raw, decoded: true})
		}
		return collect(FormatJSON, candidates), nil
	}

	rows, ok := csvRows(payload)
	if !ok {
		return nil, ErrUnknownFormat
	}
	candidates := make([]candidate, 0, len(rows))
	for _, row := range rows {
		raw, ok := rawFromCSV(row)
		candidates = append(candidates, candidate{raw: raw, decoded: ok})
	}
	return collect(FormatCSV, candidates), nil
}

type candidate struct {
	raw     rawRecord
	decoded bool
}

// jsonRecords accepts a bare array of records or the export envelope.
func jsonRecords(payload []byte) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err == nil {
		return elems, true
	}

	var envelope struct {
		Workouts []json.RawMessage `json:"workouts"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err == nil && envelope.Workouts != nil {
		return envelope.Workouts, true
	}
	return nil, false
}

func csvRows(payload []byte) ([][]string, bool) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(payload, []byte("\ufeff"))))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil || !matchesHeader(header) {
		return nil, false
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Debugf("import: malformed csv line: %s", err)
			return nil, false
		}
		rows = append(rows, row)
	}
	return rows, true
}

func matchesHeader(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i := range header {
		if !strings.EqualFold(strings.TrimSpace(header[i]), csvHeader[i]) {
			return false
		}
	}
	return true
}

func collect(format Format, candidates []candidate) *ImportResult {
	result := &ImportResult{
		Format:  format,
		Records: make([]workouts.Record, 0, len(candidates)),
	}
	seen := map[string]bool{}

	for _, c := range candidates {
		if !c.decoded {
			result.Skipped++
			continue
		}
		rec := workouts.Sanitize(c.raw.record())
		if err := workouts.CheckRequired(rec); err != nil {
			log.Debugf("import: skipping record %q: %s", rec.ID, err)
			result.Skipped++
			continue
		}
		if seen[rec.ID] {
			log.Debugf("import: skipping duplicate record id %q", rec.ID)
			result.Skipped++
			continue
		}
		seen[rec.ID] = true
		result.Records = append(result.Records, rec)
	}

	result.Accepted = len(result.Records)
	return result
}

// rawRecord is the lenient wire shape of an imported record: ids and
// durations may come as numbers or strings, names in any case.
type rawRecord struct {
	ID                          flexString `json:"id"`
	Date                        string     `json:"date"`
	Activity                    string     `json:"activity"`
	Duration                    flexInt    `json:"duration"`
	ExerciseType                string     `json:"exerciseType"`
	CustomActivityName          string     `json:"customActivityName"`
	SecondaryActivity           string     `json:"secondaryActivity"`
	SecondaryDuration           flexInt    `json:"secondaryDuration"`
	PPLSplit                    string     `json:"pplSplit"`
	CustomSecondaryActivityName string     `json:"customSecondaryActivityName"`
}

func rawFromCSV(row []string) (rawRecord, bool) {
	if len(row) != len(csvHeader) {
		return rawRecord{}, false
	}
	duration, _ := parseFlexInt(row[2])
	secondaryDuration, _ := parseFlexInt(row[4])
	return rawRecord{
		Date:                        row[0],
		Activity:                    row[1],
		Duration:                    flexInt(duration),
		SecondaryActivity:           row[3],
		SecondaryDuration:           flexInt(secondaryDuration),
		ExerciseType:                row[5],
		PPLSplit:                    row[6],
		CustomActivityName:          row[7],
		CustomSecondaryActivityName: row[8],
		ID:                          flexString(strings.TrimSpace(row[9])),
	}, true
}

func (raw rawRecord) record() workouts.Record {
	return workouts.Record{
		ID:                          string(raw.ID),
		Date:                        parseDate(raw.Date),
		Activity:                    parseActivity(raw.Activity),
		Duration:                    int(raw.Duration),
		ExerciseType:                parseSplit(raw.ExerciseType),
		CustomActivityName:          strings.TrimSpace(raw.CustomActivityName),
		SecondaryActivity:           parseActivity(raw.SecondaryActivity),
		SecondaryDuration:           int(raw.SecondaryDuration),
		PPLSplit:                    parseSplit(raw.PPLSplit),
		CustomSecondaryActivityName: strings.TrimSpace(raw.CustomSecondaryActivityName),
	}
}

// parseActivity keeps unknown names as-is so validation can reject them.
func parseActivity(s string) workouts.Activity {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	a, err := workouts.ParseActivity(s)
	if err != nil {
		return workouts.Activity(s)
	}
	return a
}

func parseSplit(s string) workouts.Split {
	split, err := workouts.ParseSplit(s)
	if err != nil {
		return ""
	}
	return split
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	csvDateLayout,
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(strings.TrimSpace(str))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*s = flexString(num.String())
	return nil
}

type flexInt int

func (i *flexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		str = string(data)
	}
	v, err := parseFlexInt(str)
	if err != nil {
		return err
	}
	*i = flexInt(v)
	return nil
}

func parseFlexInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number %q: %w", s, err)
	}
	return int(math.Round(f)), nil
}
