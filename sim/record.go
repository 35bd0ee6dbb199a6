package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// StepRecord is one row of simulation output: where a biker started, where
// it ideally would have parked, and where it actually ended up.
type StepRecord struct {
	Step           int
	BikerID        string
	StartLon       float64
	StartLat       float64
	StartLocale    string
	IdealLon       float64
	IdealLat       float64
	DestLocale     string
	EndLon         float64
	EndLat         float64
	EndLocale      string
	Distance       float64
	ExcessDistance float64
}

var recordHeader = []string{
	"step_num", "rider_id", "start_lon", "start_lat", "start_locale",
	"ideal_lon", "ideal_lat", "dest_locale", "end_lon", "end_lat",
	"end_locale", "distance", "excess_distance",
}

// RecordWriter streams step records as CSV.
type RecordWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewRecordWriter wraps w in a CSV step-record writer.
func NewRecordWriter(w io.Writer) *RecordWriter {
	return &RecordWriter{w: csv.NewWriter(w)}
}

// Write appends one record, emitting the header row first if needed.
func (rw *RecordWriter) Write(rec StepRecord) error {
	if !rw.wroteHeader {
		if err := rw.w.Write(recordHeader); err != nil {
			return err
		}
		rw.wroteHeader = true
	}
	row := []string{
		strconv.Itoa(rec.Step),
		rec.BikerID,
		formatFloat(rec.StartLon),
		formatFloat(rec.StartLat),
		rec.StartLocale,
		formatFloat(rec.IdealLon),
		formatFloat(rec.IdealLat),
		rec.DestLocale,
		formatFloat(rec.EndLon),
		formatFloat(rec.EndLat),
		rec.EndLocale,
		formatFloat(rec.Distance),
		formatFloat(rec.ExcessDistance),
	}
	return rw.w.Write(row)
}

// Flush flushes buffered rows and reports any deferred write error.
func (rw *RecordWriter) Flush() error {
	rw.w.Flush()
	return rw.w.Error()
}

// ReadRecords parses a CSV step-record stream, validating the header and
// every numeric field before the rows re-enter the core.
func ReadRecords(r io.Reader) ([]StepRecord, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read record header: %w", err)
	}
	if len(header) != len(recordHeader) {
		return nil, fmt.Errorf("record header has %d columns, want %d", len(header), len(recordHeader))
	}
	for i, h := range header {
		if h != recordHeader[i] {
			return nil, fmt.Errorf("record header column %d is %q, want %q", i, h, recordHeader[i])
		}
	}

	var out []StepRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read record line %d: %w", line, err)
		}
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("record line %d: %w", line, err)
		}
		out = append(out, rec)
	}
}

func parseRecord(row []string) (StepRecord, error) {
	var rec StepRecord
	var err error
	if rec.Step, err = strconv.Atoi(row[0]); err != nil {
		return rec, fmt.Errorf("step_num: %w", err)
	}
	rec.BikerID = row[1]
	rec.StartLocale = row[4]
	rec.DestLocale = row[7]
	rec.EndLocale = row[10]

	floats := map[int]*float64{
		2: &rec.StartLon, 3: &rec.StartLat,
		5: &rec.IdealLon, 6: &rec.IdealLat,
		8: &rec.EndLon, 9: &rec.EndLat,
		11: &rec.Distance, 12: &rec.ExcessDistance,
	}
	for i, dst := range floats {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return rec, fmt.Errorf("%s: %w", recordHeader[i], err)
		}
		*dst = v
	}
	return rec, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
