package domain

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	validAtMarker = "# Product Valid At:"
	validAtLayout = "2006-01-02 15:04"

	// maxLineBytes bounds a single body row; 1024 values rarely exceed 8 KiB.
	maxLineBytes = 1 << 20
)

// ParseForecast extracts the validity time and the intensity grid from a raw
// OVATION text payload, then checks both against the expected product shape.
//
// When several "# Product Valid At:" lines are present the last one wins.
// Comment text after a "#" anywhere in a line is ignored, as are blank lines.
func ParseForecast(raw string) (Forecast, error) {
	var (
		validAt  time.Time
		hasValid bool
		data     []float64
		rows     int
		cols     = -1
	)

	sc := bufio.NewScanner(strings.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")

		if strings.HasPrefix(line, validAtMarker) {
			ts, err := parseValidAt(line)
			if err != nil {
				return Forecast{}, &ParseError{Line: lineNo, Err: err}
			}
			validAt, hasValid = ts, true
			continue
		}

		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if cols < 0 {
			cols = len(fields)
			data = make([]float64, 0, GridRows*cols)
		} else if len(fields) != cols {
			return Forecast{}, &ParseError{
				Line: lineNo,
				Err:  fmt.Errorf("expected %d fields, saw %d", cols, len(fields)),
			}
		}

		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return Forecast{}, &ParseError{Line: lineNo, Err: fmt.Errorf("non-numeric value %q", f)}
			}
			data = append(data, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return Forecast{}, &ParseError{Err: err}
	}

	if cols < 0 {
		cols = 0
	}
	if rows != GridRows || cols != GridCols {
		return Forecast{}, &ValidationError{
			Reason: fmt.Sprintf("grid shape is (%d, %d), want (%d, %d)", rows, cols, GridRows, GridCols),
		}
	}
	if !hasValid {
		return Forecast{}, &ValidationError{Reason: "missing \"Product Valid At\" header"}
	}
	if year := validAt.Format("2006"); !strings.HasPrefix(year, "20") {
		return Forecast{}, &ValidationError{Reason: fmt.Sprintf("implausible forecast year %s", year)}
	}

	return Forecast{
		Grid:    NewForecastGrid(rows, cols, data),
		ValidAt: validAt,
	}, nil
}

// parseValidAt reads the fixed-width date/time at the end of a header line.
func parseValidAt(line string) (time.Time, error) {
	stamp := line
	if len(line) > len(validAtLayout) {
		stamp = line[len(line)-len(validAtLayout):]
	}
	ts, err := time.Parse(validAtLayout, stamp)
	if err != nil {
		return time.Time{}, errors.New("malformed valid-at timestamp " + strconv.Quote(stamp))
	}
	return ts, nil
}
