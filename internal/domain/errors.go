package domain

import (
	"errors"
	"fmt"
)

// FetchError reports a transport failure while retrieving the forecast.
// StatusCode is zero when no HTTP response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a payload that could not be read as a forecast.
// Line is 1-based; zero means the error is not tied to a line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse forecast: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse forecast: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a well-formed payload that failed a sanity check.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid forecast: " + e.Reason
}

// RenderError reports a failure to encode or write an output image.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// SweepError reports a single file or directory the retention sweep could not handle.
type SweepError struct {
	Path string
	Err  error
}

func (e *SweepError) Error() string {
	return fmt.Sprintf("sweep %s: %v", e.Path, e.Err)
}

func (e *SweepError) Unwrap() error { return e.Err }

// IsAcquisitionError reports whether err came from fetching, parsing or
// validating the forecast. These share one handling path: log and abort.
func IsAcquisitionError(err error) bool {
	var (
		fe *FetchError
		pe *ParseError
		ve *ValidationError
	)
	return errors.As(err, &fe) || errors.As(err, &pe) || errors.As(err, &ve)
}
