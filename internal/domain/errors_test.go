package domain

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAcquisitionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"fetch", &FetchError{URL: "http://x", Err: io.EOF}, true},
		{"parse", &ParseError{Line: 3, Err: errors.New("bad")}, true},
		{"validation", &ValidationError{Reason: "shape"}, true},
		{"wrapped fetch", fmt.Errorf("acquire: %w", &FetchError{URL: "http://x", Err: io.EOF}), true},
		{"render", &RenderError{Path: "a.jpg", Err: io.ErrShortWrite}, false},
		{"sweep", &SweepError{Path: "a.jpg", Err: io.ErrClosedPipe}, false},
		{"plain", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAcquisitionError(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "fetch http://x: status 503: unexpected status",
		(&FetchError{URL: "http://x", StatusCode: 503, Err: errors.New("unexpected status")}).Error())
	assert.Equal(t, "fetch http://x: EOF", (&FetchError{URL: "http://x", Err: io.EOF}).Error())
	assert.Equal(t, "parse forecast: line 4: bad", (&ParseError{Line: 4, Err: errors.New("bad")}).Error())
	assert.Equal(t, "parse forecast: bad", (&ParseError{Err: errors.New("bad")}).Error())
	assert.Equal(t, "invalid forecast: shape", (&ValidationError{Reason: "shape"}).Error())
	assert.ErrorIs(t, &RenderError{Path: "a", Err: io.ErrShortWrite}, io.ErrShortWrite)
	assert.ErrorIs(t, &SweepError{Path: "a", Err: io.ErrClosedPipe}, io.ErrClosedPipe)
}
