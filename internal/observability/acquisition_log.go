package observability

import (
	"fmt"
	"io"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const acquisitionStampLayout = "2006-01-02 15:04:05.000000"

// AcquisitionLog is the append-only plain-text file that records failed
// forecast downloads, one line per failure.
type AcquisitionLog struct {
	mu sync.Mutex
	w  io.WriteCloser
}

// OpenAcquisitionLog appends to path, creating it and its directory on first write.
// Past 100 MB the file is rolled over to a timestamped sibling; rolled files
// are never pruned, so no failure line is ever lost.
func OpenAcquisitionLog(path string) *AcquisitionLog {
	return &AcquisitionLog{w: &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // megabytes
		MaxBackups: 0,
		MaxAge:     0,
		LocalTime:  true,
	}}
}

// Record appends "Connection error on <local time>.\n".
func (l *AcquisitionLog) Record(at time.Time) error {
	line := fmt.Sprintf("Connection error on %s.\n", at.Local().Format(acquisitionStampLayout))

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := io.WriteString(l.w, line); err != nil {
		return fmt.Errorf("write acquisition log: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (l *AcquisitionLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Close()
}
