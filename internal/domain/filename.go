package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FilenameStamp formats t with the legacy "%Y-%M-%d-%H-%M" layout. %M is the
// minute in both positions, so the month is absent: 2021-03-15 04:30 becomes
// "2021-30-15-04-30". Existing consumers match on this form.
func FilenameStamp(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d-%02d-%02d", t.Year(), t.Minute(), t.Day(), t.Hour(), t.Minute())
}

// OutputPath returns "<dir>/<prefix>_<stamp>.<ext>" for a forecast valid at t.
func OutputPath(dir, prefix string, t time.Time, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", prefix, FilenameStamp(t), ext))
}
