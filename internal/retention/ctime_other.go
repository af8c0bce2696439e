//go:build !linux && !darwin

package retention

import (
	"io/fs"
	"time"
)

// statusChangeTime falls back to the modification time where the platform
// does not expose a change time.
func statusChangeTime(fi fs.FileInfo) time.Time {
	return fi.ModTime()
}
