package retention

import (
	"io/fs"
	"syscall"
	"time"
)

func statusChangeTime(fi fs.FileInfo) time.Time {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec)) //nolint:unconvert // 32-bit platforms
	}
	return fi.ModTime()
}
