package domain

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilenameStamp(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"minute replaces month", time.Date(2021, time.March, 15, 4, 30, 0, 0, time.UTC), "2021-30-15-04-30"},
		{"zero padded", time.Date(2017, time.April, 2, 9, 5, 0, 0, time.UTC), "2017-05-02-09-05"},
		{"top of the hour", time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC), "2024-00-31-23-00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilenameStamp(tt.at))
		})
	}
}

func TestOutputPath(t *testing.T) {
	at := time.Date(2021, time.March, 15, 4, 30, 0, 0, time.UTC)

	assert.Equal(t, filepath.Join("30min", "ovona_2021-30-15-04-30.jpg"), OutputPath("30min", "ovona", at, "jpg"))
	assert.Equal(t, filepath.Join("out", "ovona_2021-30-15-04-30.png"), OutputPath("out", "ovona", at, ".png"))
}
