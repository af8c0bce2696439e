// Package mockdata builds synthetic OVATION nowcast payloads for tests and
// local runs.
package mockdata

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/aurora-forecast-etl/internal/domain"
)

// Fill returns the value for a cell.
type Fill func(row, col int) float64

// Payload describes a synthetic forecast file.
type Payload struct {
	// ValidAtLine is written verbatim as the validity header. When empty, a
	// standard line is derived from ValidAt.
	ValidAtLine string
	ValidAt     time.Time
	GeneratedAt time.Time
	Rows, Cols  int
	Fill        Fill
}

// Standard returns a full-size payload valid at t with an auroral-oval pattern.
func Standard(t time.Time) Payload {
	return Payload{
		ValidAt:     t,
		GeneratedAt: t.Add(-30 * time.Minute),
		Rows:        domain.GridRows,
		Cols:        domain.GridCols,
		Fill:        Oval,
	}
}

// String renders the payload in the SWPC text layout.
func (p Payload) String() string {
	var b strings.Builder
	b.Grow(p.Rows * p.Cols * 3)

	b.WriteString("# Product: Ovation Aurora Short Term Forecast\n")
	if p.ValidAtLine != "" {
		b.WriteString(p.ValidAtLine)
	} else {
		b.WriteString("# Product Valid At: " + p.ValidAt.Format("2006-01-02 15:04"))
	}
	b.WriteByte('\n')
	if !p.GeneratedAt.IsZero() {
		b.WriteString("# Product Generated At: " + p.GeneratedAt.Format("2006-01-02 15:04") + "\n")
	}
	b.WriteString("#\n")
	b.WriteString("# Prepared by the U.S. Dept. of Commerce, NOAA, Space Weather Prediction Center.\n")
	b.WriteString("# Please send comments and suggestions to SWPC.Webmaster@noaa.gov\n")
	b.WriteString("#\n")

	fill := p.Fill
	if fill == nil {
		fill = func(int, int) float64 { return 0 }
	}
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(fill(r, c), 'f', -1, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Oval approximates the northern and southern auroral ovals: a Gaussian band
// centred near 67 degrees of latitude, brighter on the night side.
func Oval(row, col int) float64 {
	lat, lon := domain.LatLonAt(row, col)
	band := math.Exp(-math.Pow((math.Abs(lat)-67)/4, 2))
	night := 0.6 + 0.4*math.Cos((lon-180)*math.Pi/180)
	return math.Round(100 * band * night)
}

// Constant fills every cell with v.
func Constant(v float64) Fill {
	return func(int, int) float64 { return v }
}
