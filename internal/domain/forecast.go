package domain

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Grid geometry of the OVATION nowcast product.
const (
	GridRows = 512
	GridCols = 1024

	LonMin = 0.0
	LonMax = 360.0
	LatMin = -90.0
	LatMax = 90.0

	LonStep = 0.32846715 // degrees per column
	LatStep = 0.3515625  // degrees per row
)

// ForecastGrid is a dense row-major matrix of aurora intensities.
// Row 0 is the southernmost latitude band.
type ForecastGrid struct {
	m *mat.Dense
}

// NewForecastGrid wraps row-major data of the given shape. It panics if
// len(data) != rows*cols, matching mat.NewDense.
func NewForecastGrid(rows, cols int, data []float64) *ForecastGrid {
	return &ForecastGrid{m: mat.NewDense(rows, cols, data)}
}

// Dims returns the number of rows and columns.
func (g *ForecastGrid) Dims() (rows, cols int) {
	return g.m.Dims()
}

// At returns the value at row r, column c.
func (g *ForecastGrid) At(r, c int) float64 {
	return g.m.At(r, c)
}

// Range returns the minimum and maximum values in the grid.
func (g *ForecastGrid) Range() (lo, hi float64) {
	return mat.Min(g.m), mat.Max(g.m)
}

// Clone returns a deep copy of the grid.
func (g *ForecastGrid) Clone() *ForecastGrid {
	return &ForecastGrid{m: mat.DenseCopyOf(g.m)}
}

// WithTransparentAnchor returns a copy of the grid with the (0,0) cell forced
// to zero. Downstream map viewers key transparency off that pixel, so every
// rendered image must carry it. The receiver is left untouched.
func (g *ForecastGrid) WithTransparentAnchor() *ForecastGrid {
	out := g.Clone()
	out.m.Set(0, 0, 0)
	return out
}

// LatLonAt returns the geographic coordinate of the lower-left corner of a cell.
func LatLonAt(row, col int) (lat, lon float64) {
	return LatMin + float64(row)*LatStep, LonMin + float64(col)*LonStep
}

// Forecast is a validated grid together with its validity time.
type Forecast struct {
	Grid    *ForecastGrid
	ValidAt time.Time
}

func (f Forecast) String() string {
	r, c := f.Grid.Dims()
	return fmt.Sprintf("forecast %dx%d valid at %s", r, c, f.ValidAt.Format("2006-01-02 15:04"))
}

// ImageRendered is the notification emitted after an image is written.
type ImageRendered struct {
	RunID      string    `json:"run_id"`
	Path       string    `json:"path"`
	Filename   string    `json:"filename"`
	Format     string    `json:"format"`
	ValidAt    time.Time `json:"valid_at"`
	RenderedAt time.Time `json:"rendered_at"`
}
