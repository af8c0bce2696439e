// Package render rasterizes forecast grids into transparent map overlays.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	stdraw "image/draw"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/couchcryptid/aurora-forecast-etl/internal/domain"
)

// lutSize is the number of discrete colors sampled from the colormap.
const lutSize = 1024

// Options controls the output canvas and file naming.
type Options struct {
	Format string // "jpg", "jpeg" or "png"
	Prefix string
	DPI    int
	Width  vg.Length
	Height vg.Length

	// Pad is added around the image area. A small negative value pushes the
	// outermost pixels off the canvas, which removes the hairline border left
	// by edge interpolation.
	Pad vg.Length
}

// DefaultOptions returns a 50x25 inch canvas at 96 DPI written as JPEG.
func DefaultOptions() Options {
	return Options{
		Format: "jpg",
		Prefix: "ovona",
		DPI:    96,
		Width:  50 * vg.Inch,
		Height: 25 * vg.Inch,
		Pad:    -0.035 * vg.Inch,
	}
}

// Renderer draws forecasts through a colormap. It implements pipeline.Renderer.
type Renderer struct {
	opts   Options
	lut    []color.NRGBA
	logger *slog.Logger
}

// New validates opts and builds a Renderer around cmap.
func New(opts Options, cmap *domain.ColorMap, logger *slog.Logger) (*Renderer, error) {
	opts.Format = strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	switch opts.Format {
	case "jpg", "jpeg", "png":
	default:
		return nil, fmt.Errorf("unsupported image format %q", opts.Format)
	}
	if opts.DPI <= 0 {
		return nil, fmt.Errorf("dpi must be positive, got %d", opts.DPI)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %vx%v", opts.Width, opts.Height)
	}
	if opts.Prefix == "" {
		return nil, errors.New("file prefix is required")
	}
	return &Renderer{
		opts:   opts,
		lut:    cmap.LUT(lutSize),
		logger: logger,
	}, nil
}

// Render writes one image for f into dir and returns its path. The grid's
// (0,0) cell is zeroed on a copy before drawing and the top-left output
// pixel is left fully transparent; f itself is not modified.
func (r *Renderer) Render(f domain.Forecast, dir string) (string, error) {
	start := time.Now()
	grid := f.Grid.WithTransparentAnchor()
	path := domain.OutputPath(dir, r.opts.Prefix, f.ValidAt, r.opts.Format)

	canvas := r.draw(grid)

	var w io.WriterTo
	if r.opts.Format == "png" {
		w = vgimg.PngCanvas{Canvas: canvas}
	} else {
		w = vgimg.JpegCanvas{Canvas: canvas}
	}
	if err := writeFile(path, w); err != nil {
		return "", &domain.RenderError{Path: path, Err: err}
	}

	b := canvas.Image().Bounds()
	r.logger.Info("forecast image written",
		"path", path,
		"valid_at", f.ValidAt,
		"width_px", b.Dx(),
		"height_px", b.Dy(),
		"duration", time.Since(start),
	)
	return path, nil
}

// draw lays the colored grid onto a transparent canvas with no axes.
func (r *Renderer) draw(grid *domain.ForecastGrid) *vgimg.Canvas {
	c := vgimg.NewWith(
		vgimg.UseWH(r.opts.Width, r.opts.Height),
		vgimg.UseDPI(r.opts.DPI),
		vgimg.UseBackgroundColor(color.Transparent),
	)
	dc := draw.Crop(draw.New(c), r.opts.Pad, -r.opts.Pad, r.opts.Pad, -r.opts.Pad)

	dpi := float64(r.opts.DPI)
	pw := max(1, int(math.Round((dc.Max.X - dc.Min.X).Dots(dpi))))
	ph := max(1, int(math.Round((dc.Max.Y - dc.Min.Y).Dots(dpi))))

	rows, cols := grid.Dims()
	p := plot.New()
	p.BackgroundColor = color.Transparent
	p.HideAxes()
	p.X.Padding = 0
	p.Y.Padding = 0
	p.Add(plotter.NewImage(r.rasterize(grid, pw, ph), 0, 0, float64(cols), float64(rows)))
	p.Draw(dc)
	clearAnchorPixel(c.Image())

	return c
}

// clearAnchorPixel makes the top-left output pixel fully transparent.
// Resampling and the padding crop blend the zeroed grid cell with its
// neighbours, so the sentinel is set on the final raster.
func clearAnchorPixel(img stdraw.Image) {
	b := img.Bounds()
	img.Set(b.Min.X, b.Min.Y, color.Transparent)
}

// rasterize normalizes the grid, resamples it bicubically to w x h and maps
// each output pixel through the colormap. Row 0 lands at the bottom.
func (r *Renderer) rasterize(grid *domain.ForecastGrid, w, h int) *image.NRGBA {
	rows, cols := grid.Dims()
	norm := domain.NewNormalizer(grid)

	src := image.NewGray16(image.Rect(0, 0, cols, rows))
	for row := 0; row < rows; row++ {
		y := rows - 1 - row
		for col := 0; col < cols; col++ {
			v := norm.Normalize(grid.At(row, col))
			src.SetGray16(col, y, color.Gray16{Y: uint16(math.Round(v * math.MaxUint16))})
		}
	}

	scaled := image.NewGray16(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	out := image.NewNRGBA(scaled.Bounds())
	last := float64(len(r.lut) - 1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := float64(scaled.Gray16At(x, y).Y) / math.MaxUint16
			out.SetNRGBA(x, y, r.lut[int(math.Round(g*last))])
		}
	}
	return out
}

// writeFile encodes into a temporary sibling and renames it into place so a
// crash never leaves a truncated image behind.
func writeFile(path string, w io.WriterTo) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
