// Package charts draws the ambition matrix and the progress projection with
// gonum/plot and reports where each data point lands on the rendered canvas
// so the page can attach hover tooltips.
package charts

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Range bounds one axis of a zoomed view.
type Range struct {
	Min, Max float64
}

func (r Range) Valid() bool {
	return r.Min < r.Max
}

type Options struct {
	Width  vg.Length
	Height vg.Length

	// XRange and YRange zoom the data area. Nil keeps the automatic range.
	XRange *Range
	YRange *Range
}

func DefaultOptions() Options {
	return Options{
		Width:  12 * vg.Inch,
		Height: 7 * vg.Inch,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

// Hotspot is a hoverable data point. Left and Top are percentages of the
// canvas measured from its top-left corner.
type Hotspot struct {
	Label string
	Left  float64
	Top   float64
}

type mark struct {
	x, y  float64
	label string
}

// Figure is a laid-out chart ready to be encoded.
type Figure struct {
	plot   *plot.Plot
	width  vg.Length
	height vg.Length
	marks  []mark
}

func newFigure(title, xLabel, yLabel string, opts Options) *Figure {
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	return &Figure{plot: p, width: opts.Width, height: opts.Height}
}

// zoom must run after every plotter is added, since Add widens the ranges.
func (f *Figure) zoom(opts Options) {
	if r := opts.XRange; r != nil && r.Valid() {
		f.plot.X.Min, f.plot.X.Max = r.Min, r.Max
	}
	if r := opts.YRange; r != nil && r.Valid() {
		f.plot.Y.Min, f.plot.Y.Max = r.Min, r.Max
	}
}

func (f *Figure) Title() string {
	return f.plot.Title.Text
}

// Size returns the canvas dimensions.
func (f *Figure) Size() (width, height vg.Length) {
	return f.width, f.height
}

// WriteTo encodes the figure in format ("svg", "png", "pdf", ...).
func (f *Figure) WriteTo(w io.Writer, format string) (int64, error) {
	wt, err := f.plot.WriterTo(f.width, f.height, format)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", format, err)
	}
	return wt.WriteTo(w)
}

func (f *Figure) SVG() ([]byte, error) {
	return f.encode("svg")
}

func (f *Figure) PNG() ([]byte, error) {
	return f.encode("png")
}

func (f *Figure) encode(format string) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the figure to path; the extension selects the format.
func (f *Figure) Save(path string) error {
	if err := f.plot.Save(f.width, f.height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Hotspots lays the plot out on a canvas of the figure's size and maps every
// marked point into it. Points outside the (possibly zoomed) data area are
// skipped.
func (f *Figure) Hotspots() []Hotspot {
	dc := draw.New(vgsvg.New(f.width, f.height))
	da := f.plot.DataCanvas(dc)
	tx, ty := f.plot.Transforms(&da)

	spots := make([]Hotspot, 0, len(f.marks))
	for _, m := range f.marks {
		pt := vg.Point{X: tx(m.x), Y: ty(m.y)}
		if !da.Contains(pt) {
			continue
		}
		spots = append(spots, Hotspot{
			Label: m.label,
			Left:  float64(pt.X / f.width * 100),
			Top:   float64((f.height - pt.Y) / f.height * 100),
		})
	}
	return spots
}

// companyColors returns one colour per company, in dataset order, so both
// views colour a company the same way. Datasets that fit the default plot
// colours use them; larger ones get evenly spaced hues so no two companies
// share a colour.
func companyColors(n int) []color.Color {
	if n <= len(plotutil.DefaultColors) {
		return plotutil.DefaultColors[:n:n]
	}
	step := 1 / float64(n)
	return palette.Rainbow(n, 0, palette.Hue(1-step), 1, 0.8, 1).Colors()
}

var guideColor = color.RGBA{R: 90, G: 90, B: 90, A: 255}

func dotted() []vg.Length {
	return []vg.Length{vg.Points(2), vg.Points(3)}
}

func guideLine(from, to plotter.XY) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{from, to})
	if err != nil {
		return nil, err
	}
	line.Color = guideColor
	line.Width = vg.Points(1)
	line.Dashes = dotted()
	return line, nil
}
