package charts

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sekarsister/cement-targets/internal/emissions"
)

const (
	MatrixTitle = "2030 vs 2050 Target Ambition (Indexed to Baseline)"

	// AmbitionThreshold splits the matrix into quadrants: a 50% cut from baseline.
	AmbitionThreshold = 50.0
)

var pointRadius = vg.Points(7)

// AmbitionMatrix places each company at (2030 target index, 2050 target
// index) with dotted guides at the 50% reduction threshold on both axes.
func AmbitionMatrix(records []emissions.NormalizedRecord, opts Options) (*Figure, error) {
	fig := newFigure(MatrixTitle, "2030 Target (2019=100)", "2050 Target (2019=100)", opts)
	p := fig.plot

	horizontal, err := guideLine(plotter.XY{X: 0, Y: AmbitionThreshold}, plotter.XY{X: emissions.BaselineIndex, Y: AmbitionThreshold})
	if err != nil {
		return nil, fmt.Errorf("ambition matrix guide: %w", err)
	}
	vertical, err := guideLine(plotter.XY{X: AmbitionThreshold, Y: 0}, plotter.XY{X: AmbitionThreshold, Y: emissions.BaselineIndex})
	if err != nil {
		return nil, fmt.Errorf("ambition matrix guide: %w", err)
	}
	p.Add(horizontal, vertical)

	points := make(plotter.XYs, len(records))
	labels := make([]string, len(records))
	colors := companyColors(len(records))
	for i, rec := range records {
		points[i].X = rec.Target2030Index
		points[i].Y = rec.Target2050Index
		labels[i] = rec.Company

		bubble, err := plotter.NewScatter(plotter.XYs{points[i]})
		if err != nil {
			return nil, fmt.Errorf("ambition matrix %s: %w", rec.Company, err)
		}
		bubble.GlyphStyle.Color = colors[i]
		bubble.GlyphStyle.Radius = pointRadius
		bubble.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(bubble)
		p.Legend.Add(rec.Company, bubble)

		fig.marks = append(fig.marks, mark{
			x:     points[i].X,
			y:     points[i].Y,
			label: fmt.Sprintf("%s\n2030: %.1f  2050: %.1f\nSource: %s", rec.Company, rec.Target2030Index, rec.Target2050Index, rec.Source),
		})
	}

	if len(records) > 0 {
		names, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: labels})
		if err != nil {
			return nil, fmt.Errorf("ambition matrix labels: %w", err)
		}
		for i := range names.TextStyle {
			names.TextStyle[i].XAlign = draw.XCenter
		}
		names.Offset = vg.Point{Y: pointRadius + vg.Points(3)}
		p.Add(names)
	}

	fig.zoom(opts)
	return fig, nil
}
