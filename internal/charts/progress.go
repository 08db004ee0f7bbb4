package charts

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sekarsister/cement-targets/internal/emissions"
)

const (
	ProgressTitle = "Progress Over Time (Indexed to 2019 = 100)"
	BaselineLabel = "2019 baseline"
)

// ProgressProjection draws one line per company from its current year to
// 2050 plus the dotted baseline reference at 100.
func ProgressProjection(records []emissions.NormalizedRecord, opts Options) (*Figure, error) {
	fig := newFigure(ProgressTitle, "Year", "Index", opts)
	p := fig.plot

	projections := emissions.ProjectAll(records)
	colors := companyColors(len(projections))
	first := emissions.HorizonYear
	for i, proj := range projections {
		if len(proj.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(proj.Points))
		for j, pt := range proj.Points {
			xys[j].X = float64(pt.Year)
			xys[j].Y = pt.Index
		}
		if proj.Points[0].Year < first {
			first = proj.Points[0].Year
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("progress %s: %w", proj.Company, err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(proj.Company, line)

		fig.marks = append(fig.marks, progressMarks(proj)...)
	}

	baseline, err := guideLine(
		plotter.XY{X: float64(first), Y: emissions.BaselineIndex},
		plotter.XY{X: emissions.HorizonYear, Y: emissions.BaselineIndex},
	)
	if err != nil {
		return nil, fmt.Errorf("progress baseline: %w", err)
	}
	p.Add(baseline)

	caption, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: emissions.HorizonYear, Y: emissions.BaselineIndex}},
		Labels: []string{BaselineLabel},
	})
	if err != nil {
		return nil, fmt.Errorf("progress baseline label: %w", err)
	}
	caption.TextStyle[0].XAlign = draw.XRight
	caption.TextStyle[0].YAlign = draw.YTop
	caption.TextStyle[0].Color = guideColor
	caption.Offset = vg.Point{Y: -vg.Points(3)}
	p.Add(caption)

	fig.zoom(opts)
	return fig, nil
}

// progressMarks exposes the current, 2030 and 2050 points of a projection.
func progressMarks(proj emissions.Projection) []mark {
	years := []int{proj.Points[0].Year, emissions.MilestoneYear, emissions.HorizonYear}
	marks := make([]mark, 0, len(years))
	for i, year := range years {
		if i > 0 && year == years[0] {
			continue
		}
		v, ok := proj.At(year)
		if !ok {
			continue
		}
		marks = append(marks, mark{
			x:     float64(year),
			y:     v,
			label: fmt.Sprintf("%s\n%d: %.1f", proj.Company, year, v),
		})
	}
	return marks
}
