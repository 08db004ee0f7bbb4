package emissions

// ProjectionPoint is the projected index of one company in one year.
type ProjectionPoint struct {
	Year  int     `json:"year"`
	Index float64 `json:"index"`
}

// Projection is the straight-line trajectory of one company from its
// current year through the 2030 target to the 2050 target.
type Projection struct {
	Company string            `json:"company"`
	Points  []ProjectionPoint `json:"points"`
}

// SeriesRow is one row of the long-form table fed to the line chart.
type SeriesRow struct {
	Company string  `json:"company"`
	Year    int     `json:"year"`
	Index   float64 `json:"index"`
}

// Project interpolates rec from CurrentYear to 2030 and from 2030 to 2050,
// one point per year. A CurrentYear after 2030 is rejected by Validate; if
// such a record still reaches here it is clamped: the series starts at 2030
// on the 2030 target and only the second segment carries information.
func Project(rec NormalizedRecord) []ProjectionPoint {
	start := rec.CurrentYear
	first := rec.CurrentIndex
	if start > MilestoneYear {
		start = MilestoneYear
		first = rec.Target2030Index
	}

	toMilestone := linspace(first, rec.Target2030Index, MilestoneYear-start+1)
	toHorizon := linspace(rec.Target2030Index, rec.Target2050Index, HorizonYear-MilestoneYear+1)[1:]

	points := make([]ProjectionPoint, 0, len(toMilestone)+len(toHorizon))
	year := start
	for _, v := range toMilestone {
		points = append(points, ProjectionPoint{Year: year, Index: v})
		year++
	}
	for _, v := range toHorizon {
		points = append(points, ProjectionPoint{Year: year, Index: v})
		year++
	}
	return points
}

// ProjectAll projects every record, keeping dataset order.
func ProjectAll(records []NormalizedRecord) []Projection {
	out := make([]Projection, 0, len(records))
	for _, rec := range records {
		out = append(out, Projection{Company: rec.Company, Points: Project(rec)})
	}
	return out
}

// LongForm flattens projections into company/year/index rows.
func LongForm(projections []Projection) []SeriesRow {
	var n int
	for _, p := range projections {
		n += len(p.Points)
	}
	rows := make([]SeriesRow, 0, n)
	for _, p := range projections {
		for _, pt := range p.Points {
			rows = append(rows, SeriesRow{Company: p.Company, Year: pt.Year, Index: pt.Index})
		}
	}
	return rows
}

// At returns the projected index for year.
func (p Projection) At(year int) (float64, bool) {
	for _, pt := range p.Points {
		if pt.Year == year {
			return pt.Index, true
		}
	}
	return 0, false
}

// linspace returns n evenly spaced values from start to stop inclusive.
// n == 1 yields start; n <= 0 yields an empty slice.
func linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	out[0] = start
	if n == 1 {
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := 1; i < n-1; i++ {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}
