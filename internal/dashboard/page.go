package dashboard

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"math"
	"net/url"
	"strconv"

	"github.com/sekarsister/cement-targets/internal/charts"
)

const (
	PageTitle = "Cement Sector Climate Targets"
	Caption   = "Sources: Holcim Climate Report 2023, Heidelberg AR 2023, CEMEX Climate Position 2024, plus placeholders for missing companies."
)

// View names one of the two tabs.
type View string

const (
	MatrixView   View = "matrix"
	ProgressView View = "progress"
)

var views = []struct {
	view  View
	label string
	title string
}{
	{MatrixView, "2×2 Ambition Matrix", charts.MatrixTitle},
	{ProgressView, "Progress vs Targets", charts.ProgressTitle},
}

// ParseView maps a query value to a view; anything unknown is the matrix.
func ParseView(s string) View {
	if View(s) == ProgressView {
		return ProgressView
	}
	return MatrixView
}

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

type tab struct {
	Label  string
	Href   string
	Active bool
}

type hotspot struct {
	Label string
	Style template.CSS
}

// zoomFields echoes the submitted zoom back into the form.
type zoomFields struct {
	XMin, XMax, YMin, YMax string
}

type page struct {
	Title     string
	Caption   string
	View      View
	Tabs      []tab
	Subheader string
	Zoom      zoomFields
	ResetHref string
	SVGHref   string
	PNGHref   string
	ChartURI  template.URL
	Hotspots  []hotspot
	Error     string
}

func newPage(view View, query url.Values) *page {
	p := &page{
		Title:     PageTitle,
		Caption:   Caption,
		View:      view,
		ResetHref: "/?view=" + string(view),
		Zoom: zoomFields{
			XMin: query.Get("xmin"),
			XMax: query.Get("xmax"),
			YMin: query.Get("ymin"),
			YMax: query.Get("ymax"),
		},
	}
	p.SVGHref = chartHref(view, "svg", p.Zoom)
	p.PNGHref = chartHref(view, "png", p.Zoom)
	for _, v := range views {
		p.Tabs = append(p.Tabs, tab{
			Label:  v.label,
			Href:   "/?view=" + string(v.view),
			Active: v.view == view,
		})
		if v.view == view {
			p.Subheader = v.title
		}
	}
	return p
}

// chartHref links the chart download, keeping any zoom in effect.
func chartHref(view View, format string, z zoomFields) string {
	href := "/charts/" + string(view) + "." + format
	q := url.Values{}
	for _, f := range []struct{ key, value string }{
		{"xmin", z.XMin}, {"xmax", z.XMax}, {"ymin", z.YMin}, {"ymax", z.YMax},
	} {
		if f.value != "" {
			q.Set(f.key, f.value)
		}
	}
	if len(q) > 0 {
		href += "?" + q.Encode()
	}
	return href
}

func (p *page) setChart(svg []byte, spots []charts.Hotspot) {
	p.ChartURI = template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg))
	p.Hotspots = make([]hotspot, 0, len(spots))
	for _, s := range spots {
		p.Hotspots = append(p.Hotspots, hotspot{
			Label: s.Label,
			Style: template.CSS(fmt.Sprintf("left:%.3f%%;top:%.3f%%", s.Left, s.Top)),
		})
	}
}

// parseZoom reads xmin/xmax and ymin/ymax. Each axis needs both bounds or
// neither.
func parseZoom(query url.Values, opts charts.Options) (charts.Options, error) {
	x, err := parseRange(query, "xmin", "xmax")
	if err != nil {
		return opts, err
	}
	y, err := parseRange(query, "ymin", "ymax")
	if err != nil {
		return opts, err
	}
	opts.XRange, opts.YRange = x, y
	return opts, nil
}

func parseRange(query url.Values, minKey, maxKey string) (*charts.Range, error) {
	lo, hi := query.Get(minKey), query.Get(maxKey)
	if lo == "" && hi == "" {
		return nil, nil
	}
	if lo == "" || hi == "" {
		return nil, fmt.Errorf("zoom needs both %s and %s", minKey, maxKey)
	}
	minV, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return nil, fmt.Errorf("zoom %s: %q is not a number", minKey, lo)
	}
	maxV, err := strconv.ParseFloat(hi, 64)
	if err != nil {
		return nil, fmt.Errorf("zoom %s: %q is not a number", maxKey, hi)
	}
	if math.IsInf(minV, 0) || math.IsInf(maxV, 0) || math.IsNaN(minV) || math.IsNaN(maxV) {
		return nil, fmt.Errorf("zoom %s/%s must be finite", minKey, maxKey)
	}
	r := charts.Range{Min: minV, Max: maxV}
	if !r.Valid() {
		return nil, fmt.Errorf("zoom %s must be below %s", minKey, maxKey)
	}
	return &r, nil
}
