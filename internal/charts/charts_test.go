package charts

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/plot/plotutil"

	"github.com/sekarsister/cement-targets/internal/emissions"
)

func normalized(t *testing.T) []emissions.NormalizedRecord {
	t.Helper()
	records := []emissions.CompanyRecord{
		{Company: "Holcim", BaselineYear: 2018, BaselineIntensity: 590, CurrentYear: 2023, CurrentIntensity: 420, Target2030: 436, Target2050: 30, Source: "Holcim Climate Report 2023"},
		{Company: "CEMEX", BaselineYear: 1990, BaselineIntensity: 710, CurrentYear: 2023, CurrentIntensity: 475, Target2030: 475, Target2050: 0, Source: "CEMEX Climate Position 2024"},
		{Company: "Late Reporter", BaselineYear: 2019, BaselineIntensity: 600, CurrentYear: 2030, CurrentIntensity: 420, Target2030: 400, Target2050: 60, Source: "Placeholder"},
	}
	if err := emissions.Validate(records); err != nil {
		t.Fatal(err)
	}
	return emissions.Normalize(records)
}

func TestAmbitionMatrixHotspots(t *testing.T) {
	records := normalized(t)
	fig, err := AmbitionMatrix(records, DefaultOptions())
	if err != nil {
		t.Fatalf("AmbitionMatrix() error = %v", err)
	}
	if fig.Title() != MatrixTitle {
		t.Fatalf("Title() = %q", fig.Title())
	}

	spots := fig.Hotspots()
	if len(spots) != len(records) {
		t.Fatalf("hotspots = %d, want %d", len(spots), len(records))
	}
	for i, s := range spots {
		if !strings.Contains(s.Label, records[i].Company) || !strings.Contains(s.Label, "Source: "+records[i].Source) {
			t.Errorf("hotspot %d label = %q", i, s.Label)
		}
		if s.Left < 0 || s.Left > 100 || s.Top < 0 || s.Top > 100 {
			t.Errorf("hotspot %d out of canvas: %+v", i, s)
		}
	}

	// Holcim's 2030 index (73.9) is right of CEMEX's (66.9) and its 2050
	// index (5.1) sits above CEMEX's zero.
	holcim, cemex := spots[0], spots[1]
	if holcim.Left <= cemex.Left {
		t.Errorf("Holcim left %.2f should exceed CEMEX left %.2f", holcim.Left, cemex.Left)
	}
	if holcim.Top >= cemex.Top {
		t.Errorf("Holcim top %.2f should be above CEMEX top %.2f", holcim.Top, cemex.Top)
	}
}

func TestAmbitionMatrixZoomDropsHiddenPoints(t *testing.T) {
	opts := DefaultOptions()
	opts.XRange = &Range{Min: 0, Max: 70}
	fig, err := AmbitionMatrix(normalized(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	spots := fig.Hotspots()
	if len(spots) != 2 {
		t.Fatalf("hotspots = %d, want 2 (Holcim is outside the zoom)", len(spots))
	}
	for _, s := range spots {
		if strings.HasPrefix(s.Label, "Holcim") {
			t.Fatalf("Holcim should be hidden, got %+v", s)
		}
	}
}

func TestAmbitionMatrixEncodes(t *testing.T) {
	fig, err := AmbitionMatrix(normalized(t), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	svg, err := fig.SVG()
	if err != nil {
		t.Fatalf("SVG() error = %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Fatal("SVG output has no <svg> element")
	}
	png, err := fig.PNG()
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("PNG output has no PNG signature")
	}
	if _, err := fig.WriteTo(&bytes.Buffer{}, "bmp"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestProgressProjectionHotspots(t *testing.T) {
	records := normalized(t)
	fig, err := ProgressProjection(records, DefaultOptions())
	if err != nil {
		t.Fatalf("ProgressProjection() error = %v", err)
	}
	if fig.Title() != ProgressTitle {
		t.Fatalf("Title() = %q", fig.Title())
	}

	// current, 2030 and 2050 for the first two; the 2030 reporter has no
	// separate current point.
	spots := fig.Hotspots()
	if len(spots) != 3+3+2 {
		t.Fatalf("hotspots = %d, want 8", len(spots))
	}
	if !strings.Contains(spots[0].Label, "Holcim\n2023: 71.2") {
		t.Errorf("spots[0] = %q", spots[0].Label)
	}
	if !strings.Contains(spots[2].Label, "2050: 5.1") {
		t.Errorf("spots[2] = %q", spots[2].Label)
	}
	// years run left to right.
	if !(spots[0].Left < spots[1].Left && spots[1].Left < spots[2].Left) {
		t.Errorf("expected increasing Left, got %.2f %.2f %.2f", spots[0].Left, spots[1].Left, spots[2].Left)
	}
}

func TestProgressProjectionEmpty(t *testing.T) {
	fig, err := ProgressProjection(nil, DefaultOptions())
	if err != nil {
		t.Fatalf("ProgressProjection(nil) error = %v", err)
	}
	if spots := fig.Hotspots(); len(spots) != 0 {
		t.Fatalf("hotspots = %d, want 0", len(spots))
	}
}

func TestFigureSave(t *testing.T) {
	fig, err := ProgressProjection(normalized(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	w, h := fig.Size()
	if w != DefaultOptions().Width || h != DefaultOptions().Height {
		t.Fatalf("Size() = %v x %v, want defaults", w, h)
	}

	path := filepath.Join(t.TempDir(), "progress.svg")
	if err := fig.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("saved file is empty")
	}
}

func TestRangeValid(t *testing.T) {
	if (Range{Min: 10, Max: 10}).Valid() {
		t.Fatal("empty range reported valid")
	}
	if !(Range{Min: 0, Max: 1}).Valid() {
		t.Fatal("range reported invalid")
	}
}

func rgba(c color.Color) [4]uint32 {
	r, g, b, a := c.RGBA()
	return [4]uint32{r, g, b, a}
}

func TestCompanyColorsDistinct(t *testing.T) {
	for _, n := range []int{0, 3, len(plotutil.DefaultColors), len(plotutil.DefaultColors) + 1, 24} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			colors := companyColors(n)
			if len(colors) != n {
				t.Fatalf("len = %d, want %d", len(colors), n)
			}
			seen := make(map[[4]uint32]int, n)
			for i, c := range colors {
				if j, ok := seen[rgba(c)]; ok {
					t.Fatalf("companies %d and %d share colour %v", j, i, c)
				}
				seen[rgba(c)] = i
			}
		})
	}
}

func TestCompanyColorsKeepDefaultsForSmallDatasets(t *testing.T) {
	for i, c := range companyColors(6) {
		if rgba(c) != rgba(plotutil.Color(i)) {
			t.Fatalf("colour %d = %v, want %v", i, c, plotutil.Color(i))
		}
	}
}

func TestChartsWithManyCompanies(t *testing.T) {
	var records []emissions.CompanyRecord
	for i := 0; i < 12; i++ {
		records = append(records, emissions.CompanyRecord{
			Company: fmt.Sprintf("Company %02d", i), BaselineYear: 2019, BaselineIntensity: 600,
			CurrentYear: 2024, CurrentIntensity: 560, Target2030: float64(300 + 10*i), Target2050: 40, Source: "Placeholder",
		})
	}
	indexed := emissions.Normalize(records)

	matrix, err := AmbitionMatrix(indexed, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if n := len(matrix.Hotspots()); n != 12 {
		t.Fatalf("matrix hotspots = %d, want 12", n)
	}
	if _, err := ProgressProjection(indexed, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
}
