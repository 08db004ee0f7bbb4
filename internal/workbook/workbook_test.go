package workbook

import (
	"bytes"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sekarsister/cement-targets/internal/emissions"
)

func sample() []emissions.NormalizedRecord {
	return emissions.Normalize([]emissions.CompanyRecord{
		{Company: "Holcim", BaselineYear: 2018, BaselineIntensity: 590, CurrentYear: 2023, CurrentIntensity: 420, Target2030: 436, Target2050: 30, Source: "Holcim Climate Report 2023"},
		{Company: "CRH", BaselineYear: 2021, BaselineIntensity: 570, CurrentYear: 2023, CurrentIntensity: 550, Target2030: 450, Target2050: 30, Source: "Placeholder"},
	})
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{NormalizedSheet, ProjectionSheet, SourcesSheet}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Fatalf("sheets = %v, want %v", sheets, want)
		}
	}

	rows, err := f.GetRows(NormalizedSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("normalized rows = %d, want 3", len(rows))
	}
	if rows[1][0] != "Holcim" || rows[1][2] != "590" || rows[1][4] != "420" || rows[1][8] != "100" {
		t.Fatalf("normalized row = %v", rows[1])
	}
	current, err := strconv.ParseFloat(rows[1][9], 64)
	if err != nil || current < 71.18 || current > 71.19 {
		t.Fatalf("current index cell = %q", rows[1][9])
	}

	proj, err := f.GetRows(ProjectionSheet)
	if err != nil {
		t.Fatal(err)
	}
	// header + 28 Holcim years + 28 CRH years
	if len(proj) != 1+28+28 {
		t.Fatalf("projection rows = %d, want 57", len(proj))
	}
	if proj[1][0] != "Holcim" || proj[1][1] != "2023" || proj[28][1] != "2050" {
		t.Fatalf("projection rows = %v ... %v", proj[1], proj[28])
	}

	src, err := f.GetCellValue(SourcesSheet, "B3")
	if err != nil {
		t.Fatal(err)
	}
	if src != "Placeholder" {
		t.Fatalf("Sources!B3 = %q", src)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.xlsx")
	if err := Save(path, sample()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	name, err := f.GetCellValue(NormalizedSheet, "A3")
	if err != nil {
		t.Fatal(err)
	}
	if name != "CRH" {
		t.Fatalf("Normalized!A3 = %q", name)
	}
}

func TestBuildEmpty(t *testing.T) {
	f, err := Build(nil)
	if err != nil {
		t.Fatalf("Build(nil) error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ProjectionSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("projection rows = %d, want header only", len(rows))
	}
}
