// Package workbook exports the indexed dataset and its projections to xlsx.
package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/sekarsister/cement-targets/internal/emissions"
)

const (
	NormalizedSheet = "Normalized"
	ProjectionSheet = "Projection"
	SourcesSheet    = "Sources"
)

// The leading columns match dataset.Columns, so an exported workbook loads
// back as a dataset; the index columns after Source are ignored on load.
var normalizedHeaders = []string{
	"Company", "Baseline Year", "Baseline Intensity", "Current Year", "Current Intensity",
	"Target 2030", "Target 2050", "Source",
	"Baseline Index", "Current Index", "Target 2030 Index", "Target 2050 Index",
}

// Build lays out the three sheets. The caller owns the returned file.
func Build(records []emissions.NormalizedRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", NormalizedSheet); err != nil {
		f.Close()
		return nil, err
	}

	steps := []func(*excelize.File, []emissions.NormalizedRecord) error{
		writeNormalized,
		writeProjection,
		writeSources,
	}
	for _, step := range steps {
		if err := step(f, records); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// Write encodes the workbook to w.
func Write(w io.Writer, records []emissions.NormalizedRecord) error {
	f, err := Build(records)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func Save(path string, records []emissions.NormalizedRecord) error {
	f, err := Build(records)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, width float64) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", last, width); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeNormalized(f *excelize.File, records []emissions.NormalizedRecord) error {
	if err := writeHeader(f, NormalizedSheet, normalizedHeaders, 18); err != nil {
		return fmt.Errorf("%s header: %w", NormalizedSheet, err)
	}
	for i, rec := range records {
		values := []any{
			rec.Company, rec.BaselineYear, rec.BaselineIntensity, rec.CurrentYear, rec.CurrentIntensity,
			rec.Target2030, rec.Target2050, rec.Source,
			rec.BaselineIndex, rec.CurrentIndex, rec.Target2030Index, rec.Target2050Index,
		}
		if err := writeRow(f, NormalizedSheet, i+2, values); err != nil {
			return fmt.Errorf("%s row %d: %w", NormalizedSheet, i+2, err)
		}
	}
	return nil
}

func writeProjection(f *excelize.File, records []emissions.NormalizedRecord) error {
	if _, err := f.NewSheet(ProjectionSheet); err != nil {
		return err
	}
	if err := writeHeader(f, ProjectionSheet, []string{"Company", "Year", "Index"}, 20); err != nil {
		return fmt.Errorf("%s header: %w", ProjectionSheet, err)
	}
	rows := emissions.LongForm(emissions.ProjectAll(records))
	for i, r := range rows {
		if err := writeRow(f, ProjectionSheet, i+2, []any{r.Company, r.Year, r.Index}); err != nil {
			return fmt.Errorf("%s row %d: %w", ProjectionSheet, i+2, err)
		}
	}
	return nil
}

func writeSources(f *excelize.File, records []emissions.NormalizedRecord) error {
	if _, err := f.NewSheet(SourcesSheet); err != nil {
		return err
	}
	if err := writeHeader(f, SourcesSheet, []string{"Company", "Source"}, 32); err != nil {
		return fmt.Errorf("%s header: %w", SourcesSheet, err)
	}
	for i, rec := range records {
		if err := writeRow(f, SourcesSheet, i+2, []any{rec.Company, rec.Source}); err != nil {
			return fmt.Errorf("%s row %d: %w", SourcesSheet, i+2, err)
		}
	}
	return nil
}
