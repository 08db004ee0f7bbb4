package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sekarsister/cement-targets/internal/emissions"
)

// Columns lists the table headers. The workbook's Normalized sheet starts
// with the same columns in this order.
// Header matching ignores case, spaces and underscores.
var Columns = []string{
	"Company",
	"BaselineYear",
	"BaselineIntensity",
	"CurrentYear",
	"CurrentIntensity",
	"Target2030",
	"Target2050",
	"Source",
}

var requiredColumns = Columns[:7]

func DecodeCSV(r io.Reader) ([]emissions.CompanyRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromTable(rows)
}

// DecodeXLSX reads the first sheet of a workbook.
func DecodeXLSX(r io.Reader) ([]emissions.CompanyRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("open xlsx: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromTable(rows)
}

func headerKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, " ", "")
}

func fromTable(rows [][]string) ([]emissions.CompanyRecord, error) {
	if len(rows) == 0 {
		return finish(nil)
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[headerKey(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[headerKey(col)]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var records []emissions.CompanyRecord
	for n, row := range rows[1:] {
		line := n + 2
		if blank(row) {
			continue
		}
		cell := func(col string) string {
			i, ok := index[headerKey(col)]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		p := rowParser{line: line, cell: cell}
		rec := emissions.CompanyRecord{
			Company:           cell("Company"),
			BaselineYear:      p.parseInt("BaselineYear"),
			BaselineIntensity: p.parseFloat("BaselineIntensity"),
			CurrentYear:       p.parseInt("CurrentYear"),
			CurrentIntensity:  p.parseFloat("CurrentIntensity"),
			Target2030:        p.parseFloat("Target2030"),
			Target2050:        p.parseFloat("Target2050"),
			Source:            cell("Source"),
		}
		if p.err != nil {
			return nil, p.err
		}
		records = append(records, rec)
	}
	return finish(records)
}

type rowParser struct {
	line int
	cell func(string) string
	err  error
}

func (p *rowParser) parseInt(col string) int {
	if p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(p.cell(col))
	if err != nil {
		p.err = fmt.Errorf("row %d: column %s: %w", p.line, col, err)
	}
	return v
}

func (p *rowParser) parseFloat(col string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(p.cell(col), 64)
	if err != nil {
		p.err = fmt.Errorf("row %d: column %s: %w", p.line, col, err)
	}
	return v
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
