package emissions

import (
	"errors"
	"math"
	"strings"
)

// Validate checks every record plus the dataset-wide constraints: at least
// one record and unique company names. All problems are joined into the
// returned error.
func Validate(records []CompanyRecord) error {
	if len(records) == 0 {
		return configErr("", "", "no company records")
	}

	var errs []error
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		if err := ValidateRecord(rec); err != nil {
			errs = append(errs, err)
		}
		name := strings.TrimSpace(rec.Company)
		if name == "" {
			continue
		}
		if seen[name] {
			errs = append(errs, configErr(name, "company", "duplicate company at row %d", i+1))
		}
		seen[name] = true
	}
	return errors.Join(errs...)
}

// ValidateRecord returns the first problem found in rec, or nil.
func ValidateRecord(rec CompanyRecord) error {
	name := strings.TrimSpace(rec.Company)
	if name == "" {
		return configErr("", "company", "company name is required")
	}
	if !finite(rec.BaselineIntensity) || rec.BaselineIntensity <= 0 {
		return configErr(name, "baseline_intensity", "must be a positive number, got %v", rec.BaselineIntensity)
	}
	if !finite(rec.CurrentIntensity) || rec.CurrentIntensity <= 0 {
		return configErr(name, "current_intensity", "must be a positive number, got %v", rec.CurrentIntensity)
	}
	if !finite(rec.Target2030) || rec.Target2030 < 0 {
		return configErr(name, "target_2030", "must be zero or positive, got %v", rec.Target2030)
	}
	if !finite(rec.Target2050) || rec.Target2050 < 0 {
		return configErr(name, "target_2050", "must be zero or positive, got %v", rec.Target2050)
	}
	if rec.CurrentYear < rec.BaselineYear {
		return configErr(name, "current_year", "%d is before baseline year %d", rec.CurrentYear, rec.BaselineYear)
	}
	if rec.CurrentYear > MilestoneYear {
		return configErr(name, "current_year", "%d is after %d, cannot project to the %d target", rec.CurrentYear, MilestoneYear, MilestoneYear)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
