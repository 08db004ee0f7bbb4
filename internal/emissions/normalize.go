package emissions

// Normalize indexes every record against its own baseline intensity. It is
// a pure function of its input; records must already have passed Validate.
func Normalize(records []CompanyRecord) []NormalizedRecord {
	out := make([]NormalizedRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, NormalizeRecord(rec))
	}
	return out
}

func NormalizeRecord(rec CompanyRecord) NormalizedRecord {
	return NormalizedRecord{
		Company:           rec.Company,
		Source:            rec.Source,
		BaselineYear:      rec.BaselineYear,
		BaselineIntensity: rec.BaselineIntensity,
		CurrentYear:       rec.CurrentYear,
		CurrentIntensity:  rec.CurrentIntensity,
		Target2030:        rec.Target2030,
		Target2050:        rec.Target2050,
		BaselineIndex:     BaselineIndex,
		CurrentIndex:      indexOf(rec.CurrentIntensity, rec.BaselineIntensity),
		Target2030Index:   indexOf(rec.Target2030, rec.BaselineIntensity),
		Target2050Index:   indexOf(rec.Target2050, rec.BaselineIntensity),
	}
}

func indexOf(value, baseline float64) float64 {
	return value / baseline * 100
}
