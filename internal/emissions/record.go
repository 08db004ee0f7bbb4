// Package emissions holds the company intensity records, their baseline
// index normalization and the piecewise-linear projection to 2050.
package emissions

const (
	// BaselineIndex is the index value every record takes at its baseline year.
	BaselineIndex = 100.0

	MilestoneYear = 2030
	HorizonYear   = 2050
)

// CompanyRecord is one hand-entered row of the dataset. Intensities are
// emissions per unit of output (kg CO2 per tonne of cementitious product).
type CompanyRecord struct {
	Company           string  `yaml:"company" json:"company"`
	BaselineYear      int     `yaml:"baseline_year" json:"baseline_year"`
	BaselineIntensity float64 `yaml:"baseline_intensity" json:"baseline_intensity"`
	CurrentYear       int     `yaml:"current_year" json:"current_year"`
	CurrentIntensity  float64 `yaml:"current_intensity" json:"current_intensity"`
	Target2030        float64 `yaml:"target_2030" json:"target_2030"`
	Target2050        float64 `yaml:"target_2050" json:"target_2050"`
	Source            string  `yaml:"source" json:"source"`
}

// NormalizedRecord is a CompanyRecord plus its intensities rescaled so the
// baseline equals 100.
type NormalizedRecord struct {
	Company           string  `json:"company"`
	Source            string  `json:"source"`
	BaselineYear      int     `json:"baseline_year"`
	BaselineIntensity float64 `json:"baseline_intensity"`
	CurrentYear       int     `json:"current_year"`
	CurrentIntensity  float64 `json:"current_intensity"`
	Target2030        float64 `json:"target_2030"`
	Target2050        float64 `json:"target_2050"`

	BaselineIndex   float64 `json:"baseline_index"`
	CurrentIndex    float64 `json:"current_index"`
	Target2030Index float64 `json:"target_2030_index"`
	Target2050Index float64 `json:"target_2050_index"`
}
