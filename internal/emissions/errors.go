package emissions

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a dataset that cannot be indexed or projected.
type ConfigurationError struct {
	Company string // empty for dataset-level problems
	Field   string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Company == "" && e.Field == "":
		return fmt.Sprintf("invalid dataset: %s", e.Reason)
	case e.Company == "":
		return fmt.Sprintf("invalid dataset: %s: %s", e.Field, e.Reason)
	default:
		return fmt.Sprintf("invalid record %q: %s: %s", e.Company, e.Field, e.Reason)
	}
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErr(company, field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Company: company,
		Field:   field,
		Reason:  fmt.Sprintf(format, args...),
	}
}
