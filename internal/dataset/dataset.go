// Package dataset loads company emission records from the compiled-in
// dataset or from an external YAML, CSV or XLSX file.
package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/sekarsister/cement-targets/internal/emissions"
)

//go:embed dataset.yaml
var embedded []byte

// Loader produces a freshly validated copy of the dataset on every call.
type Loader interface {
	Load(ctx context.Context) ([]emissions.CompanyRecord, error)
	// Name identifies the origin of the data in logs and traces.
	Name() string
}

// New returns the embedded loader when path is empty, a file loader otherwise.
func New(path string) Loader {
	if strings.TrimSpace(path) == "" {
		return Embedded{}
	}
	return File{Path: path}
}

// Embedded serves the dataset compiled into the binary.
type Embedded struct{}

func (Embedded) Name() string { return "embedded" }

func (Embedded) Load(ctx context.Context) ([]emissions.CompanyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Default()
}

// Default decodes and validates the compiled-in dataset.
func Default() ([]emissions.CompanyRecord, error) {
	records, err := DecodeYAML(bytes.NewReader(embedded))
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return records, nil
}

// File reads the dataset from disk, picking the decoder from the extension.
type File struct {
	Path string
}

func (f File) Name() string { return f.Path }

func (f File) Load(ctx context.Context) ([]emissions.CompanyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := Load(f.Path)
	if err != nil {
		return nil, err
	}
	klog.FromContext(ctx).V(2).Info("loaded dataset", "path", f.Path, "companies", len(records))
	return records, nil
}

// ErrUnsupportedFormat is returned for file extensions without a decoder.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Load reads and validates the dataset at path.
func Load(path string) ([]emissions.CompanyRecord, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	records, err := decode(file)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return records, nil
}

func decoderFor(path string) (func(io.Reader) ([]emissions.CompanyRecord, error), error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return DecodeYAML, nil
	case ".csv":
		return DecodeCSV, nil
	case ".xlsx":
		return DecodeXLSX, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

type document struct {
	Companies []emissions.CompanyRecord `yaml:"companies"`
}

// DecodeYAML parses a `companies:` list and validates it. Unknown keys are
// rejected so a misspelt field cannot silently become zero.
func DecodeYAML(r io.Reader) ([]emissions.CompanyRecord, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return finish(doc.Companies)
}

func finish(records []emissions.CompanyRecord) ([]emissions.CompanyRecord, error) {
	for i := range records {
		records[i].Company = strings.TrimSpace(records[i].Company)
		records[i].Source = strings.TrimSpace(records[i].Source)
	}
	if err := emissions.Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}
