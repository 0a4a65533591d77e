// Package file loads catalog records and purity tables from local files.
package file

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
)

// Source reads the catalog from a JSON, YAML or CSV file.
type Source struct {
	path   string
	format Format
}

// NewSource creates a source for path, choosing the format by extension.
func NewSource(path string) (*Source, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &Source{path: path, format: format}, nil
}

// Path returns the file the source reads.
func (s *Source) Path() string {
	return s.path
}

// Name implements repository.CatalogSource.
func (s *Source) Name() string {
	return "file:" + s.path
}

// Load implements repository.CatalogSource.
func (s *Source) Load(ctx context.Context) ([]domain.ProductRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	records, err := Decode(f, s.format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	return records, nil
}

// PurityFile loads a purity table from YAML. An empty path yields the
// built-in table.
type PurityFile struct {
	path string
}

// NewPurityFile creates a loader for path.
func NewPurityFile(path string) *PurityFile {
	return &PurityFile{path: path}
}

// LoadPurity implements repository.PurityLoader.
func (p *PurityFile) LoadPurity(_ context.Context) (domain.PurityTable, error) {
	if p.path == "" {
		return domain.DefaultPurityTable(), nil
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return domain.PurityTable{}, fmt.Errorf("read purity table: %w", err)
	}

	var table domain.PurityTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return domain.PurityTable{}, fmt.Errorf("parse purity table %s: %w", p.path, err)
	}
	if err := table.Validate(); err != nil {
		return domain.PurityTable{}, fmt.Errorf("purity table %s: %w", p.path, err)
	}
	return table, nil
}
