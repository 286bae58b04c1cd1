// Package adapters implements the challenge feature's storage and data-source ports.
package adapters

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"stock_frame/internal/feature/challenge/domain/entity"
	"stock_frame/internal/feature/challenge/usecase"
)

// CSVSource loads raw frames from CSV files laid out as <dir>/<symbol>.csv,
// or from a single fixed file when Path is set.
type CSVSource struct {
	Dir  string
	Path string
}

var _ usecase.FrameSource = (*CSVSource)(nil)

// NewCSVDirSource reads <dir>/<symbol lowercased>.csv.
func NewCSVDirSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

// NewCSVFileSource always reads path, whatever symbol is requested.
func NewCSVFileSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) path(symbol string) string {
	if s.Path != "" {
		return s.Path
	}
	return filepath.Join(s.Dir, strings.ToLower(symbol)+".csv")
}

// LoadFrame opens the CSV for symbol and parses it into an object-typed frame.
func (s *CSVSource) LoadFrame(ctx context.Context, symbol string) (*entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := s.path(symbol)
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fr, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return fr, nil
}

// ReadCSV parses a header line followed by records.
func ReadCSV(r io.Reader) (*entity.Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// width is checked by entity.NewFrame so the error names the row
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty csv")
	}
	if err != nil {
		return nil, err
	}
	// strip a UTF-8 BOM written by spreadsheet exports
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return entity.NewFrame(header, records)
}
