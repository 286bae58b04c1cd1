package entity

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"stock_frame/internal/feature/challenge/domain"
)

// DefaultDatetimeLayouts are tried in order by ToDatetime when no layout is given.
var DefaultDatetimeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"20060102",
}

// Column is a named, typed sequence of values. Only the slice matching DType is populated.
type Column struct {
	Name    string
	DType   DType
	Strings []string
	Ints    []int64
	Floats  []float64
	Times   []time.Time
}

// Len returns the number of values held by the column.
func (c Column) Len() int {
	switch c.DType {
	case DTypeDatetime64NS:
		return len(c.Times)
	case DTypeInt64:
		return len(c.Ints)
	case DTypeFloat64:
		return len(c.Floats)
	default:
		return len(c.Strings)
	}
}

// take returns a copy of the column with rows reordered by perm.
func (c Column) take(perm []int) Column {
	out := Column{Name: c.Name, DType: c.DType}
	switch c.DType {
	case DTypeDatetime64NS:
		out.Times = make([]time.Time, len(perm))
		for i, p := range perm {
			out.Times[i] = c.Times[p]
		}
	case DTypeInt64:
		out.Ints = make([]int64, len(perm))
		for i, p := range perm {
			out.Ints[i] = c.Ints[p]
		}
	case DTypeFloat64:
		out.Floats = make([]float64, len(perm))
		for i, p := range perm {
			out.Floats[i] = c.Floats[p]
		}
	default:
		out.Strings = make([]string, len(perm))
		for i, p := range perm {
			out.Strings[i] = c.Strings[p]
		}
	}
	return out
}

// Frame is a row-indexed table of typed columns.
type Frame struct {
	Index   Column
	Columns []Column
}

// NewFrame builds an object-typed frame from a header and raw string records.
// The frame gets an unnamed int64 range index.
func NewFrame(header []string, records [][]string) (*Frame, error) {
	cols := make([]Column, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		if _, ok := seen[h]; ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateColumn, h)
		}
		seen[h] = struct{}{}
		cols[i] = Column{Name: h, DType: DTypeObject, Strings: make([]string, 0, len(records))}
	}

	index := Column{DType: DTypeInt64, Ints: make([]int64, 0, len(records))}
	for r, rec := range records {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, want %d", domain.ErrRaggedRow, r, len(rec), len(header))
		}
		for i, v := range rec {
			cols[i].Strings = append(cols[i].Strings, v)
		}
		index.Ints = append(index.Ints, int64(r))
	}
	return &Frame{Index: index, Columns: cols}, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.Index.Len()
}

// ColumnNames returns the data column labels in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, 0, len(f.Columns))
	for _, c := range f.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Column looks up a data column by name.
func (f *Frame) Column(name string) (Column, bool) {
	i := f.columnIndex(name)
	if i < 0 {
		return Column{}, false
	}
	return f.Columns[i], true
}

func (f *Frame) columnIndex(name string) int {
	for i, c := range f.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// RenameColumns applies fn to every data column label.
func (f *Frame) RenameColumns(fn func(string) string) error {
	seen := make(map[string]struct{}, len(f.Columns))
	renamed := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		n := fn(c.Name)
		if _, ok := seen[n]; ok {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateColumn, n)
		}
		seen[n] = struct{}{}
		renamed[i] = n
	}
	for i := range f.Columns {
		f.Columns[i].Name = renamed[i]
	}
	return nil
}

// InferNumeric converts object columns to int64 when every value is an integer,
// or to float64 when every value is a number. Empty cells become NaN and force float64.
func (f *Frame) InferNumeric() {
	for i, c := range f.Columns {
		if c.DType != DTypeObject || len(c.Strings) == 0 {
			continue
		}
		if ints, ok := parseInts(c.Strings); ok {
			f.Columns[i] = Column{Name: c.Name, DType: DTypeInt64, Ints: ints}
			continue
		}
		if floats, ok := parseFloats(c.Strings); ok {
			f.Columns[i] = Column{Name: c.Name, DType: DTypeFloat64, Floats: floats}
		}
	}
}

func parseInts(vs []string) ([]int64, bool) {
	out := make([]int64, len(vs))
	for i, v := range vs {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func parseFloats(vs []string) ([]float64, bool) {
	out := make([]float64, len(vs))
	numeric := 0
	for i, v := range vs {
		v = strings.TrimSpace(v)
		if v == "" {
			out[i] = math.NaN()
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		out[i] = x
		numeric++
	}
	return out, numeric > 0
}

// ToDatetime converts the named object column to datetime64[ns].
// A column that is already datetime is left untouched.
func (f *Frame) ToDatetime(name string, layouts ...string) error {
	i := f.columnIndex(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", domain.ErrColumnNotFound, name)
	}
	c := f.Columns[i]
	if c.DType == DTypeDatetime64NS {
		return nil
	}
	if c.DType != DTypeObject {
		return fmt.Errorf("%w: column %q has dtype %s", domain.ErrUnparsableDatetime, name, c.DType)
	}
	if len(layouts) == 0 {
		layouts = DefaultDatetimeLayouts
	}

	times := make([]time.Time, len(c.Strings))
	for r, v := range c.Strings {
		t, err := parseTime(strings.TrimSpace(v), layouts)
		if err != nil {
			return fmt.Errorf("%w: column %q row %d: %q", domain.ErrUnparsableDatetime, name, r, v)
		}
		times[r] = t
	}
	f.Columns[i] = Column{Name: c.Name, DType: DTypeDatetime64NS, Times: times}
	return nil
}

func parseTime(v string, layouts []string) (time.Time, error) {
	var err error
	for _, l := range layouts {
		var t time.Time
		if t, err = time.Parse(l, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

// SetIndex moves the named data column into the index, replacing the current index.
func (f *Frame) SetIndex(name string) error {
	i := f.columnIndex(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", domain.ErrColumnNotFound, name)
	}
	f.Index = f.Columns[i]
	f.Columns = append(f.Columns[:i:i], f.Columns[i+1:]...)
	return nil
}

// SortIndex stably orders rows by a datetime index, oldest first.
// Frames with a non-datetime index are left as is.
func (f *Frame) SortIndex() {
	if f.Index.DType != DTypeDatetime64NS {
		return
	}
	perm := make([]int, f.Len())
	for i := range perm {
		perm[i] = i
	}
	ts := f.Index.Times
	sort.SliceStable(perm, func(a, b int) bool {
		return ts[perm[a]].Before(ts[perm[b]])
	})

	f.Index = f.Index.take(perm)
	for i, c := range f.Columns {
		f.Columns[i] = c.take(perm)
	}
}

// Summary describes the frame's shape as a Result for the given challenge.
func (f *Frame) Summary(challenge string) Result {
	return Result{
		Challenge: challenge,
		IndexName: f.Index.Name,
		IndexType: f.Index.DType,
		Columns:   f.ColumnNames(),
		Rows:      f.Len(),
	}
}
