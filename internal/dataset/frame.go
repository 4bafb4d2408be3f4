package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind distinguishes how a column stores its values.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

// Column is a single named column. Numeric columns keep float64 values with
// NaN marking a missing entry; categorical columns keep strings with ""
// marking a missing entry.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// Missing counts missing entries.
func (c *Column) Missing() int {
	n := 0
	if c.Kind == Numeric {
		for _, v := range c.Floats {
			if math.IsNaN(v) {
				n++
			}
		}
		return n
	}
	for _, v := range c.Strings {
		if v == "" {
			n++
		}
	}
	return n
}

// Levels returns the distinct non-missing values of a categorical column in
// first-seen order.
func (c *Column) Levels() []string {
	seen := make(map[string]bool, 8)
	var out []string
	for _, v := range c.Strings {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Frame is a column-oriented table. Rows have no identity beyond position.
type Frame struct {
	cols   []*Column
	byName map[string]int
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{byName: make(map[string]int)}
}

// Len returns the row count (zero for an empty frame).
func (f *Frame) Len() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].Len()
}

// Names returns column names in insertion order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Name
	}
	return out
}

// Col returns the named column or nil.
func (f *Frame) Col(name string) *Column {
	i, ok := f.byName[name]
	if !ok {
		return nil
	}
	return f.cols[i]
}

// Columns returns all columns in insertion order.
func (f *Frame) Columns() []*Column {
	return f.cols
}

func (f *Frame) add(c *Column) error {
	if _, dup := f.byName[c.Name]; dup {
		return fmt.Errorf("duplicate column %q", c.Name)
	}
	if len(f.cols) > 0 && c.Len() != f.Len() {
		return fmt.Errorf("column %q has %d rows, frame has %d", c.Name, c.Len(), f.Len())
	}
	f.byName[c.Name] = len(f.cols)
	f.cols = append(f.cols, c)
	return nil
}

// AddNumeric appends a numeric column.
func (f *Frame) AddNumeric(name string, vals []float64) error {
	return f.add(&Column{Name: name, Kind: Numeric, Floats: vals})
}

// AddCategorical appends a categorical column.
func (f *Frame) AddCategorical(name string, vals []string) error {
	return f.add(&Column{Name: name, Kind: Categorical, Strings: vals})
}

// Drop returns a new frame without the named columns. Unknown names are
// ignored.
func (f *Frame) Drop(names ...string) *Frame {
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		skip[n] = true
	}
	out := NewFrame()
	for _, c := range f.cols {
		if skip[c.Name] {
			continue
		}
		// columns are shared, not copied; frames are immutable by convention
		out.byName[c.Name] = len(out.cols)
		out.cols = append(out.cols, c)
	}
	return out
}

// Take returns a new frame containing the rows at the given indices, in order.
func (f *Frame) Take(idx []int) *Frame {
	out := NewFrame()
	for _, c := range f.cols {
		nc := &Column{Name: c.Name, Kind: c.Kind}
		if c.Kind == Numeric {
			nc.Floats = make([]float64, len(idx))
			for i, j := range idx {
				nc.Floats[i] = c.Floats[j]
			}
		} else {
			nc.Strings = make([]string, len(idx))
			for i, j := range idx {
				nc.Strings[i] = c.Strings[j]
			}
		}
		out.byName[nc.Name] = len(out.cols)
		out.cols = append(out.cols, nc)
	}
	return out
}

// Head renders the first n rows as a pipe-separated table, a header line
// followed by one line per row. Missing cells render empty.
func (f *Frame) Head(n int) string {
	if n > f.Len() {
		n = f.Len()
	}
	var b strings.Builder
	for i, c := range f.cols {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(c.Name)
	}
	b.WriteString("\n")
	for i := 0; i < n; i++ {
		for j, c := range f.cols {
			if j > 0 {
				b.WriteString(" | ")
			}
			if c.Kind == Numeric {
				if !math.IsNaN(c.Floats[i]) {
					b.WriteString(strconv.FormatFloat(c.Floats[i], 'g', -1, 64))
				}
			} else {
				b.WriteString(c.Strings[i])
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Matrix extracts all numeric columns except the named target into a row-major
// feature matrix, returning the matrix, the target vector, and feature names.
func (f *Frame) Matrix(target string) (X [][]float64, y []float64, features []string, err error) {
	tc := f.Col(target)
	if tc == nil {
		return nil, nil, nil, fmt.Errorf("target column %q not found", target)
	}
	if tc.Kind != Numeric {
		return nil, nil, nil, fmt.Errorf("target column %q is not numeric", target)
	}
	for _, c := range f.cols {
		if c.Name == target {
			continue
		}
		if c.Kind != Numeric {
			return nil, nil, nil, fmt.Errorf("column %q is not numeric; encode before extracting", c.Name)
		}
		features = append(features, c.Name)
	}
	n := f.Len()
	X = make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, 0, len(features))
		for _, name := range features {
			row = append(row, f.Col(name).Floats[i])
		}
		X[i] = row
	}
	y = make([]float64, n)
	copy(y, tc.Floats)
	return X, y, features, nil
}
