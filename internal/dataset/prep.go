package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Impute fills missing entries of the given numeric columns with zero,
// returning a new frame. Postcondition: the named columns contain no NaN.
func Impute(f *Frame, names ...string) (*Frame, error) {
	fill := make(map[string]bool, len(names))
	for _, n := range names {
		c := f.Col(n)
		if c == nil {
			return nil, fmt.Errorf("impute: column %q not found", n)
		}
		if c.Kind != Numeric {
			return nil, fmt.Errorf("impute: column %q is not numeric", n)
		}
		fill[n] = true
	}
	out := NewFrame()
	for _, c := range f.Columns() {
		if !fill[c.Name] {
			out.byName[c.Name] = len(out.cols)
			out.cols = append(out.cols, c)
			continue
		}
		vals := make([]float64, len(c.Floats))
		for i, v := range c.Floats {
			if math.IsNaN(v) {
				vals[i] = 0
			} else {
				vals[i] = v
			}
		}
		if err := out.AddNumeric(c.Name, vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Encode dummy-expands every categorical column into indicator columns, one
// per level except the lexicographically first, which serves as the baseline.
// Numeric columns pass through unchanged. Column order: originals in frame
// order, each categorical replaced in place by its indicators.
func Encode(f *Frame) (*Frame, error) {
	out := NewFrame()
	for _, c := range f.Columns() {
		if c.Kind == Numeric {
			out.byName[c.Name] = len(out.cols)
			out.cols = append(out.cols, c)
			continue
		}
		levels := c.Levels()
		sort.Strings(levels)
		if len(levels) < 2 {
			// constant column carries no information after dropping baseline
			continue
		}
		for _, lv := range levels[1:] {
			vals := make([]float64, len(c.Strings))
			for i, v := range c.Strings {
				if v == lv {
					vals[i] = 1
				}
			}
			name := c.Name + "_" + lv
			if err := out.AddNumeric(name, vals); err != nil {
				return nil, fmt.Errorf("encode %s: %w", c.Name, err)
			}
		}
	}
	return out, nil
}

// Prepare runs the full preparation sequence: drop identifiers, impute the
// product-category columns, dummy-encode the categoricals.
func Prepare(f *Frame) (*Frame, error) {
	g := f.Drop(IdentifierColumns...)
	g, err := Impute(g, ImputedColumns...)
	if err != nil {
		return nil, err
	}
	return Encode(g)
}

// Split partitions a frame into train and test rows. The permutation is
// drawn from seed, the test partition takes floor(rows*testFrac) rows, and
// the remainder trains.
func Split(f *Frame, testFrac float64, seed int64) (train, test *Frame, err error) {
	if testFrac <= 0 || testFrac >= 1 {
		return nil, nil, fmt.Errorf("test fraction %v out of range (0,1)", testFrac)
	}
	n := f.Len()
	idx := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(float64(n) * testFrac)
	return f.Take(idx[nTest:]), f.Take(idx[:nTest]), nil
}
