package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Load reads a purchase dataset from a CSV file. The header must contain
// exactly the twelve schema columns in canonical order. Empty cells in
// numeric columns become NaN.
func Load(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(Schema) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(Schema), len(header))
	}
	for i, want := range Schema {
		if strings.TrimSpace(header[i]) != want {
			return nil, fmt.Errorf("column %d: expected %q, got %q", i, want, header[i])
		}
	}

	nums := make(map[string][]float64)
	strs := make(map[string][]string)
	rows := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", rows+1, err)
		}
		rows++
		for j, name := range Schema {
			v := strings.TrimSpace(rec[j])
			if kindOf(name) == Categorical {
				strs[name] = append(strs[name], v)
				continue
			}
			if v == "" {
				nums[name] = append(nums[name], math.NaN())
				continue
			}
			x, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				return nil, fmt.Errorf("row %d, column %s: parse %q: %w", rows, name, v, perr)
			}
			nums[name] = append(nums[name], x)
		}
	}

	out := NewFrame()
	for _, name := range Schema {
		if kindOf(name) == Categorical {
			if err := out.AddCategorical(name, strs[name]); err != nil {
				return nil, err
			}
		} else if err := out.AddNumeric(name, nums[name]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Acquire loads the dataset at path, falling back to a synthesized table when
// the file does not exist. Any other load failure propagates.
func Acquire(path string, rows int, seed int64) (*Frame, bool, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			f, lerr := Load(path)
			if lerr != nil {
				return nil, false, lerr
			}
			return f, false, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, false, fmt.Errorf("stat %s: %w", path, err)
		}
	}
	f := Synthesize(rows, seed)
	return f, true, nil
}

// WriteCSV writes a frame in canonical schema order. Missing numeric entries
// are written as empty cells.
func WriteCSV(f *Frame, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(f.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(f.Columns()))
	for i := 0; i < f.Len(); i++ {
		for j, c := range f.Columns() {
			if c.Kind == Categorical {
				rec[j] = c.Strings[i]
				continue
			}
			v := c.Floats[i]
			if math.IsNaN(v) {
				rec[j] = ""
			} else {
				rec[j] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	return w.Error()
}
