package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSynthesizeSchema(t *testing.T) {
	f := Synthesize(50, 7)
	names := f.Names()
	if len(names) != 12 {
		t.Fatalf("expected 12 columns, got %d", len(names))
	}
	for i, want := range Schema {
		if names[i] != want {
			t.Errorf("column %d: got %q, want %q", i, names[i], want)
		}
	}
	if f.Len() != 50 {
		t.Fatalf("expected 50 rows, got %d", f.Len())
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	a := Synthesize(100, 42)
	b := Synthesize(100, 42)
	pa := a.Col(ColPurchase).Floats
	pb := b.Col(ColPurchase).Floats
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("row %d: %v != %v for identical seeds", i, pa[i], pb[i])
		}
	}
	c := Synthesize(100, 43)
	same := true
	for i, v := range c.Col(ColPurchase).Floats {
		if v != pa[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical purchases")
	}
}

func TestLoadSchemaRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "purchases.csv")
	src := Synthesize(30, 3)
	if err := WriteCSV(src, path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Names()) != 12 {
		t.Fatalf("expected 12 columns, got %d", len(got.Names()))
	}
	if got.Len() != 30 {
		t.Fatalf("expected 30 rows, got %d", got.Len())
	}
	// missing cells survive the round trip as NaN
	srcMiss := src.Col(ColProductCategory3).Missing()
	gotMiss := got.Col(ColProductCategory3).Missing()
	if srcMiss != gotMiss {
		t.Errorf("missing count changed: wrote %d, read %d", srcMiss, gotMiss)
	}
}

func TestLoadRejectsWrongHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for wrong header")
	}
}

func TestAcquireFallsBackToSynthetic(t *testing.T) {
	f, synthesized, err := Acquire(filepath.Join(t.TempDir(), "absent.csv"), 25, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !synthesized {
		t.Fatal("expected synthetic fallback for a missing file")
	}
	if f.Len() != 25 {
		t.Fatalf("expected 25 rows, got %d", f.Len())
	}
}

func TestImputeFillsDesignatedColumns(t *testing.T) {
	f := Synthesize(200, 11)
	if f.Col(ColProductCategory2).Missing() == 0 {
		t.Fatal("fixture should contain missing values")
	}
	g, err := Impute(f, ImputedColumns...)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range ImputedColumns {
		if n := g.Col(name).Missing(); n != 0 {
			t.Errorf("%s: %d missing entries after imputation", name, n)
		}
	}
	// untouched columns share backing storage, imputed ones do not
	if f.Col(ColProductCategory2).Missing() == 0 {
		t.Error("imputation mutated the source frame")
	}
}

func TestEncodeDropsBaseline(t *testing.T) {
	f := NewFrame()
	if err := f.AddCategorical("City", []string{"A", "B", "C", "B", "A"}); err != nil {
		t.Fatal(err)
	}
	if err := f.AddNumeric("Amount", []float64{1, 2, 3, 4, 5}); err != nil {
		t.Fatal(err)
	}
	g, err := Encode(f)
	if err != nil {
		t.Fatal(err)
	}
	names := g.Names()
	want := []string{"City_B", "City_C", "Amount"}
	if len(names) != len(want) {
		t.Fatalf("got columns %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("column %d: got %q, want %q", i, names[i], want[i])
		}
	}
	// three distinct city levels become two indicators
	if g.Col("City_B").Floats[1] != 1 || g.Col("City_B").Floats[0] != 0 {
		t.Error("City_B indicator wrong")
	}
	if g.Col("City_C").Floats[2] != 1 {
		t.Error("City_C indicator wrong")
	}
}

func TestEncodeIndicatorCountPerCategorical(t *testing.T) {
	f := Synthesize(500, 5)
	g, err := Prepare(f)
	if err != nil {
		t.Fatal(err)
	}
	for _, raw := range CategoricalColumns {
		k := len(f.Col(raw).Levels())
		count := 0
		for _, name := range g.Names() {
			if len(name) > len(raw) && name[:len(raw)+1] == raw+"_" {
				count++
			}
		}
		if count != k-1 {
			t.Errorf("%s: %d levels produced %d indicators, want %d", raw, k, count, k-1)
		}
	}
}

func TestSplitSizes(t *testing.T) {
	f := Synthesize(1000, 42)
	g, err := Prepare(f)
	if err != nil {
		t.Fatal(err)
	}
	train, test, err := Split(g, 0.2, 42)
	if err != nil {
		t.Fatal(err)
	}
	if train.Len() != 800 || test.Len() != 200 {
		t.Fatalf("split sizes: train %d, test %d; want 800/200", train.Len(), test.Len())
	}
	// the same seed must reproduce the same partition
	train2, _, err := Split(g, 0.2, 42)
	if err != nil {
		t.Fatal(err)
	}
	a := train.Col(ColPurchase).Floats
	b := train2.Col(ColPurchase).Floats
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d differs between identical splits", i)
		}
	}
}

func TestMatrixExtraction(t *testing.T) {
	f := Synthesize(100, 9)
	g, err := Prepare(f)
	if err != nil {
		t.Fatal(err)
	}
	X, y, features, err := g.Matrix(ColPurchase)
	if err != nil {
		t.Fatal(err)
	}
	if len(X) != 100 || len(y) != 100 {
		t.Fatalf("expected 100 rows, got %d/%d", len(X), len(y))
	}
	if len(features) != len(X[0]) {
		t.Fatalf("%d feature names for %d columns", len(features), len(X[0]))
	}
	for _, name := range features {
		if name == ColPurchase {
			t.Fatal("target leaked into feature names")
		}
	}
	for i, row := range X {
		for j, v := range row {
			if math.IsNaN(v) {
				t.Fatalf("NaN at row %d, feature %s after preparation", i, features[j])
			}
		}
	}
}

func TestHeadRendersRows(t *testing.T) {
	f := Synthesize(10, 1)
	out := f.Head(3)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], ColUserID+" | "+ColProductID) {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	for i, line := range lines {
		if got := strings.Count(line, " | "); got != 11 {
			t.Errorf("line %d: expected 11 separators, got %d", i, got)
		}
	}
	if f.Head(100) == "" {
		t.Fatal("Head with n beyond row count should still render")
	}
}
