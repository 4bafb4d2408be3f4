package eda

import (
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/spendloom-cli/internal/dataset"
)

func fixtureFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	f := dataset.NewFrame()
	if err := f.AddCategorical(dataset.ColGender, []string{"F", "M", "F", "M", "F", "M"}); err != nil {
		t.Fatal(err)
	}
	if err := f.AddNumeric(dataset.ColProductCategory1, []float64{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatal(err)
	}
	if err := f.AddNumeric(dataset.ColProductCategory2, []float64{2, math.NaN(), 6, 8, math.NaN(), 12}); err != nil {
		t.Fatal(err)
	}
	if err := f.AddNumeric(dataset.ColPurchase, []float64{100, 200, 300, 400, 500, 600}); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSummarizeColumns(t *testing.T) {
	s, err := Summarize(fixtureFrame(t), dataset.ColPurchase)
	if err != nil {
		t.Fatal(err)
	}
	if s.Rows != 6 {
		t.Fatalf("rows: got %d, want 6", s.Rows)
	}
	byName := map[string]ColumnSummary{}
	for _, c := range s.Cols {
		byName[c.Name] = c
	}
	g := byName[dataset.ColGender]
	if g.Kind != "categorical" || g.Unique != 2 {
		t.Errorf("gender summary wrong: %+v", g)
	}
	c2 := byName[dataset.ColProductCategory2]
	if c2.Missing != 2 || c2.NonNull != 4 {
		t.Errorf("category 2 missingness wrong: %+v", c2)
	}
	p := byName[dataset.ColPurchase]
	if math.Abs(p.Mean-350) > 1e-9 {
		t.Errorf("purchase mean: got %v, want 350", p.Mean)
	}
	if p.Min != 100 || p.Max != 600 {
		t.Errorf("purchase range: got [%v,%v], want [100,600]", p.Min, p.Max)
	}
}

func TestSummarizeTargetQuantiles(t *testing.T) {
	s, err := Summarize(fixtureFrame(t), dataset.ColPurchase)
	if err != nil {
		t.Fatal(err)
	}
	ts := s.Target
	if ts.Median < ts.Q25 || ts.Q75 < ts.Median {
		t.Errorf("quantiles out of order: q25=%v median=%v q75=%v", ts.Q25, ts.Median, ts.Q75)
	}
	if len(ts.Values) != 6 {
		t.Errorf("target values: got %d, want 6", len(ts.Values))
	}
}

func TestSummarizeGroupMeans(t *testing.T) {
	s, err := Summarize(fixtureFrame(t), dataset.ColPurchase)
	if err != nil {
		t.Fatal(err)
	}
	var gm *GroupMeans
	for i := range s.Groups {
		if s.Groups[i].Column == dataset.ColGender {
			gm = &s.Groups[i]
		}
	}
	if gm == nil {
		t.Fatal("no group means for gender")
	}
	// levels sorted: F then M
	if gm.Levels[0] != "F" || gm.Levels[1] != "M" {
		t.Fatalf("levels: got %v", gm.Levels)
	}
	if math.Abs(gm.Means[0]-300) > 1e-9 { // (100+300+500)/3
		t.Errorf("F mean: got %v, want 300", gm.Means[0])
	}
	if math.Abs(gm.Means[1]-400) > 1e-9 { // (200+400+600)/3
		t.Errorf("M mean: got %v, want 400", gm.Means[1])
	}
}

func TestSummarizeCorrelations(t *testing.T) {
	s, err := Summarize(fixtureFrame(t), dataset.ColPurchase)
	if err != nil {
		t.Fatal(err)
	}
	if s.Corr == nil {
		t.Fatal("no correlation matrix")
	}
	idx := map[string]int{}
	for i, c := range s.Corr.Columns {
		idx[c] = i
	}
	i, j := idx[dataset.ColProductCategory1], idx[dataset.ColPurchase]
	// category 1 and purchase are perfectly linearly related in the fixture
	if math.Abs(s.Corr.Values[i][j]-1) > 1e-9 {
		t.Errorf("corr(cat1, purchase): got %v, want 1", s.Corr.Values[i][j])
	}
	if s.Corr.Values[i][j] != s.Corr.Values[j][i] {
		t.Error("matrix not symmetric")
	}
	for k := range s.Corr.Columns {
		if s.Corr.Values[k][k] != 1 {
			t.Errorf("diagonal at %d: got %v, want 1", k, s.Corr.Values[k][k])
		}
	}
}

func TestCorrelationSkipsMissingPairs(t *testing.T) {
	// category 2 is 2*category 1 wherever present
	s, err := Summarize(fixtureFrame(t), dataset.ColPurchase)
	if err != nil {
		t.Fatal(err)
	}
	idx := map[string]int{}
	for i, c := range s.Corr.Columns {
		idx[c] = i
	}
	r := s.Corr.Values[idx[dataset.ColProductCategory1]][idx[dataset.ColProductCategory2]]
	if math.Abs(r-1) > 1e-9 {
		t.Errorf("pairwise-complete corr: got %v, want 1", r)
	}
}

func TestMarkdownSections(t *testing.T) {
	s, err := Summarize(fixtureFrame(t), dataset.ColPurchase)
	if err != nil {
		t.Fatal(err)
	}
	md := s.Markdown()
	for _, section := range []string{"[DATASET SUMMARY]", "[SCHEMA]", "[TARGET]", "[MEAN PURCHASE BY CATEGORY]", "[CORRELATIONS]"} {
		if !strings.Contains(md, section) {
			t.Errorf("markdown missing section %s", section)
		}
	}
	if !strings.Contains(md, "Rows: 6") {
		t.Error("markdown missing row count")
	}
}

func TestSummarizeRequiresNumericTarget(t *testing.T) {
	f := dataset.NewFrame()
	if err := f.AddCategorical("Only", []string{"a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := Summarize(f, "Only"); err == nil {
		t.Fatal("expected error for categorical target")
	}
	if _, err := Summarize(f, "Absent"); err == nil {
		t.Fatal("expected error for missing target")
	}
}
