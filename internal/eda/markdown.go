package eda

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Markdown renders a compact transcript of the summary.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Rows: %d\nColumns: %d\n\n", s.Rows, len(s.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range s.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", c.Name, c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case "numeric":
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
		case "categorical":
			if len(c.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", kv.Value, kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n[TARGET]\n")
	t := s.Target
	b.WriteString(fmt.Sprintf("- mean %.2f, std %.2f, min %.0f, q25 %.0f, median %.0f, q75 %.0f, max %.0f\n",
		t.Mean, t.Std, t.Min, t.Q25, t.Median, t.Q75, t.Max))

	if len(s.Groups) > 0 {
		b.WriteString("\n[MEAN PURCHASE BY CATEGORY]\n")
		for _, g := range s.Groups {
			b.WriteString(fmt.Sprintf("- %s:\n", g.Column))
			for i, lv := range g.Levels {
				b.WriteString(fmt.Sprintf("  • %s: %.2f (n=%d)\n", lv, g.Means[i], g.Counts[i]))
			}
		}
	}

	if s.Corr != nil && len(s.Corr.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		type pr struct {
			A, B string
			R    float64
		}
		var pairs []pr
		n := len(s.Corr.Columns)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				pairs = append(pairs, pr{s.Corr.Columns[i], s.Corr.Columns[j], s.Corr.Values[i][j]})
			}
		}
		sort.Slice(pairs, func(i, j int) bool {
			ai, aj := math.Abs(pairs[i].R), math.Abs(pairs[j].R)
			if ai == aj {
				return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
			}
			return ai > aj
		})
		if len(pairs) > 10 {
			pairs = pairs[:10]
		}
		for _, p := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}
	return b.String()
}
