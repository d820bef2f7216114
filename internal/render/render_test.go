package render_test

import (
	"strings"
	"testing"

	"github.com/alnah/go-fcp/internal/fcp"
	"github.com/alnah/go-fcp/internal/render"
)

func TestTableAlignsColumns(t *testing.T) {
	t.Parallel()

	out := render.Table(
		[]string{"ID", "NAME"},
		[][]string{
			{"f1", "Rolled Oats"},
			{"f2345", "Rye"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("line count = %d, want header + 2 rows", len(lines))
	}
	// Both data rows start their NAME column at the same offset.
	oats := strings.Index(lines[1], "Rolled Oats")
	rye := strings.Index(lines[2], "Rye")
	if oats != rye {
		t.Errorf("column offsets differ: %d vs %d\n%s", oats, rye, out)
	}
}

func TestFoods(t *testing.T) {
	t.Parallel()

	t.Run("empty result has a friendly message", func(t *testing.T) {
		t.Parallel()

		out := render.Foods(nil)
		if !strings.Contains(out, "no foods found") {
			t.Errorf("output = %q, want empty-state message", out)
		}
	})

	t.Run("rows carry name and macros", func(t *testing.T) {
		t.Parallel()

		out := render.Foods([]fcp.Food{
			{ID: "f1", Name: "Rolled Oats", Calories: 380, Protein: 13.2},
		})
		for _, want := range []string{"Rolled Oats", "380", "13.2g"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}

func TestSummary(t *testing.T) {
	t.Parallel()

	out := render.Summary(fcp.DailySummary{
		Date:    "2026-08-30",
		Totals:  fcp.Nutrition{Calories: 1840, Protein: 92},
		Entries: []fcp.MealEntry{{Name: "Oats"}, {Name: "Lentil soup"}},
	})

	for _, want := range []string{"2026-08-30", "1840", "2 meals logged"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLabelWarnings(t *testing.T) {
	t.Parallel()

	out := render.Label(fcp.LabelAnalysis{
		ProductName: "Choco Bar",
		PerServing:  fcp.Nutrition{Calories: 520},
		Warnings:    []string{"high added sugar"},
	})

	if !strings.Contains(out, "Choco Bar") || !strings.Contains(out, "high added sugar") {
		t.Errorf("output missing product or warning:\n%s", out)
	}
}
