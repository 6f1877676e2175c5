package eval

import (
	"fmt"
	"sort"
	"strings"
)

// Metrics are the standard derived rates for one tally. Every rate is 0 when
// its denominator is 0; the computation never panics on degenerate input.
type Metrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Accuracy  float64 `json:"accuracy"`
	Annotated int     `json:"annotated"`
}

// ComputeMetrics derives precision, recall, F1 and accuracy from a tally
func ComputeMetrics(t Tally) Metrics {
	m := Metrics{Annotated: t.Total()}

	if denom := t.TP + t.FP; denom > 0 {
		m.Precision = float64(t.TP) / float64(denom)
	}
	if denom := t.TP + t.FN; denom > 0 {
		m.Recall = float64(t.TP) / float64(denom)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	if total := t.Total(); total > 0 {
		m.Accuracy = float64(t.TP+t.TN) / float64(total)
	}
	return m
}

// ModelReport holds the evaluation of one target model across all of its
// annotated question sessions.
type ModelReport struct {
	Target    string  `json:"target"`
	Questions int     `json:"questions"`
	Tally     Tally   `json:"tally"`
	Micro     Metrics `json:"micro"`
	Macro     Metrics `json:"macro"`
}

// Aggregate combines per-question tallies for one target. Micro metrics pool
// every annotation into one tally; macro metrics average the per-question
// rates, giving each question equal weight regardless of claim count.
// Questions with no annotations are skipped entirely.
func Aggregate(target string, perQuestion []Tally) ModelReport {
	report := ModelReport{Target: target}

	var sum Metrics
	for _, t := range perQuestion {
		if t.Total() == 0 {
			continue
		}
		report.Questions++
		report.Tally.Add(t)

		m := ComputeMetrics(t)
		sum.Precision += m.Precision
		sum.Recall += m.Recall
		sum.F1 += m.F1
		sum.Accuracy += m.Accuracy
	}

	report.Micro = ComputeMetrics(report.Tally)
	if report.Questions > 0 {
		n := float64(report.Questions)
		report.Macro = Metrics{
			Precision: sum.Precision / n,
			Recall:    sum.Recall / n,
			F1:        sum.F1 / n,
			Accuracy:  sum.Accuracy / n,
			Annotated: report.Tally.Total(),
		}
	}
	return report
}

// ComparisonReport renders a plain-text table comparing model reports,
// sorted by micro F1 descending.
func ComparisonReport(reports []ModelReport) string {
	sorted := make([]ModelReport, len(reports))
	copy(sorted, reports)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Micro.F1 != sorted[j].Micro.F1 {
			return sorted[i].Micro.F1 > sorted[j].Micro.F1
		}
		return sorted[i].Target < sorted[j].Target
	})

	var b strings.Builder
	b.WriteString("Model Evaluation (verdict-correctness)\n")
	b.WriteString("======================================\n\n")
	fmt.Fprintf(&b, "%-12s %9s %9s %9s %9s %10s %10s\n",
		"model", "precision", "recall", "f1", "accuracy", "annotated", "questions")

	for _, r := range sorted {
		fmt.Fprintf(&b, "%-12s %9.3f %9.3f %9.3f %9.3f %10d %10d\n",
			r.Target, r.Micro.Precision, r.Micro.Recall, r.Micro.F1,
			r.Micro.Accuracy, r.Micro.Annotated, r.Questions)
	}

	b.WriteString("\nConfusion totals\n")
	for _, r := range sorted {
		fmt.Fprintf(&b, "%-12s TP=%d FP=%d TN=%d FN=%d\n",
			r.Target, r.Tally.TP, r.Tally.FP, r.Tally.TN, r.Tally.FN)
	}
	return b.String()
}
