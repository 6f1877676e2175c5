// Package eval turns human annotations of system verdicts into confusion
// tallies and the usual derived metrics.
//
// The labeling convention is verdict-correctness: the system's positive
// prediction is a final verdict of Yes, any other verdict is negative, and
// the human label says whether that prediction was right. The label is not a
// ground-truth judgment of the claim itself.
package eval

import "github.com/veridict/veridict/internal/model"

// Tally is a 2x2 confusion matrix over annotated claims. It is derived
// state: always recomputed from annotation records, never stored.
type Tally struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	TN int `json:"tn"`
	FN int `json:"fn"`
}

// Total returns the number of annotated claims behind the tally
func (t Tally) Total() int {
	return t.TP + t.FP + t.TN + t.FN
}

// Add accumulates another tally into t
func (t *Tally) Add(other Tally) {
	t.TP += other.TP
	t.FP += other.FP
	t.TN += other.TN
	t.FN += other.FN
}

// Count tallies one annotated verdict.
//
//	verdict Yes, label correct    -> TP
//	verdict Yes, label incorrect  -> FP
//	verdict No/Uncertain, correct -> TN
//	otherwise                     -> FN
func (t *Tally) Count(verdict model.Verdict, label model.AnnotationLabel) {
	positive := verdict == model.VerdictYes
	correct := label == model.AnnotationCorrect

	switch {
	case positive && correct:
		t.TP++
	case positive && !correct:
		t.FP++
	case !positive && correct:
		t.TN++
	default:
		t.FN++
	}
}

// TallyRecords builds a tally from annotation records. Every record counts
// exactly once, so Total() always equals len(records).
func TallyRecords(records []model.AnnotationRecord) Tally {
	var t Tally
	for _, r := range records {
		t.Count(r.Verdict, r.Label)
	}
	return t
}
