package eval

import (
	"errors"
	"io/fs"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/veridict/veridict/internal/model"
)

func record(verdict model.Verdict, label model.AnnotationLabel) model.AnnotationRecord {
	return model.AnnotationRecord{Verdict: verdict, Label: label, AnnotatedAt: time.Now()}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTallyRecords(t *testing.T) {
	records := []model.AnnotationRecord{
		record(model.VerdictYes, model.AnnotationCorrect),       // TP
		record(model.VerdictYes, model.AnnotationIncorrect),     // FP
		record(model.VerdictNo, model.AnnotationCorrect),        // TN
		record(model.VerdictNo, model.AnnotationIncorrect),      // FN
		record(model.VerdictUncertain, model.AnnotationCorrect), // TN: uncertain is a negative prediction
	}

	tally := TallyRecords(records)

	if tally.TP != 1 || tally.FP != 1 || tally.TN != 2 || tally.FN != 1 {
		t.Errorf("tally = %+v, want TP=1 FP=1 TN=2 FN=1", tally)
	}
	if tally.Total() != len(records) {
		t.Errorf("total = %d, want %d", tally.Total(), len(records))
	}
}

func TestTallyTotalInvariant(t *testing.T) {
	// every verdict/label combination lands in exactly one cell
	verdicts := []model.Verdict{model.VerdictYes, model.VerdictNo, model.VerdictUncertain}
	labels := []model.AnnotationLabel{model.AnnotationCorrect, model.AnnotationIncorrect}

	var records []model.AnnotationRecord
	for _, v := range verdicts {
		for _, l := range labels {
			records = append(records, record(v, l))
		}
	}

	if tally := TallyRecords(records); tally.Total() != len(records) {
		t.Errorf("total = %d, want %d", tally.Total(), len(records))
	}
}

func TestComputeMetrics(t *testing.T) {
	// 5 annotated claims: 3 TP, 0 FP, 1 TN, 1 FN
	m := ComputeMetrics(Tally{TP: 3, FP: 0, TN: 1, FN: 1})

	if !almostEqual(m.Precision, 1.0) {
		t.Errorf("precision = %v, want 1.0", m.Precision)
	}
	if !almostEqual(m.Recall, 0.75) {
		t.Errorf("recall = %v, want 0.75", m.Recall)
	}
	if !almostEqual(m.F1, 2*1.0*0.75/1.75) {
		t.Errorf("f1 = %v", m.F1)
	}
	if !almostEqual(m.Accuracy, 0.8) {
		t.Errorf("accuracy = %v, want 0.8", m.Accuracy)
	}
	if m.Annotated != 5 {
		t.Errorf("annotated = %d, want 5", m.Annotated)
	}
}

func TestComputeMetricsZeroTally(t *testing.T) {
	m := ComputeMetrics(Tally{})
	if m.Precision != 0 || m.Recall != 0 || m.F1 != 0 || m.Accuracy != 0 {
		t.Errorf("zero tally should yield zero metrics, got %+v", m)
	}
}

func TestComputeMetricsAllNegativeCorrect(t *testing.T) {
	// Every verdict was No and every annotation "correct": nothing predicted
	// positive, so precision/recall/F1 are 0 but accuracy is perfect.
	m := ComputeMetrics(Tally{TN: 4})

	if m.Precision != 0 || m.Recall != 0 || m.F1 != 0 {
		t.Errorf("expected zero precision/recall/f1, got %+v", m)
	}
	if !almostEqual(m.Accuracy, 1.0) {
		t.Errorf("accuracy = %v, want 1.0", m.Accuracy)
	}
}

func TestAggregateMicroMacro(t *testing.T) {
	// Question 1: perfect. Question 2: half right. Micro pools the counts,
	// macro averages the per-question rates.
	report := Aggregate("mistral", []Tally{
		{TP: 2, TN: 2},
		{TP: 1, FP: 1, FN: 1, TN: 1},
		{}, // unannotated question, skipped
	})

	if report.Questions != 2 {
		t.Errorf("questions = %d, want 2", report.Questions)
	}
	if got := report.Tally; got.TP != 3 || got.FP != 1 || got.TN != 3 || got.FN != 1 {
		t.Errorf("pooled tally = %+v", got)
	}
	if !almostEqual(report.Micro.Precision, 0.75) {
		t.Errorf("micro precision = %v, want 0.75", report.Micro.Precision)
	}
	if !almostEqual(report.Macro.Precision, (1.0+0.5)/2) {
		t.Errorf("macro precision = %v, want 0.75", report.Macro.Precision)
	}
	if !almostEqual(report.Macro.Accuracy, (1.0+0.5)/2) {
		t.Errorf("macro accuracy = %v, want 0.75", report.Macro.Accuracy)
	}
}

func TestAggregateEmpty(t *testing.T) {
	report := Aggregate("mistral", nil)
	if report.Questions != 0 || report.Micro.Annotated != 0 {
		t.Errorf("empty aggregate = %+v", report)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	session := model.AnnotationSession{
		Target:     "mistral",
		QuestionID: "q1",
		Question:   "Who was Isaac Newton?",
		Records: []model.AnnotationRecord{
			{ClaimID: "c1", Verdict: model.VerdictYes, Label: model.AnnotationCorrect},
			{ClaimID: "c2", Verdict: model.VerdictNo, Label: model.AnnotationIncorrect},
		},
	}
	if err := store.Save(session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load("mistral", "q1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(loaded.Records))
	}
	if loaded.Records[0].ClaimID != "c1" || loaded.Records[1].Label != model.AnnotationIncorrect {
		t.Errorf("loaded session does not match saved: %+v", loaded)
	}
	if loaded.SavedAt.IsZero() {
		t.Error("SavedAt should be stamped on save")
	}
}

func TestStoreSaveReplacesSession(t *testing.T) {
	store := NewStore(t.TempDir())

	first := model.AnnotationSession{
		Target:     "mistral",
		QuestionID: "q1",
		Records:    []model.AnnotationRecord{{ClaimID: "c1", Verdict: model.VerdictYes, Label: model.AnnotationCorrect}},
	}
	if err := store.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := first
	second.Records = []model.AnnotationRecord{
		{ClaimID: "c1", Verdict: model.VerdictYes, Label: model.AnnotationIncorrect},
	}
	if err := store.Save(second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load("mistral", "q1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Records) != 1 || loaded.Records[0].Label != model.AnnotationIncorrect {
		t.Errorf("re-save should replace the session, got %+v", loaded.Records)
	}
}

func TestStoreRejectsInvalidLabel(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.Save(model.AnnotationSession{
		Target:     "mistral",
		QuestionID: "q1",
		Records:    []model.AnnotationRecord{{ClaimID: "c1", Verdict: model.VerdictYes, Label: "maybe"}},
	})
	if err == nil {
		t.Fatal("expected error for invalid label")
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.Load("mistral", "nope")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestStoreEvaluate(t *testing.T) {
	store := NewStore(t.TempDir())

	sessions := []model.AnnotationSession{
		{
			Target:     "mistral",
			QuestionID: "q1",
			Records: []model.AnnotationRecord{
				{ClaimID: "c1", Verdict: model.VerdictYes, Label: model.AnnotationCorrect},
				{ClaimID: "c2", Verdict: model.VerdictYes, Label: model.AnnotationCorrect},
			},
		},
		{
			Target:     "mistral",
			QuestionID: "q2",
			Records: []model.AnnotationRecord{
				{ClaimID: "c1", Verdict: model.VerdictYes, Label: model.AnnotationIncorrect},
				{ClaimID: "c2", Verdict: model.VerdictNo, Label: model.AnnotationCorrect},
			},
		},
	}
	for _, s := range sessions {
		if err := store.Save(s); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	report, err := store.Evaluate("mistral")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if report.Questions != 2 {
		t.Errorf("questions = %d, want 2", report.Questions)
	}
	if got := report.Tally; got.TP != 2 || got.FP != 1 || got.TN != 1 {
		t.Errorf("tally = %+v, want TP=2 FP=1 TN=1", got)
	}
	if !almostEqual(report.Micro.Precision, 2.0/3.0) {
		t.Errorf("micro precision = %v, want 2/3", report.Micro.Precision)
	}
}

func TestStoreEvaluateNoSessions(t *testing.T) {
	store := NewStore(t.TempDir())
	report, err := store.Evaluate("mistral")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if report.Questions != 0 {
		t.Errorf("questions = %d, want 0", report.Questions)
	}
}

func TestComparisonReport(t *testing.T) {
	reports := []ModelReport{
		Aggregate("mistral", []Tally{{TP: 1, FN: 1}}),
		Aggregate("gpt-4o", []Tally{{TP: 2}}),
	}

	text := ComparisonReport(reports)

	if !strings.Contains(text, "mistral") || !strings.Contains(text, "gpt-4o") {
		t.Errorf("report missing model rows:\n%s", text)
	}
	// perfect F1 sorts first
	if strings.Index(text, "gpt-4o") > strings.Index(text, "mistral") {
		t.Errorf("expected gpt-4o (higher f1) before mistral:\n%s", text)
	}
}
