package model

import "time"

// AnnotationLabel records whether a human judged the system's verdict for a
// claim to be right. It labels the decision, not the underlying claim: a
// claim may be objectively false and the verdict "No" still annotated
// "correct".
type AnnotationLabel string

const (
	AnnotationCorrect   AnnotationLabel = "correct"
	AnnotationIncorrect AnnotationLabel = "incorrect"
)

// Valid reports whether l is one of the two allowed labels
func (l AnnotationLabel) Valid() bool {
	return l == AnnotationCorrect || l == AnnotationIncorrect
}

// AnnotationRecord is one human judgment of one resolved claim
type AnnotationRecord struct {
	ClaimID     string          `json:"claim_id"`
	Verdict     Verdict         `json:"final_verdict"`
	Label       AnnotationLabel `json:"label"`
	AnnotatedAt time.Time       `json:"annotated_at"`
}

// AnnotationSession groups the annotations for one question asked of one
// target model. Sessions are the persisted source of truth; confusion
// tallies are always recomputed from them.
type AnnotationSession struct {
	Target     string             `json:"target"`
	QuestionID string             `json:"question_id"`
	Question   string             `json:"question,omitempty"`
	Records    []AnnotationRecord `json:"records"`
	SavedAt    time.Time          `json:"saved_at"`
}
