package model

// Claim represents a factual assertion extracted from the target model's answer
type Claim struct {
	ID        string `json:"id"`                  // Unique within a session (e.g. "C1")
	Text      string `json:"text"`                // The claim text itself
	Heuristic string `json:"heuristic,omitempty"` // Which extraction rule matched (e.g. "keyword:born")
	Sentence  int    `json:"sentence,omitempty"`  // Sentence index in the answer (0-based)
}

// Vote pairs a verifier identity with its verdict for one claim
type Vote struct {
	Verifier string  `json:"verifier"`
	Verdict  Verdict `json:"verdict"`
}

// Resolution is the outcome of resolving one claim through the voting engine.
// Votes are in consultation order; a third vote exists iff VotingTriggered.
type Resolution struct {
	Claim           Claim   `json:"claim"`
	Verdict         Verdict `json:"final_verdict"`
	Votes           []Vote  `json:"votes"`
	VotingTriggered bool    `json:"voting_triggered"`
	Incomplete      bool    `json:"incomplete,omitempty"` // Verification could not assemble a quorum
	Note            string  `json:"note,omitempty"`       // Provenance, e.g. "verification incomplete"
}

// ExternalStatus is the outcome of corroborating a claim against Wikipedia
type ExternalStatus string

const (
	ExternalSupports    ExternalStatus = "Supports"
	ExternalContradicts ExternalStatus = "Contradicts"
	ExternalUnclear     ExternalStatus = "Unclear"
	ExternalNotFound    ExternalStatus = "NotFound"
	ExternalSkipped     ExternalStatus = "Skipped"
)

// RiskLevel buckets a claim by hallucination risk
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// ClaimResult is a fully analyzed claim: voting outcome plus the derived
// confidence, risk and external corroboration attached by the pipeline.
type ClaimResult struct {
	Resolution
	Confidence float64        `json:"confidence"`
	Risk       RiskLevel      `json:"risk"`
	External   ExternalStatus `json:"external,omitempty"`
}
