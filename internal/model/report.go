package model

import "time"

// Summary aggregates risk counts and overall confidence for one analysis
type Summary struct {
	TotalClaims       int     `json:"total_claims"`
	HighRiskClaims    int     `json:"high_risk_claims"`
	MediumRiskClaims  int     `json:"medium_risk_claims"`
	LowRiskClaims     int     `json:"low_risk_claims"`
	VotesEscalated    int     `json:"votes_escalated"` // Claims that needed a third verifier
	OverallConfidence float64 `json:"overall_confidence"`
}

// GraphNode is one claim in the agreement graph rendered by the frontend
type GraphNode struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Title      string    `json:"title"` // Full claim text for the tooltip
	Color      string    `json:"color"`
	Size       float64   `json:"size"`
	Risk       RiskLevel `json:"risk_level"`
	Confidence float64   `json:"confidence"`
	Verdict    Verdict   `json:"verdict"`
}

// GraphEdge links two claims whose verification outcomes agree
type GraphEdge struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Width     float64 `json:"width"`
	Color     string  `json:"color"`
	Agreement float64 `json:"agreement"`
}

// Graph is the node/edge payload consumed by the frontend network view
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Report is the complete result of analyzing one question against one target
type Report struct {
	QuestionID string        `json:"question_id,omitempty"`
	Question   string        `json:"question"`
	Target     string        `json:"target"`
	Answer     string        `json:"answer"`
	Verifiers  []string      `json:"verifiers"` // Priority order actually used, target excluded
	Claims     []ClaimResult `json:"claims"`
	Graph      Graph         `json:"graph"`
	Summary    Summary       `json:"summary"`
	CreatedAt  time.Time     `json:"created_at"`
}
