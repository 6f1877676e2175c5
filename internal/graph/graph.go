// Package graph builds the agreement network the frontend renders: one node
// per claim, colored by risk and sized by confidence, with edges between
// claims whose verifier responses line up.
package graph

import (
	"github.com/veridict/veridict/internal/model"
)

const (
	colorLow    = "#4CAF50" // green
	colorMedium = "#FF9800" // orange
	colorHigh   = "#F44336" // red

	// edges below this agreement level are noise, not relationships
	edgeThreshold = 0.3

	labelMaxLen = 50
)

// Build turns scored claims into the visualization payload
func Build(claims []model.ClaimResult) model.Graph {
	var g model.Graph

	for _, c := range claims {
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:         c.Claim.ID,
			Label:      nodeLabel(c.Claim),
			Title:      c.Claim.Text,
			Color:      riskColor(c.Risk),
			Size:       20 + c.Confidence*20,
			Risk:       c.Risk,
			Confidence: c.Confidence,
			Verdict:    c.Verdict,
		})
	}

	for i := range claims {
		for j := i + 1; j < len(claims); j++ {
			agreement := Agreement(claims[i].Votes, claims[j].Votes)
			if agreement <= edgeThreshold {
				continue
			}
			color := colorMedium
			if agreement > 0.7 {
				color = colorLow
			}
			g.Edges = append(g.Edges, model.GraphEdge{
				From:      claims[i].Claim.ID,
				To:        claims[j].Claim.ID,
				Width:     agreement * 5,
				Color:     color,
				Agreement: agreement,
			})
		}
	}

	return g
}

// Agreement compares two claims' verifier responses pairwise by position and
// returns the matching fraction, with a bonus when both claims got a clean
// double-Yes.
func Agreement(a, b []model.Vote) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	matches := 0.0
	for i := 0; i < n; i++ {
		if a[i].Verdict == b[i].Verdict {
			matches++
		}
	}
	agreement := matches / float64(n)

	if allYes(a) && allYes(b) {
		agreement += 0.2
		if agreement > 1 {
			agreement = 1
		}
	}
	return agreement
}

func allYes(votes []model.Vote) bool {
	if len(votes) == 0 {
		return false
	}
	for _, v := range votes {
		if v.Verdict != model.VerdictYes {
			return false
		}
	}
	return true
}

func riskColor(risk model.RiskLevel) string {
	switch risk {
	case model.RiskLow:
		return colorLow
	case model.RiskHigh:
		return colorHigh
	default:
		return colorMedium
	}
}

func nodeLabel(claim model.Claim) string {
	text := claim.Text
	if len(text) > labelMaxLen {
		text = text[:labelMaxLen] + "..."
	}
	return claim.ID + ": " + text
}
