package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/pipeline"
)

var (
	askTarget     string
	askQuestionID string
	askJSON       string
	askTimeout    time.Duration
	askLive       bool
	askWikipedia  bool
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Analyze one question against the target model",
	Long: `Ask sends a question to the target model, extracts the factual claims
from its answer and resolves each claim through the verifier vote.

Examples:
  veridict ask "Who was Isaac Newton?"
  veridict ask --target openai --live "When did World War 2 end?"
  veridict ask "Who was Albert Einstein?" --json report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askTarget, "target", "", "target model to fact-check (default from config)")
	askCmd.Flags().StringVar(&askQuestionID, "question-id", "", "stable question identifier for later annotation")
	askCmd.Flags().StringVar(&askJSON, "json", "", "write the full report to this JSON file")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
	askCmd.Flags().BoolVar(&askLive, "live", false, "use real provider APIs instead of simulation")
	askCmd.Flags().BoolVar(&askWikipedia, "wikipedia", false, "corroborate claims against Wikipedia")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if askTarget != "" {
		cfg.Target.Provider = askTarget
	}
	if askLive {
		cfg.Simulation = false
	}
	if askWikipedia {
		cfg.Wikipedia.Enabled = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Target: %s\n", cfg.Target.Provider)
		fmt.Fprintf(os.Stderr, "Verifiers: %v\n", p.Verifiers())
		fmt.Fprintf(os.Stderr, "Simulation: %v\n\n", cfg.Simulation)
	}

	report, err := p.Analyze(ctx, askQuestionID, args[0])
	if err != nil {
		return err
	}

	if askJSON != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		if err := os.WriteFile(askJSON, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote report: %s\n", askJSON)
		}
	}

	printReport(report)
	return nil
}

func printReport(report *model.Report) {
	fmt.Printf("Question: %s\n", report.Question)
	fmt.Printf("Target:   %s\n", report.Target)
	fmt.Printf("Answer:   %s\n\n", report.Answer)

	for _, claim := range report.Claims {
		marker := " "
		if claim.VotingTriggered {
			marker = "*"
		}
		fmt.Printf("%s [%s] %-9s conf=%.2f risk=%-6s %s\n",
			marker, claim.Claim.ID, claim.Verdict, claim.Confidence, claim.Risk, claim.Claim.Text)
		for _, vote := range claim.Votes {
			fmt.Printf("      %s: %s\n", vote.Verifier, vote.Verdict)
		}
		if claim.External != "" && claim.External != model.ExternalSkipped {
			fmt.Printf("      wikipedia: %s\n", claim.External)
		}
		if claim.Note != "" {
			fmt.Printf("      note: %s\n", claim.Note)
		}
	}

	s := report.Summary
	fmt.Printf("\nClaims: %d (high risk %d, medium %d, low %d)\n",
		s.TotalClaims, s.HighRiskClaims, s.MediumRiskClaims, s.LowRiskClaims)
	fmt.Printf("Tie-breaks: %d\n", s.VotesEscalated)
	fmt.Printf("Overall confidence: %.2f\n", s.OverallConfidence)
}
