package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/veridict/veridict/internal/dataset"
	"github.com/veridict/veridict/internal/eval"
)

var (
	evalSampleSize int
	evalSeed       int64
	evalDataset    string
)

// evalCmd represents the eval command group
var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate annotated verdicts and manage evaluation sets",
}

var evalReportCmd = &cobra.Command{
	Use:   "report [model...]",
	Short: "Print precision/recall metrics from saved annotations",
	Long: `Report recomputes the confusion tally from every saved annotation
session and prints micro-averaged precision, recall, F1 and accuracy per
target model. With no arguments it covers every annotated model.`,
	RunE: runEvalReport,
}

var evalSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Build a reproducible evaluation set from TruthfulQA",
	Long: `Sample draws questions from the TruthfulQA benchmark CSV with a fixed
seed and saves them for repeated evaluation runs.

Example:
  veridict eval sample --n 50 --seed 42 --dataset data/TruthfulQA.csv`,
	RunE: runEvalSample,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.AddCommand(evalReportCmd)
	evalCmd.AddCommand(evalSampleCmd)

	evalSampleCmd.Flags().IntVar(&evalSampleSize, "n", 50, "number of questions to sample")
	evalSampleCmd.Flags().Int64Var(&evalSeed, "seed", 42, "sampling seed")
	evalSampleCmd.Flags().StringVar(&evalDataset, "dataset", "", "path to TruthfulQA.csv (default <data_dir>/TruthfulQA.csv)")
}

func runEvalReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := eval.NewStore(filepath.Join(cfg.DataDir, "annotations"))

	targets := args
	if len(targets) == 0 {
		targets, err = store.Targets()
		if err != nil {
			return err
		}
	}
	if len(targets) == 0 {
		fmt.Println("No annotations saved yet. Annotate verdicts via the web UI or POST /api/annotations.")
		return nil
	}

	reports := make([]eval.ModelReport, 0, len(targets))
	for _, target := range targets {
		report, err := store.Evaluate(target)
		if err != nil {
			return fmt.Errorf("evaluating %s: %w", target, err)
		}
		reports = append(reports, report)
	}

	fmt.Print(eval.ComparisonReport(reports))
	return nil
}

func runEvalSample(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	csvPath := evalDataset
	if csvPath == "" {
		csvPath = filepath.Join(cfg.DataDir, "TruthfulQA.csv")
	}

	loader := dataset.NewLoader(csvPath)
	path, err := loader.SaveEvaluationSet(cfg.DataDir, evalSampleSize, evalSeed)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %d questions to %s (seed %d)\n", evalSampleSize, path, evalSeed)
	return nil
}
