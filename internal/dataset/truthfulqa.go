// Package dataset loads TruthfulQA benchmark questions and builds
// reproducible evaluation sets from them.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// Question is one TruthfulQA entry
type Question struct {
	ID               string `json:"question_id"`
	Question         string `json:"question"`
	BestAnswer       string `json:"best_answer"`
	CorrectAnswers   string `json:"correct_answers"`
	IncorrectAnswers string `json:"incorrect_answers"`
	Category         string `json:"category"`
	Source           string `json:"source"`
}

// Loader reads the TruthfulQA CSV and samples questions from it
type Loader struct {
	csvPath   string
	questions []Question
}

// NewLoader creates a loader for the CSV at path
func NewLoader(csvPath string) *Loader {
	return &Loader{csvPath: csvPath}
}

// Load parses the full dataset. Question IDs are the row indices of the
// original file (Q0, Q1, ...), stable across runs.
func (l *Loader) Load() ([]Question, error) {
	if l.questions != nil {
		return l.questions, nil
	}

	file, err := os.Open(l.csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("TruthfulQA.csv not found at %s, download it from https://github.com/sylinrl/TruthfulQA", l.csvPath)
		}
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // trailing columns vary across dataset versions

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset %s has no question rows", l.csvPath)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns["Question"]; !ok {
		return nil, fmt.Errorf("dataset %s has no Question column", l.csvPath)
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	questions := make([]Question, 0, len(rows)-1)
	for i, row := range rows[1:] {
		q := Question{
			ID:               fmt.Sprintf("Q%d", i),
			Question:         field(row, "Question"),
			BestAnswer:       field(row, "Best Answer"),
			CorrectAnswers:   field(row, "Correct Answers"),
			IncorrectAnswers: field(row, "Incorrect Answers"),
			Category:         field(row, "Category"),
			Source:           field(row, "Source"),
		}
		if q.Question == "" {
			continue
		}
		if q.Category == "" {
			q.Category = "General"
		}
		questions = append(questions, q)
	}

	l.questions = questions
	return questions, nil
}

// Sample draws n questions without replacement using the seed, so the same
// seed always yields the same evaluation set. Asking for more questions than
// exist returns the whole dataset shuffled.
func (l *Loader) Sample(n int, seed int64) ([]Question, error) {
	questions, err := l.Load()
	if err != nil {
		return nil, err
	}

	shuffled := make([]Question, len(questions))
	copy(shuffled, questions)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n], nil
}

// ByID finds one question by its stable identifier
func (l *Loader) ByID(id string) (Question, error) {
	questions, err := l.Load()
	if err != nil {
		return Question{}, err
	}
	for _, q := range questions {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, fmt.Errorf("question %s not found", id)
}

// SaveEvaluationSet samples n questions and writes them to
// <dir>/evaluation_set_<n>.csv for later runs to reuse.
func (l *Loader) SaveEvaluationSet(dir string, n int, seed int64) (string, error) {
	questions, err := l.Sample(n, seed)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("evaluation_set_%d.csv", n))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating evaluation set: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	header := []string{"question_id", "Question", "Best Answer", "Correct Answers", "Incorrect Answers", "Category", "Source"}
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("writing evaluation set: %w", err)
	}
	for _, q := range questions {
		row := []string{q.ID, q.Question, q.BestAnswer, q.CorrectAnswers, q.IncorrectAnswers, q.Category, q.Source}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("writing evaluation set: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("writing evaluation set: %w", err)
	}
	return path, nil
}
