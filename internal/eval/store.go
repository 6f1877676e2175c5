package eval

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/veridict/veridict/internal/model"
)

// Store persists annotation sessions as JSON files, one per (target,
// question) pair. The files are the source of truth for evaluation; tallies
// and metrics are recomputed from them on every read.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir (created on first save)
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func sanitize(s string) string {
	s = unsafePathChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "_")
	return strings.Trim(s, "_")
}

func (s *Store) sessionPath(target, questionID string) (string, error) {
	t, q := sanitize(target), sanitize(questionID)
	if t == "" || q == "" {
		return "", fmt.Errorf("invalid session identity: target=%q question=%q", target, questionID)
	}
	return filepath.Join(s.dir, t, q+".json"), nil
}

// Save writes a session, replacing any previous annotations for the same
// target and question. Records with invalid labels are rejected up front so
// a bad payload never corrupts the store.
func (s *Store) Save(session model.AnnotationSession) error {
	for _, r := range session.Records {
		if !r.Label.Valid() {
			return fmt.Errorf("record %s: invalid label %q", r.ClaimID, r.Label)
		}
		if !r.Verdict.Valid() {
			return fmt.Errorf("record %s: invalid verdict %q", r.ClaimID, r.Verdict)
		}
	}

	path, err := s.sessionPath(session.Target, session.QuestionID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating annotation dir: %w", err)
	}

	session.SavedAt = time.Now().UTC()
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Load reads one session. Returns fs.ErrNotExist when the question has not
// been annotated for the target.
func (s *Store) Load(target, questionID string) (model.AnnotationSession, error) {
	var session model.AnnotationSession

	path, err := s.sessionPath(target, questionID)
	if err != nil {
		return session, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return session, err
	}
	if err := json.Unmarshal(data, &session); err != nil {
		return session, fmt.Errorf("decoding session %s: %w", path, err)
	}
	return session, nil
}

// LoadTarget reads every annotation session saved for a target, sorted by
// question ID. A missing directory means no sessions, not an error.
func (s *Store) LoadTarget(target string) ([]model.AnnotationSession, error) {
	t := sanitize(target)
	if t == "" {
		return nil, fmt.Errorf("invalid target %q", target)
	}

	entries, err := os.ReadDir(filepath.Join(s.dir, t))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading annotation dir: %w", err)
	}

	var sessions []model.AnnotationSession
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, t, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading session %s: %w", path, err)
		}
		var session model.AnnotationSession
		if err := json.Unmarshal(data, &session); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping corrupt session %s: %v\n", path, err)
			continue
		}
		sessions = append(sessions, session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].QuestionID < sessions[j].QuestionID
	})
	return sessions, nil
}

// Targets lists every target that has at least one saved session
func (s *Store) Targets() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading annotation dir: %w", err)
	}

	var targets []string
	for _, entry := range entries {
		if entry.IsDir() {
			targets = append(targets, entry.Name())
		}
	}
	sort.Strings(targets)
	return targets, nil
}

// Evaluate recomputes the full report for a target from its stored sessions
func (s *Store) Evaluate(target string) (ModelReport, error) {
	sessions, err := s.LoadTarget(target)
	if err != nil {
		return ModelReport{}, err
	}

	tallies := make([]Tally, 0, len(sessions))
	for _, session := range sessions {
		tallies = append(tallies, TallyRecords(session.Records))
	}
	return Aggregate(target, tallies), nil
}
