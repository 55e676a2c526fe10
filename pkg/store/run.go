// Package store persists the answers and questions of a run as flat text
// files.
//
// Layout:
//
//	<logsDir>/<YYYYMMDDHHMMSS>/response_<n>.txt
//	<logsDir>/<YYYYMMDDHHMMSS>/generated_question_<n>.txt
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxDirAttempts bounds the suffix search when a run directory name is taken.
const maxDirAttempts = 100

// Run owns the directory of one execution.
type Run struct {
	ID        string
	Name      string
	Dir       string
	CreatedAt time.Time
}

// Open creates a new run directory under logsDir named after now.
// Parent directories are created as needed. A second run in the same
// second gets a numeric suffix so directories are never shared.
func Open(logsDir string, now time.Time) (*Run, error) {
	logsDir = strings.TrimSpace(logsDir)
	if logsDir == "" {
		return nil, errors.New("store: logs dir is empty")
	}
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create logs dir: %w", err)
	}

	base := now.Format(RunDirLayout)
	for attempt := 1; attempt <= maxDirAttempts; attempt++ {
		name := base
		if attempt > 1 {
			name = fmt.Sprintf("%s_%d", base, attempt)
		}
		dir := filepath.Join(logsDir, name)
		err := os.Mkdir(dir, 0o755)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("store: create run dir: %w", err)
		}
		return &Run{
			ID:        uuid.New().String(),
			Name:      name,
			Dir:       dir,
			CreatedAt: now,
		}, nil
	}
	return nil, fmt.Errorf("store: no free run dir for %s", base)
}

// SaveAnswer writes answer text for iteration n and returns the file path.
func (r *Run) SaveAnswer(n int, answer string) (string, error) {
	return r.write(FilesFor(n).Answer, answer)
}

// SaveQuestion writes a derived question for iteration n and returns the file path.
func (r *Run) SaveQuestion(n int, question string) (string, error) {
	return r.write(FilesFor(n).Question, question)
}

// write overwrites an existing file of the same name.
func (r *Run) write(name, content string) (string, error) {
	path := filepath.Join(r.Dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("store: write %s: %w", name, err)
	}
	return path, nil
}
