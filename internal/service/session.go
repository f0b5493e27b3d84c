package service

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// ProcessingSession is the transient working state of one pipeline run:
// a uniquely named temporary directory holding per-page artifacts, plus
// the run ID used to tag log lines. It is created at run start and must
// be closed on every exit path.
type ProcessingSession struct {
	ID  string
	Dir string
}

// NewSession allocates a temporary directory for one run.
func NewSession() (*ProcessingSession, error) {
	dir, err := os.MkdirTemp("", "pdf-pipeline-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &ProcessingSession{
		ID:  uuid.NewString(),
		Dir: dir,
	}, nil
}

// Close removes the session directory and everything in it.
func (s *ProcessingSession) Close() error {
	if s.Dir == "" {
		return nil
	}
	err := os.RemoveAll(s.Dir)
	s.Dir = ""
	return err
}
