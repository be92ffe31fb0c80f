package report

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// FailureLog is the append-only failure report. The file is opened on the
// first Append and kept open until Close, so a run without failures never
// creates or touches it. Existing content is never truncated.
type FailureLog struct {
	path string

	mu     sync.Mutex
	f      *os.File
	blocks int
}

func NewFailureLog(path string) *FailureLog {
	return &FailureLog{path: path}
}

// Blocks returns how many blocks this log has appended.
func (l *FailureLog) Blocks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.blocks
}

// Append writes one block: a blank-line-delimited group of lines.
func (l *FailureLog) Append(lines []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening failure report: %w", err)
		}
		l.f = f
	}

	if _, err := l.f.WriteString("\n\n" + strings.Join(lines, "\n") + "\n\n"); err != nil {
		return fmt.Errorf("writing failure report: %w", err)
	}
	l.blocks++
	return nil
}

// Close releases the file handle. It is safe to call when nothing was written.
func (l *FailureLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}
