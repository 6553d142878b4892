// Package logging provides the program's logrus logger and its bounded log file.
package logging

import (
	"errors"
	"os"
	"strings"
	"sync"

	"ovh-ddns/internal/adapter/infrastructure/file"
	"ovh-ddns/internal/port"

	"github.com/sirupsen/logrus"
)

// DefaultMaxEntries is the number of entries kept in the log file.
const DefaultMaxEntries = 10

// Journal is a line-oriented file that keeps only its newest entries.
// Every Append rewrites the whole file.
type Journal struct {
	path       string
	maxEntries int
	files      port.FileManager
}

// NewJournal creates a journal at path keeping maxEntries lines.
func NewJournal(path string, maxEntries int, files port.FileManager) *Journal {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if files == nil {
		files = file.NewManagerAdapter()
	}
	return &Journal{path: path, maxEntries: maxEntries, files: files}
}

// Entries returns the lines currently stored, oldest first.
func (j *Journal) Entries() ([]string, error) {
	data, err := j.files.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Append adds line and drops the oldest entries beyond the cap.
func (j *Journal) Append(line string) error {
	lines, err := j.Entries()
	if err != nil {
		return err
	}

	lines = append(lines, strings.TrimRight(line, "\r\n"))
	if len(lines) > j.maxEntries {
		lines = lines[len(lines)-j.maxEntries:]
	}

	return j.files.WriteFile(j.path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

// BoundedFileHook is a logrus hook that mirrors every entry into a Journal.
// Write failures are kept so the caller can treat them as fatal.
type BoundedFileHook struct {
	journal   *Journal
	formatter logrus.Formatter

	mu  sync.Mutex
	err error
}

// NewBoundedFileHook creates a hook writing to journal.
func NewBoundedFileHook(journal *Journal) *BoundedFileHook {
	return &BoundedFileHook{
		journal:   journal,
		formatter: &EntryFormatter{},
	}
}

// Levels implements logrus.Hook.
func (h *BoundedFileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook.
func (h *BoundedFileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err == nil {
		err = h.journal.Append(string(line))
	}
	if err != nil {
		h.mu.Lock()
		if h.err == nil {
			h.err = err
		}
		h.mu.Unlock()
	}
	return err
}

// Err returns the first error returned by Fire.
func (h *BoundedFileHook) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}
