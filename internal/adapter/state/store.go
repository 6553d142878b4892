// Package state persists the last address successfully pushed to the DNS provider.
package state

import (
	"fmt"
	"strings"

	"ovh-ddns/internal/port"
)

// DefaultPath is the address cache file used when no --state-file flag is given.
const DefaultPath = "ipv6addr.txt"

// FileStore keeps the last applied address as a single trimmed string in a file.
type FileStore struct {
	path    string
	fileMgr port.FileManager
}

// Ensure FileStore implements the StateStore port
var _ port.StateStore = (*FileStore)(nil)

// NewFileStore creates a store backed by path.
func NewFileStore(path string, fileMgr port.FileManager) *FileStore {
	return &FileStore{path: path, fileMgr: fileMgr}
}

// ReadLast returns the cached address. A missing or blank file reports ok=false.
func (s *FileStore) ReadLast() (string, bool, error) {
	if !s.fileMgr.FileExists(s.path) {
		return "", false, nil
	}

	data, err := s.fileMgr.ReadFile(s.path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read address cache: %w", err)
	}

	address := strings.TrimSpace(string(data))
	if address == "" {
		return "", false, nil
	}
	return address, true, nil
}

// WriteCurrent overwrites the cache with the trimmed address and no trailing newline.
func (s *FileStore) WriteCurrent(address string) error {
	if err := s.fileMgr.WriteFile(s.path, []byte(strings.TrimSpace(address)), 0644); err != nil {
		return fmt.Errorf("failed to write address cache: %w", err)
	}
	return nil
}
