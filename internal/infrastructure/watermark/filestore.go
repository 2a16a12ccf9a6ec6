// Package watermark persists the highest mailbox UID that has been durably
// handled, so a restart resumes exactly after the last processed message.
package watermark

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/leaders-st/helpdesk/internal/shared/errors"
)

// Store reads and writes the ingestion watermark.
type Store interface {
	Load() (uint32, error)
	Save(uid uint32) error
}

// FileStore keeps the watermark in a small text file. Writes go through a
// temp file plus rename so a crash mid-write never leaves a torn value.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the stored UID, or 0 when no watermark exists yet. A file
// with unparseable contents is an error rather than a silent reset: resetting
// would replay the whole mailbox.
func (s *FileStore) Load() (uint32, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, apperrors.NewInternalError("failed to read watermark file", err.Error())
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return 0, nil
	}

	uid, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.NewInternalError(
			fmt.Sprintf("corrupt watermark file %s: %q", s.path, raw), err.Error())
	}
	return uint32(uid), nil
}

// Save durably records uid. The parent directory is created on first use.
func (s *FileStore) Save(uid uint32) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewInternalError("failed to create watermark directory", err.Error())
	}

	tmp, err := os.CreateTemp(dir, ".watermark-*")
	if err != nil {
		return apperrors.NewInternalError("failed to create watermark temp file", err.Error())
	}
	tmpName := tmp.Name()

	_, err = tmp.WriteString(strconv.FormatUint(uint64(uid), 10))
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpName)
		return apperrors.NewInternalError("failed to write watermark temp file", err.Error())
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewInternalError("failed to replace watermark file", err.Error())
	}
	return nil
}
