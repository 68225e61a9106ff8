package fsfiles

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/joelspa/Katze/internal/domain"
	"github.com/joelspa/Katze/internal/ports"
)

// Store reads and overwrites UTF-8 text files in place.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

var _ ports.TextFiles = (*Store)(nil)

func (s *Store) ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return "", &domain.OpError{
			Op:   "fsfiles.read",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	if !utf8.Valid(b) {
		return "", &domain.OpError{
			Op:   "fsfiles.read",
			Kind: domain.KindEncoding,
			Path: path,
			Err:  domain.ErrInvalidText,
		}
	}
	return string(b), nil
}

// WriteText replaces the file content, keeping its permission bits.
func (s *Store) WriteText(path string, content string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	// Atomic-ish write: tmp then rename.
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &domain.OpError{
			Op:   "fsfiles.write",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}
	tmpPath := tmp.Name()

	_, werr := tmp.WriteString(content)
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Chmod(tmpPath, mode)
	}
	if werr != nil {
		_ = os.Remove(tmpPath)
		return &domain.OpError{
			Op:   "fsfiles.write",
			Kind: domain.KindIO,
			Path: tmpPath,
			Err:  werr,
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return &domain.OpError{
			Op:   "fsfiles.rename",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
