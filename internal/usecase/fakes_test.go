package usecase

import (
	"errors"
	"io/fs"

	"github.com/joelspa/Katze/internal/domain"
)

// memFiles is an in-memory ports.TextFiles keyed by resolved path.
type memFiles struct {
	files    map[string]string
	writes   map[string]int
	writeErr error
}

func newMemFiles(files map[string]string) *memFiles {
	if files == nil {
		files = map[string]string{}
	}
	return &memFiles{files: files, writes: map[string]int{}}
}

func (m *memFiles) ReadText(path string) (string, error) {
	s, ok := m.files[path]
	if !ok {
		return "", &domain.OpError{Op: "memfiles.read", Kind: domain.KindNotFound, Path: path, Err: fs.ErrNotExist}
	}
	return s, nil
}

func (m *memFiles) WriteText(path string, content string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = content
	m.writes[path]++
	return nil
}

func (m *memFiles) Exists(path string) bool {
	_, ok := m.files[path]
	return ok
}

func (m *memFiles) totalWrites() int {
	n := 0
	for _, c := range m.writes {
		n += c
	}
	return n
}

type fakeStore struct {
	saved []domain.PatchReport
	err   error
}

func (s *fakeStore) SaveReport(r domain.PatchReport) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, r)
	return "report-1", nil
}

type errDiffer struct{}

func (errDiffer) Unified(_, _, _ string) (string, error) {
	return "", errors.New("diff broke")
}
