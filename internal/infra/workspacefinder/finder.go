package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joelspa/Katze/internal/domain"
	"github.com/joelspa/Katze/internal/ports"
)

const (
	DefaultConfigFile = "katzefix.yaml"
	DefaultSourceDir  = "frontend/src"
)

// Finder locates the Katze project root by searching upward for
// katzefix.yaml, or failing that, for the frontend source tree.
type Finder struct {
	ConfigFile string // defaults to "katzefix.yaml"
	SourceDir  string // defaults to "frontend/src"
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: DefaultConfigFile, SourceDir: DefaultSourceDir}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// If user passes a file path, use its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	abs = filepath.Clean(abs)

	// A config file anywhere up the tree wins over a bare source tree.
	if root, ok := f.walkUp(abs, func(dir string) bool {
		return isFile(filepath.Join(dir, f.ConfigFile))
	}); ok {
		return root, nil
	}
	if root, ok := f.walkUp(abs, func(dir string) bool {
		return isDir(filepath.Join(dir, filepath.FromSlash(f.SourceDir)))
	}); ok {
		return root, nil
	}

	return "", &domain.OpError{
		Op:   "workspacefinder.findroot",
		Kind: domain.KindNoProject,
		Path: abs,
		Err:  domain.ErrNoProject,
	}
}

func (f *Finder) walkUp(start string, match func(dir string) bool) (string, bool) {
	cur := start
	for {
		if match(cur) {
			return cur, true
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root.
			return "", false
		}
		cur = parent
	}
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
