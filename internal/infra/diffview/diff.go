package diffview

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/joelspa/Katze/internal/ports"
)

const defaultContext = 3

// Renderer produces unified diffs for dry runs.
type Renderer struct {
	Context int
}

func New() *Renderer {
	return &Renderer{Context: defaultContext}
}

var _ ports.Differ = (*Renderer)(nil)

// Unified renders a unified diff between two versions of a file. It
// returns an empty string when the versions are identical.
func (r *Renderer) Unified(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  r.Context,
	})
}
