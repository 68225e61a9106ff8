package domain

import "time"

// FileStatus is the outcome of patching a single file.
type FileStatus string

const (
	StatusPatched       FileStatus = "patched"
	StatusUnchanged     FileStatus = "unchanged"
	StatusSkippedMarker FileStatus = "skipped_marker"
	StatusNoImport      FileStatus = "no_import"
	StatusFailed        FileStatus = "failed"
)

// Operation names a patch operation.
type Operation string

const (
	OpInsertImports Operation = "imports"
	OpRewriteURLs   Operation = "urls"
)

// Literal is a string literal that was found but could not be rewritten.
type Literal struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// FileResult is the outcome for one target file.
type FileResult struct {
	Path   string     `json:"path"`
	Status FileStatus `json:"status"`

	// Edits lists what was done, in order ("import inserted", ...).
	Edits      []string  `json:"edits,omitempty"`
	Rewritten  int       `json:"rewritten,omitempty"`
	Unbalanced []Literal `json:"unbalanced,omitempty"`

	Diff  string `json:"diff,omitempty"`
	Error string `json:"error,omitempty"`
}

// Changed reports whether the file content differs from what was read.
func (r FileResult) Changed() bool {
	return r.Status == StatusPatched
}

// PatchReport is the result of one operation over its target list.
type PatchReport struct {
	ID        string    `json:"id"`
	Operation Operation `json:"operation"`
	Root      string    `json:"root"`
	DryRun    bool      `json:"dry_run"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	Files []FileResult `json:"files"`
}

// Count returns how many files ended in the given status.
func (r PatchReport) Count(status FileStatus) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// WorkspaceSpec describes where `katzefix init` writes its files.
type WorkspaceSpec struct {
	Root string
}

// TargetRef is a resolved target file and whether it already carries the marker.
type TargetRef struct {
	Operation Operation
	Path      string
	Exists    bool
	HasMarker bool
}
