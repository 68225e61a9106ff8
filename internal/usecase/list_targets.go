package usecase

import (
	"github.com/joelspa/Katze/internal/domain"
	"github.com/joelspa/Katze/internal/patch"
	"github.com/joelspa/Katze/internal/ports"
)

type ListTargets struct {
	files ports.TextFiles
}

func NewListTargets(files ports.TextFiles) *ListTargets {
	return &ListTargets{files: files}
}

// Execute resolves every configured target and reports whether it exists
// and already carries the marker. Unreadable files count as not patched.
func (uc *ListTargets) Execute(root string, cfg domain.Config) []domain.TargetRef {
	refs := make([]domain.TargetRef, 0, len(cfg.Imports.Targets)+1)

	add := func(op domain.Operation, target string) {
		ref := domain.TargetRef{Operation: op, Path: target}
		path := resolveTarget(root, target)
		if uc.files.Exists(path) {
			ref.Exists = true
			if content, err := uc.files.ReadText(path); err == nil {
				ref.HasMarker = patch.HasMarker(content, cfg.Marker)
			}
		}
		refs = append(refs, ref)
	}

	for _, t := range cfg.Imports.Targets {
		add(domain.OpInsertImports, t)
	}
	add(domain.OpRewriteURLs, cfg.URLs.Target)
	return refs
}
