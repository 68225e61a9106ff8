package usecase

import (
	"context"
	"fmt"

	"github.com/joelspa/Katze/internal/domain"
	"github.com/joelspa/Katze/internal/patch"
	"github.com/joelspa/Katze/internal/ports"
)

// RewriteURLs replaces the hardcoded API origin in the configured target
// with a reference to the base URL constant, importing it when needed.
type RewriteURLs struct {
	patcher
}

func NewRewriteURLs(files ports.TextFiles, opts ...Option) *RewriteURLs {
	return &RewriteURLs{patcher: newPatcher(files, opts...)}
}

func (uc *RewriteURLs) Execute(ctx context.Context, root string, cfg domain.Config) (domain.PatchReport, string, error) {
	report := uc.begin(domain.OpRewriteURLs, root)

	if err := checkCtx(ctx); err != nil {
		return uc.finish(report, err)
	}

	target := cfg.URLs.Target
	res, err := uc.patchFile(resolveTarget(root, target), target, cfg)
	report.Files = []domain.FileResult{res}
	return uc.finish(report, err)
}

func (uc *RewriteURLs) patchFile(path, target string, cfg domain.Config) (domain.FileResult, error) {
	res := domain.FileResult{Path: target}

	content, err := uc.files.ReadText(path)
	if err != nil {
		uc.fail(&res, err)
		return res, err
	}

	out := content
	if !patch.HasMarker(content, cfg.Marker) {
		if next, ok := patch.InsertAfterAnchor(out, cfg.URLs.Anchor, cfg.URLs.Line); ok {
			out = next
			res.Edits = append(res.Edits, "import inserted after anchor line")
		} else {
			res.Edits = append(res.Edits, "anchor line not found; import not inserted")
			uc.log.Warn("urls.anchor_missing", "path", target, "anchor", cfg.URLs.Anchor)
		}
	}

	out, stats := patch.RewriteBaseURL(out, cfg.URLs.BaseURL, cfg.URLs.Constant)
	res.Rewritten = stats.Rewritten
	res.Unbalanced = stats.Unbalanced
	if stats.Rewritten > 0 {
		res.Edits = append(res.Edits, fmt.Sprintf("%d url literal(s) rewritten", stats.Rewritten))
	}
	for _, lit := range stats.Unbalanced {
		uc.log.Warn("urls.unbalanced_literal", "path", target, "line", lit.Line, "text", lit.Text)
	}

	if out == content {
		res.Status = domain.StatusUnchanged
		uc.log.Info("urls.file", "path", target, "status", res.Status)
		return res, nil
	}

	res.Status = domain.StatusPatched
	if err := uc.commit(path, &res, content, out); err != nil {
		uc.fail(&res, err)
		return res, err
	}

	uc.log.Info("urls.file", "path", target, "status", res.Status, "rewritten", res.Rewritten)
	return res, nil
}
