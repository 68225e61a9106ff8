package usecase

import (
	"context"

	"github.com/joelspa/Katze/internal/domain"
	"github.com/joelspa/Katze/internal/patch"
	"github.com/joelspa/Katze/internal/ports"
)

// InsertImports adds the marker import to every configured target that
// does not mention the marker yet.
type InsertImports struct {
	patcher
}

func NewInsertImports(files ports.TextFiles, opts ...Option) *InsertImports {
	return &InsertImports{patcher: newPatcher(files, opts...)}
}

// Execute processes targets in order and stops at the first read or write
// failure. The partial report is returned alongside the error.
func (uc *InsertImports) Execute(ctx context.Context, root string, cfg domain.Config) (domain.PatchReport, string, error) {
	report := uc.begin(domain.OpInsertImports, root)
	report.Files = make([]domain.FileResult, 0, len(cfg.Imports.Targets))

	for _, target := range cfg.Imports.Targets {
		if err := checkCtx(ctx); err != nil {
			return uc.finish(report, err)
		}

		res, err := uc.patchFile(resolveTarget(root, target), target, cfg)
		report.Files = append(report.Files, res)
		if err != nil {
			return uc.finish(report, err)
		}
	}

	return uc.finish(report, nil)
}

func (uc *InsertImports) patchFile(path, target string, cfg domain.Config) (domain.FileResult, error) {
	res := domain.FileResult{Path: target}

	content, err := uc.files.ReadText(path)
	if err != nil {
		uc.fail(&res, err)
		return res, err
	}

	if patch.HasMarker(content, cfg.Marker) {
		res.Status = domain.StatusSkippedMarker
		uc.log.Debug("imports.file", "path", target, "status", res.Status)
		return res, nil
	}

	out, ok := patch.InsertAfterLastImport(content, cfg.Imports.Line, cfg.Imports.Prefix)
	if !ok {
		res.Status = domain.StatusNoImport
		uc.log.Warn("imports.file", "path", target, "status", res.Status)
		return res, nil
	}

	res.Status = domain.StatusPatched
	res.Edits = append(res.Edits, "import inserted after last import line")

	if err := uc.commit(path, &res, content, out); err != nil {
		uc.fail(&res, err)
		return res, err
	}

	uc.log.Info("imports.file", "path", target, "status", res.Status)
	return res, nil
}
