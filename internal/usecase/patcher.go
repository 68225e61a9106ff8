package usecase

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joelspa/Katze/internal/domain"
	"github.com/joelspa/Katze/internal/ports"
)

// patcher carries what both patch operations share: file access, report
// persistence, dry-run handling and logging.
type patcher struct {
	files  ports.TextFiles
	store  ports.ReportStore
	differ ports.Differ
	log    *slog.Logger
	now    func() time.Time
	newID  func() string
	dryRun bool
}

type Option func(*patcher)

// WithReportStore saves every report through s. A nil store disables saving.
func WithReportStore(s ports.ReportStore) Option {
	return func(p *patcher) { p.store = s }
}

// WithDryRun computes the edits and diffs without writing any file.
func WithDryRun(dryRun bool) Option {
	return func(p *patcher) { p.dryRun = dryRun }
}

func WithDiffer(d ports.Differ) Option {
	return func(p *patcher) { p.differ = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *patcher) {
		if l != nil {
			p.log = l
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) Option {
	return func(p *patcher) { p.now = now }
}

func newPatcher(files ports.TextFiles, opts ...Option) patcher {
	p := patcher{
		files: files,
		log:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p *patcher) begin(op domain.Operation, root string) domain.PatchReport {
	return domain.PatchReport{
		ID:        p.newID(),
		Operation: op,
		Root:      root,
		DryRun:    p.dryRun,
		StartedAt: p.now(),
	}
}

// commit writes after to path, or attaches a diff on dry runs.
func (p *patcher) commit(path string, res *domain.FileResult, before, after string) error {
	if p.dryRun {
		if p.differ == nil {
			return nil
		}
		diff, err := p.differ.Unified(res.Path, before, after)
		if err != nil {
			return &domain.OpError{Op: "usecase.diff", Kind: domain.KindExecution, Path: path, Err: err}
		}
		res.Diff = diff
		return nil
	}
	return p.files.WriteText(path, after)
}

func (p *patcher) fail(res *domain.FileResult, err error) {
	res.Status = domain.StatusFailed
	res.Error = err.Error()
	p.log.Error("patch.file_failed", "path", res.Path, "error", err)
}

// finish stamps the report and saves it. The operation error, if any, wins
// over a save error.
func (p *patcher) finish(report domain.PatchReport, opErr error) (domain.PatchReport, string, error) {
	report.EndedAt = p.now()

	p.log.Info("patch.done",
		"run_id", report.ID,
		"patched", report.Count(domain.StatusPatched),
		"files", len(report.Files),
		"error", opErr != nil,
	)

	if p.store == nil {
		return report, "", opErr
	}

	id, err := p.store.SaveReport(report)
	if err != nil {
		p.log.Warn("patch.report_save_failed", "error", err)
		if opErr == nil {
			opErr = err
		}
		return report, "", opErr
	}
	return report, id, opErr
}

// resolveTarget joins relative targets onto root. Targets are written with
// forward slashes in config files.
func resolveTarget(root, target string) string {
	p := filepath.FromSlash(target)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &domain.OpError{Op: "usecase.cancelled", Kind: domain.KindExecution, Err: err}
	}
	return nil
}
