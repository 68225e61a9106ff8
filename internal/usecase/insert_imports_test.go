package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/joelspa/Katze/internal/domain"
	"github.com/joelspa/Katze/internal/infra/diffview"
	"github.com/joelspa/Katze/internal/infra/fsfiles"
)

const (
	root      = "/work/katze"
	apiImport = "import { API_BASE_URL } from '../config/api';"
)

func importsConfig(targets ...string) domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Imports.Targets = targets
	return cfg
}

func TestInsertImports_EndToEndOnDisk(t *testing.T) {
	tmp := t.TempDir()
	pages := filepath.Join(tmp, "frontend", "src", "pages")
	if err := os.MkdirAll(pages, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	in := "import A from 'a';\nimport B from 'b';\n\nexport default function Page() {}\n"
	p := filepath.Join(pages, "Profile.tsx")
	if err := os.WriteFile(p, []byte(in), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	uc := NewInsertImports(fsfiles.NewStore())
	report, _, err := uc.Execute(context.Background(), tmp, importsConfig("frontend/src/pages/Profile.tsx"))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if report.Files[0].Status != domain.StatusPatched {
		t.Fatalf("expected patched, got %s", report.Files[0].Status)
	}

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "import A from 'a';\nimport B from 'b';\n" + apiImport + "\n\nexport default function Page() {}\n"
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertImports_SecondRunIsIdempotent(t *testing.T) {
	path := filepath.Join(root, "frontend", "src", "pages", "Profile.tsx")
	files := newMemFiles(map[string]string{
		path: "import React, { useState } from 'react';\nimport axios from 'axios';\nimport './Profile.css';\n\ninterface UserProfile {}\n",
	})
	cfg := importsConfig("frontend/src/pages/Profile.tsx")
	uc := NewInsertImports(files)

	if _, _, err := uc.Execute(context.Background(), root, cfg); err != nil {
		t.Fatalf("first run: %v", err)
	}
	afterFirst := files.files[path]

	report, _, err := uc.Execute(context.Background(), root, cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if diff := cmp.Diff(afterFirst, files.files[path]); diff != "" {
		t.Fatalf("second run changed content (-want +got):\n%s", diff)
	}
	if report.Files[0].Status != domain.StatusSkippedMarker {
		t.Fatalf("expected skipped_marker on second run, got %s", report.Files[0].Status)
	}
	if files.writes[path] != 1 {
		t.Fatalf("expected exactly one write, got %d", files.writes[path])
	}
	if strings.Count(files.files[path], apiImport) != 1 {
		t.Fatalf("expected a single import line, got:\n%s", files.files[path])
	}
}

func TestInsertImports_StatusesPerFile(t *testing.T) {
	pagesDir := filepath.Join(root, "frontend", "src", "pages")
	files := newMemFiles(map[string]string{
		filepath.Join(pagesDir, "A.tsx"): "import x from 'x';\n",
		filepath.Join(pagesDir, "B.tsx"): "import x from 'x';\nconst u = API_BASE_URL;\n",
		filepath.Join(pagesDir, "C.tsx"): "export const c = 1;\n",
	})

	uc := NewInsertImports(files)
	report, _, err := uc.Execute(context.Background(), root, importsConfig(
		"frontend/src/pages/A.tsx",
		"frontend/src/pages/B.tsx",
		"frontend/src/pages/C.tsx",
	))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	got := []domain.FileStatus{}
	for _, f := range report.Files {
		got = append(got, f.Status)
	}
	want := []domain.FileStatus{domain.StatusPatched, domain.StatusSkippedMarker, domain.StatusNoImport}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("statuses mismatch (-want +got):\n%s", diff)
	}

	if files.writes[filepath.Join(pagesDir, "B.tsx")] != 0 || files.writes[filepath.Join(pagesDir, "C.tsx")] != 0 {
		t.Fatalf("files without an insertion must not be written: %v", files.writes)
	}
	if files.files[filepath.Join(pagesDir, "C.tsx")] != "export const c = 1;\n" {
		t.Fatalf("file without imports changed")
	}
}

func TestInsertImports_StopsAtMissingFile(t *testing.T) {
	pagesDir := filepath.Join(root, "frontend", "src", "pages")
	files := newMemFiles(map[string]string{
		filepath.Join(pagesDir, "A.tsx"): "import x from 'x';\n",
		filepath.Join(pagesDir, "C.tsx"): "import y from 'y';\n",
	})

	uc := NewInsertImports(files)
	report, _, err := uc.Execute(context.Background(), root, importsConfig(
		"frontend/src/pages/A.tsx",
		"frontend/src/pages/Missing.tsx",
		"frontend/src/pages/C.tsx",
	))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}

	if len(report.Files) != 2 {
		t.Fatalf("expected processing to stop after the failure, got %d files", len(report.Files))
	}
	if report.Files[0].Status != domain.StatusPatched || report.Files[1].Status != domain.StatusFailed {
		t.Fatalf("unexpected statuses: %+v", report.Files)
	}
	if report.Files[1].Error == "" {
		t.Fatalf("expected error text on failed file")
	}
	if files.writes[filepath.Join(pagesDir, "C.tsx")] != 0 {
		t.Fatalf("target after the failure must not be touched")
	}
	if report.EndedAt.IsZero() {
		t.Fatalf("expected partial report to be finished")
	}
}

func TestInsertImports_WriteFailure(t *testing.T) {
	files := newMemFiles(map[string]string{
		filepath.Join(root, "A.tsx"): "import x from 'x';\n",
	})
	writeErr := errors.New("disk full")
	files.writeErr = writeErr

	report, _, err := NewInsertImports(files).Execute(context.Background(), root, importsConfig("A.tsx"))
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}
	if report.Files[0].Status != domain.StatusFailed {
		t.Fatalf("expected failed status, got %s", report.Files[0].Status)
	}
}

func TestInsertImports_DryRunDoesNotWrite(t *testing.T) {
	path := filepath.Join(root, "frontend", "src", "pages", "Statistics.tsx")
	in := "import React from 'react';\n\nexport default function Statistics() {}\n"
	files := newMemFiles(map[string]string{path: in})

	uc := NewInsertImports(files, WithDryRun(true), WithDiffer(diffview.New()))
	report, _, err := uc.Execute(context.Background(), root, importsConfig("frontend/src/pages/Statistics.tsx"))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if files.totalWrites() != 0 {
		t.Fatalf("dry run wrote files: %v", files.writes)
	}
	if files.files[path] != in {
		t.Fatalf("dry run changed content")
	}
	if !report.DryRun {
		t.Fatalf("expected report.DryRun")
	}
	res := report.Files[0]
	if res.Status != domain.StatusPatched {
		t.Fatalf("expected patched (would patch), got %s", res.Status)
	}
	if !strings.Contains(res.Diff, "+"+apiImport) {
		t.Fatalf("expected diff to show the import, got:\n%s", res.Diff)
	}
}

func TestInsertImports_DryRunDiffError(t *testing.T) {
	files := newMemFiles(map[string]string{filepath.Join(root, "A.tsx"): "import x from 'x';\n"})

	uc := NewInsertImports(files, WithDryRun(true), WithDiffer(errDiffer{}))
	_, _, err := uc.Execute(context.Background(), root, importsConfig("A.tsx"))
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("expected KindExecution, got %v", err)
	}
}

func TestInsertImports_SavesReport(t *testing.T) {
	files := newMemFiles(map[string]string{filepath.Join(root, "A.tsx"): "import x from 'x';\n"})
	store := &fakeStore{}
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	uc := NewInsertImports(files, WithReportStore(store), WithClock(func() time.Time { return start }))
	report, id, err := uc.Execute(context.Background(), root, importsConfig("A.tsx"))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if id != "report-1" {
		t.Fatalf("expected report id, got %q", id)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one saved report, got %d", len(store.saved))
	}
	if diff := cmp.Diff(report, store.saved[0]); diff != "" {
		t.Fatalf("saved report differs (-want +got):\n%s", diff)
	}
	if !report.StartedAt.Equal(start) || report.Root != root {
		t.Fatalf("unexpected report header: %+v", report)
	}
}

func TestInsertImports_SaveErrorSurfaces(t *testing.T) {
	files := newMemFiles(map[string]string{filepath.Join(root, "A.tsx"): "import x from 'x';\n"})
	saveErr := errors.New("read-only")

	_, id, err := NewInsertImports(files, WithReportStore(&fakeStore{err: saveErr})).
		Execute(context.Background(), root, importsConfig("A.tsx"))
	if !errors.Is(err, saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
	if id != "" {
		t.Fatalf("expected no id, got %q", id)
	}
	if files.writes[filepath.Join(root, "A.tsx")] != 1 {
		t.Fatalf("patch should still be applied")
	}
}

func TestInsertImports_ContextCancelled(t *testing.T) {
	files := newMemFiles(map[string]string{filepath.Join(root, "A.tsx"): "import x from 'x';\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, _, err := NewInsertImports(files).Execute(ctx, root, importsConfig("A.tsx"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(report.Files) != 0 || files.totalWrites() != 0 {
		t.Fatalf("cancelled run must not touch files")
	}
}

func TestResolveTarget(t *testing.T) {
	if got := resolveTarget("/work/katze", "frontend/src/pages/A.tsx"); got != filepath.Join("/work/katze", "frontend", "src", "pages", "A.tsx") {
		t.Fatalf("unexpected relative resolution %q", got)
	}
	abs := filepath.Join(t.TempDir(), "x.tsx")
	if got := resolveTarget("/work/katze", abs); got != abs {
		t.Fatalf("absolute targets are used as-is, got %q", got)
	}
}

func TestInsertImports_ReportHasRunID(t *testing.T) {
	files := newMemFiles(map[string]string{filepath.Join(root, "A.tsx"): "import x from 'x';\n"})

	first, _, err := NewInsertImports(files).Execute(context.Background(), root, importsConfig("A.tsx"))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	second, _, err := NewInsertImports(files).Execute(context.Background(), root, importsConfig("A.tsx"))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct run ids, got %q and %q", first.ID, second.ID)
	}
}
