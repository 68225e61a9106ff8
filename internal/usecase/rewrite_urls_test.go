package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joelspa/Katze/internal/domain"
	"github.com/joelspa/Katze/internal/infra/diffview"
)

const authAnchor = "import { useAuth } from '../context/AuthContext';"

func adminPath() string {
	return filepath.Join(root, "frontend", "src", "pages", "AdminDashboard.tsx")
}

func TestRewriteURLs_InsertsImportAndRewritesLiterals(t *testing.T) {
	in := strings.Join([]string{
		"import { useState, useEffect } from 'react';",
		"import axios from 'axios';",
		authAnchor,
		"import { useModal } from '../hooks/useModal';",
		"",
		"const loadUsers = async () => {",
		"    const API_URL = 'http://localhost:5000/api/admin/users';",
		"    const cats = await axios.get(`http://localhost:5000/api/admin/cats/${id}`);",
		"    await axios.get('http://localhost:5000/api/x');",
		"};",
		"",
	}, "\n")
	want := strings.Join([]string{
		"import { useState, useEffect } from 'react';",
		"import axios from 'axios';",
		authAnchor,
		apiImport,
		"import { useModal } from '../hooks/useModal';",
		"",
		"const loadUsers = async () => {",
		"    const API_URL = `${API_BASE_URL}/api/admin/users`;",
		"    const cats = await axios.get(`${API_BASE_URL}/api/admin/cats/${id}`);",
		"    await axios.get(`${API_BASE_URL}/api/x`);",
		"};",
		"",
	}, "\n")

	files := newMemFiles(map[string]string{adminPath(): in})
	report, _, err := NewRewriteURLs(files).Execute(context.Background(), root, domain.DefaultConfig())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if diff := cmp.Diff(want, files.files[adminPath()]); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}

	res := report.Files[0]
	if res.Status != domain.StatusPatched || res.Rewritten != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Path != "frontend/src/pages/AdminDashboard.tsx" {
		t.Fatalf("expected configured path in report, got %q", res.Path)
	}
}

func TestRewriteURLs_MarkerPresentAndNothingHardcoded(t *testing.T) {
	in := authAnchor + "\n" + apiImport + "\n\nconst u = `${API_BASE_URL}/api/x`;\n"
	files := newMemFiles(map[string]string{adminPath(): in})

	report, _, err := NewRewriteURLs(files).Execute(context.Background(), root, domain.DefaultConfig())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if files.files[adminPath()] != in {
		t.Fatalf("content changed")
	}
	if files.totalWrites() != 0 {
		t.Fatalf("unchanged file must not be written")
	}
	if report.Files[0].Status != domain.StatusUnchanged {
		t.Fatalf("expected unchanged, got %s", report.Files[0].Status)
	}
}

func TestRewriteURLs_MarkerPresentStillRewrites(t *testing.T) {
	in := apiImport + "\nconst u = 'http://localhost:5000/api/x';\n"
	files := newMemFiles(map[string]string{adminPath(): in})

	_, _, err := NewRewriteURLs(files).Execute(context.Background(), root, domain.DefaultConfig())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	want := apiImport + "\nconst u = `${API_BASE_URL}/api/x`;\n"
	if diff := cmp.Diff(want, files.files[adminPath()]); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
	if strings.Count(files.files[adminPath()], apiImport) != 1 {
		t.Fatalf("import must not be duplicated")
	}
}

func TestRewriteURLs_MissingAnchorIsNoted(t *testing.T) {
	in := "import axios from 'axios';\nconst u = 'http://localhost:5000/api/x';\n"
	files := newMemFiles(map[string]string{adminPath(): in})

	report, _, err := NewRewriteURLs(files).Execute(context.Background(), root, domain.DefaultConfig())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	want := "import axios from 'axios';\nconst u = `${API_BASE_URL}/api/x`;\n"
	if diff := cmp.Diff(want, files.files[adminPath()]); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}

	res := report.Files[0]
	if res.Status != domain.StatusPatched {
		t.Fatalf("expected patched, got %s", res.Status)
	}
	found := false
	for _, e := range res.Edits {
		if strings.Contains(e, "anchor line not found") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected anchor note in edits, got %v", res.Edits)
	}
}

func TestRewriteURLs_ReportsUnbalancedLiteral(t *testing.T) {
	in := authAnchor + "\nconst u = 'http://localhost:5000/api\n';\n"
	files := newMemFiles(map[string]string{adminPath(): in})

	report, _, err := NewRewriteURLs(files).Execute(context.Background(), root, domain.DefaultConfig())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	res := report.Files[0]
	want := []domain.Literal{{Line: 3, Text: "const u = 'http://localhost:5000/api"}}
	if diff := cmp.Diff(want, res.Unbalanced); diff != "" {
		t.Fatalf("unbalanced mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(files.files[adminPath()], "'http://localhost:5000/api\n") {
		t.Fatalf("unbalanced literal must be left as-is")
	}
}

func TestRewriteURLs_DryRun(t *testing.T) {
	in := authAnchor + "\nconst u = 'http://localhost:5000/api/x';\n"
	files := newMemFiles(map[string]string{adminPath(): in})

	report, _, err := NewRewriteURLs(files, WithDryRun(true), WithDiffer(diffview.New())).
		Execute(context.Background(), root, domain.DefaultConfig())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if files.totalWrites() != 0 {
		t.Fatalf("dry run wrote files")
	}
	d := report.Files[0].Diff
	for _, w := range []string{"+" + apiImport, "-const u = 'http://localhost:5000/api/x';", "+const u = `${API_BASE_URL}/api/x`;"} {
		if !strings.Contains(d, w) {
			t.Fatalf("expected %q in diff, got:\n%s", w, d)
		}
	}
}

func TestRewriteURLs_MissingFile(t *testing.T) {
	report, _, err := NewRewriteURLs(newMemFiles(nil)).Execute(context.Background(), root, domain.DefaultConfig())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
	if len(report.Files) != 1 || report.Files[0].Status != domain.StatusFailed {
		t.Fatalf("expected one failed file, got %+v", report.Files)
	}
}

func TestRewriteURLs_CustomBaseURL(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.URLs.BaseURL = "http://127.0.0.1:8080"
	in := authAnchor + "\nfetch('http://127.0.0.1:8080/api');\nfetch('http://localhost:5000/api');\n"
	files := newMemFiles(map[string]string{adminPath(): in})

	report, _, err := NewRewriteURLs(files).Execute(context.Background(), root, cfg)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if report.Files[0].Rewritten != 1 {
		t.Fatalf("expected only the configured origin rewritten, got %d", report.Files[0].Rewritten)
	}
	if !strings.Contains(files.files[adminPath()], "fetch('http://localhost:5000/api');") {
		t.Fatalf("other origins must be left alone")
	}
}
