package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joelspa/Katze/internal/domain"
)

type outputStyles struct {
	ok    lipgloss.Style
	skip  lipgloss.Style
	fail  lipgloss.Style
	warn  lipgloss.Style
	faint lipgloss.Style
	title lipgloss.Style
}

var styles = outputStyles{
	ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	skip:  lipgloss.NewStyle().Faint(true),
	fail:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	faint: lipgloss.NewStyle().Faint(true),
	title: lipgloss.NewStyle().Bold(true),
}

func printReport(w io.Writer, report domain.PatchReport, reportID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"report_id": reportID,
			"report":    report,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyReport(w, report, reportID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyReport(w io.Writer, report domain.PatchReport, reportID string) {
	for _, f := range report.Files {
		name := filepath.Base(filepath.FromSlash(f.Path))

		switch f.Status {
		case domain.StatusPatched:
			line := "✅ " + name
			if report.DryRun {
				line += styles.faint.Render(" (would patch)")
			}
			fmt.Fprintln(w, line)
		case domain.StatusSkippedMarker:
			fmt.Fprintln(w, styles.skip.Render("· "+name+" (already imports the base URL constant)"))
		case domain.StatusNoImport:
			fmt.Fprintln(w, styles.warn.Render("· "+name+" (no import lines; left untouched)"))
		case domain.StatusUnchanged:
			fmt.Fprintln(w, styles.skip.Render("· "+name+" (nothing to change)"))
		case domain.StatusFailed:
			fmt.Fprintln(w, styles.fail.Render("✗ "+name+": "+f.Error))
		}

		for _, lit := range f.Unbalanced {
			fmt.Fprintln(w, styles.warn.Render(fmt.Sprintf("  ! line %d: unbalanced literal left as-is: %s", lit.Line, lit.Text)))
		}
		for _, e := range f.Edits {
			if strings.Contains(e, "not found") {
				fmt.Fprintln(w, styles.warn.Render("  ! "+e))
			}
		}
		if f.Diff != "" {
			fmt.Fprintln(w)
			fmt.Fprint(w, f.Diff)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryLine(report))
	if reportID != "" {
		fmt.Fprintln(w, styles.faint.Render("Report: "+reportID))
	}
}

func summaryLine(report domain.PatchReport) string {
	failed := report.Count(domain.StatusFailed)
	patched := 0
	for _, f := range report.Files {
		if f.Changed() {
			patched++
		}
	}
	skipped := len(report.Files) - patched - failed

	if failed > 0 {
		return styles.fail.Render(fmt.Sprintf("✗ stopped: %d patched, %d skipped, %d failed", patched, skipped, failed))
	}

	var msg string
	switch report.Operation {
	case domain.OpRewriteURLs:
		msg = fmt.Sprintf("✅ Admin dashboard URLs updated (%d patched, %d unchanged)", patched, skipped)
	default:
		msg = fmt.Sprintf("✅ All imports added (%d patched, %d skipped)", patched, skipped)
	}
	if report.DryRun {
		msg += " [dry run]"
	}
	return styles.title.Render(msg)
}
