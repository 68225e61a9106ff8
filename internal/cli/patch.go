package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joelspa/Katze/internal/domain"
	"github.com/joelspa/Katze/internal/infra/diffview"
	"github.com/joelspa/Katze/internal/infra/logger"
	"github.com/joelspa/Katze/internal/usecase"
)

type patchFlags struct {
	op domain.Operation

	root       string
	dryRun     bool
	format     string
	saveReport bool
}

func (f *patchFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.root, "root", "r", "", "Katze project root (optional; autodetected if omitted)")
	c.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show the edits as a diff without writing files")
	c.Flags().StringVar(&f.format, "format", "pretty", "Output format: pretty|json")
	c.Flags().BoolVar(&f.saveReport, "save-report", false, "Save a JSON report under the reports dir")
}

func (f *patchFlags) options(ws *workspaceCtx) []usecase.Option {
	opts := []usecase.Option{
		usecase.WithDryRun(f.dryRun),
		usecase.WithDiffer(diffview.New()),
		usecase.WithLogger(logger.ForOperation(f.op, f.dryRun)),
	}
	if f.saveReport || ws.cfg.Reports.Enabled {
		opts = append(opts, usecase.WithReportStore(ws.store))
	}
	return opts
}

func importsCmd() *cobra.Command {
	flags := patchFlags{op: domain.OpInsertImports}

	c := &cobra.Command{
		Use:   "imports",
		Short: "Add the API_BASE_URL import to the page components that lack it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(flags.format); err != nil {
				return err
			}

			ws, err := loadWorkspace(flags.root)
			if err != nil {
				return err
			}
			defer startLogging(cmd, ws)()

			uc := usecase.NewInsertImports(ws.files, flags.options(ws)...)
			report, id, err := uc.Execute(cmd.Context(), ws.root, ws.cfg)
			if perr := printReport(os.Stdout, report, id, flags.format); perr != nil && err == nil {
				err = perr
			}
			return err
		},
	}

	flags.register(c)
	return c
}

func urlsCmd() *cobra.Command {
	flags := patchFlags{op: domain.OpRewriteURLs}
	var baseURL string

	c := &cobra.Command{
		Use:   "urls",
		Short: "Replace hardcoded API origins in the admin dashboard with API_BASE_URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(flags.format); err != nil {
				return err
			}

			ws, err := loadWorkspace(flags.root)
			if err != nil {
				return err
			}
			if b := strings.TrimSpace(baseURL); b != "" {
				ws.cfg.URLs.BaseURL = b
			}
			defer startLogging(cmd, ws)()

			uc := usecase.NewRewriteURLs(ws.files, flags.options(ws)...)
			report, id, err := uc.Execute(cmd.Context(), ws.root, ws.cfg)
			if perr := printReport(os.Stdout, report, id, flags.format); perr != nil && err == nil {
				err = perr
			}
			return err
		},
	}

	flags.register(c)
	c.Flags().StringVar(&baseURL, "base-url", "", "Hardcoded origin to replace (overrides config and KATZEFIX_BASE_URL)")
	return c
}

func checkFormat(format string) error {
	switch format {
	case "pretty", "json", "":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

