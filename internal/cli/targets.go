package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joelspa/Katze/internal/domain"
	"github.com/joelspa/Katze/internal/usecase"
)

func targetsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "targets",
		Short: "Inspect the files katzefix patches",
	}

	c.AddCommand(targetsListCmd())
	return c
}

func targetsListCmd() *cobra.Command {
	var root string
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List target files and whether they already use the base URL constant",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspace(root)
			if err != nil {
				return err
			}

			refs := usecase.NewListTargets(ws.files).Execute(ws.root, ws.cfg)
			return printTargets(os.Stdout, ws.root, refs, format)
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "Katze project root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func printTargets(w io.Writer, root string, refs []domain.TargetRef, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"root": root, "targets": refs})
	}

	fmt.Fprintf(w, "Project: %s\n\n", root)
	for _, r := range refs {
		state := styles.warn.Render("pending")
		switch {
		case !r.Exists:
			state = styles.fail.Render("missing")
		case r.HasMarker:
			state = styles.ok.Render("done")
		}
		fmt.Fprintf(w, "- [%s] %s  %s\n", r.Operation, r.Path, state)
	}
	return nil
}
