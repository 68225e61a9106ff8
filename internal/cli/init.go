package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joelspa/Katze/internal/infra/fsworkspace"
	"github.com/joelspa/Katze/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a katzefix.yaml with the default targets into a Katze checkout",
		RunE: func(_ *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, force); err != nil {
				return err
			}

			fmt.Printf("Initialized katzefix in %s\n", root)
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", ".", "Katze project root to initialize")
	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing katzefix.yaml")
	return c
}
