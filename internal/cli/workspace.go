package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joelspa/Katze/internal/domain"
	"github.com/joelspa/Katze/internal/infra/envconfig"
	"github.com/joelspa/Katze/internal/infra/fsfiles"
	"github.com/joelspa/Katze/internal/infra/logger"
	"github.com/joelspa/Katze/internal/infra/reportstore"
	"github.com/joelspa/Katze/internal/infra/workspacefinder"
	"github.com/joelspa/Katze/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config
	env  envconfig.Overrides

	files *fsfiles.Store
	store *reportstore.JSONStore
}

func loadWorkspace(rootFlag string) (*workspaceCtx, error) {
	env, err := envconfig.Parse()
	if err != nil {
		return nil, &domain.OpError{Op: "cli.env", Kind: domain.KindInvalidConfig, Err: err}
	}

	root, err := resolveWorkspaceRoot(rootFlag, env.Root)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	if b := strings.TrimSpace(env.BaseURL); b != "" {
		cfg.URLs.BaseURL = b
	}

	return &workspaceCtx{
		root:  root,
		cfg:   cfg,
		env:   env,
		files: fsfiles.NewStore(),
		store: reportstore.NewJSONStore(root, cfg),
	}, nil
}

// resolveWorkspaceRoot prefers the --root flag, then KATZEFIX_ROOT, then
// an upward search from the working directory.
func resolveWorkspaceRoot(rootFlag, envRoot string) (string, error) {
	for _, r := range []string{rootFlag, envRoot} {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		abs, err := filepath.Abs(r)
		if err != nil {
			return "", fmt.Errorf("invalid root path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	var locator ports.WorkspaceLocator = workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("katze project not found from %q (tip: pass --root or run `katzefix init`): %w", wd, err)
	}
	return root, nil
}

// startLogging sets up the file logger under the workspace. Logging
// problems never fail a command.
func startLogging(cmd *cobra.Command, ws *workspaceCtx) func() {
	debug, _ := cmd.Flags().GetBool("debug")

	cleanup, err := logger.Setup(logger.Config{
		Root:  ws.root,
		Dir:   ws.cfg.Paths.LogsDir,
		Debug: debug || ws.env.Debug,
	})
	if err != nil || cleanup == nil {
		return func() {}
	}
	return func() { _ = cleanup() }
}
