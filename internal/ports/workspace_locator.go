package ports

// WorkspaceLocator finds the Katze project root starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}
