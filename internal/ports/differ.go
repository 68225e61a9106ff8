package ports

// Differ renders the difference between two versions of a file.
type Differ interface {
	Unified(path, before, after string) (string, error)
}
