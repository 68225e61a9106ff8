package ports

// TextFiles reads and overwrites whole text files.
type TextFiles interface {
	ReadText(path string) (string, error)
	WriteText(path string, content string) error
	Exists(path string) bool
}
