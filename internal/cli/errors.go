package cli

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/joelspa/Katze/internal/domain"
)

// userMessage turns an error into a one-line hint followed by the cause.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return err.Error()
	}

	hint := ""
	switch oe.Kind {
	case domain.KindNoProject:
		hint = "Katze project not found (pass --root or run `katzefix init`)"
	case domain.KindNotFound:
		if oe.Path != "" {
			hint = "Target file not found: " + filepath.Base(oe.Path)
		} else {
			hint = "Not found"
		}
	case domain.KindInvalidConfig:
		base := "config"
		if strings.TrimSpace(oe.Path) != "" {
			base = filepath.Base(oe.Path)
		}
		hint = "Invalid config in " + base
	case domain.KindEncoding:
		hint = "Not valid UTF-8 text: " + filepath.Base(oe.Path)
	case domain.KindIO:
		hint = "I/O failure (see logs)"
	default:
		hint = "Unexpected error (see logs)"
	}
	return hint + " (" + err.Error() + ")"
}
