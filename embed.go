// Package assistant provides embedded runtime resources and an overlay lookup
// that checks local disk first, falling back to the embedded copy.
package assistant

import (
	_ "embed"
	"os"
	"path/filepath"
)

//go:embed help.txt
var helpText string

// HelpText returns the built-in command reference.
func HelpText() string { return helpText }

// LoadHelp returns dir/help.txt when it exists, or the embedded help text.
func LoadHelp(dir string) string {
	if dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, "help.txt")); err == nil && len(data) > 0 {
			return string(data)
		}
	}
	return helpText
}
