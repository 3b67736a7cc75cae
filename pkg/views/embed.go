package views

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed templates
var templateFiles embed.FS

// Templates returns the bundled generic view templates, rooted so names like
// "bread/browse.html" resolve directly.
func Templates() (fs.FS, error) {
	files, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("views: bundled templates: %w", err)
	}
	return files, nil
}
