package bread

import (
	"io/fs"

	"github.com/goliatone/go-bread/pkg/views"
)

// EmbeddedTemplates exposes the bundled generic view templates so callers
// can reuse or extend them without importing the views package directly.
func EmbeddedTemplates() (fs.FS, error) {
	return views.Templates()
}
