package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Template names resolved against TemplatesFS.
const (
	ChainTemplate = "templates/chain"
	PageTemplate  = "templates/page"
)

// TemplatesFS exposes the embedded template bundle so callers can extend or
// replace the chain markup.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
