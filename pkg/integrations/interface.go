package integrations

import "github.com/kerbaras/comics/pkg/providers"

// Exporter writes an opened comic to another format and returns the path
// of the file it produced.
type Exporter interface {
	Export(comic *providers.Comic, options ExportOptions) (string, error)
}
