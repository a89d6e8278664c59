package integrations

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/comics/pkg/logger"
	"github.com/kerbaras/comics/pkg/providers"
)

// ExportOptions overrides metadata otherwise taken from the comic.
type ExportOptions struct {
	Title  string
	Author string
}

// EPubExporter packs a comic's pages, in page order, into an EPUB.
type EPubExporter struct {
	outputDir string
}

func NewEPubExporter(outputDir string) *EPubExporter {
	return &EPubExporter{outputDir: outputDir}
}

var errNoPages = errors.New("no decodable pages to export")

// Export writes comic to <outputDir>/<title>.epub. Pages that fail to
// decode are left out.
func (x *EPubExporter) Export(comic *providers.Comic, options ExportOptions) (string, error) {
	log := logger.WithComponent("epub").WithField("comic", comic.Title())

	if err := os.MkdirAll(x.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	title, author, description := exportMetadata(comic, options)

	e, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor(author)
	if description != "" {
		e.SetDescription(description)
	}
	if info := comic.Info(); info != nil && info.LanguageISO != "" {
		e.SetLang(info.LanguageISO)
	} else {
		e.SetLang("en")
	}

	added := 0
	for _, page := range comic.Pages() {
		if _, err := page.Image(); err != nil {
			log.WithError(err).WithField("page", page.FileName()).Warn("skipping page")
			continue
		}

		filename := fmt.Sprintf("page-%04d%s", page.Index()+1, strings.ToLower(path.Ext(page.FileName())))
		internalPath, err := e.AddImage(page.Path(), filename)
		if err != nil {
			return "", fmt.Errorf("failed to add image %s: %w", page.FileName(), err)
		}

		body := fmt.Sprintf(
			`<div class="page"><img src="%s" alt="Page %d" style="width:100%%;height:auto;"/></div>`,
			internalPath, page.Index()+1,
		)
		if _, err := e.AddSection(body, fmt.Sprintf("Page %d", page.Index()+1), "", ""); err != nil {
			return "", fmt.Errorf("failed to add section: %w", err)
		}
		added++
	}
	if added == 0 {
		return "", errNoPages
	}

	outputPath := filepath.Join(x.outputDir, sanitizeFilename(title)+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	log.WithField("pages", added).WithField("output", outputPath).Info("exported EPUB")

	return outputPath, nil
}

// exportMetadata prefers explicit options, then ComicInfo.xml, then the
// archive file name.
func exportMetadata(comic *providers.Comic, options ExportOptions) (title, author, description string) {
	title = strings.TrimSuffix(comic.Title(), filepath.Ext(comic.Title()))
	author = "Unknown"

	if info := comic.Info(); info != nil {
		switch {
		case info.Title != "" && info.Series != "":
			title = fmt.Sprintf("%s: %s", info.Series, info.Title)
		case info.Title != "":
			title = info.Title
		case info.Series != "" && info.Number != "":
			title = fmt.Sprintf("%s #%s", info.Series, info.Number)
		case info.Series != "":
			title = info.Series
		}
		if info.Writer != "" {
			author = info.Writer
		}
		description = info.Summary
	}

	if options.Title != "" {
		title = options.Title
	}
	if options.Author != "" {
		author = options.Author
	}
	return title, author, description
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	if result == "" {
		result = "comic"
	}
	return result
}
