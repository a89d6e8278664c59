package providers

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// ComicInfoFile is the conventional metadata entry shipped in comic archives.
const ComicInfoFile = "ComicInfo.xml"

// ComicInfo is the subset of the ComicInfo.xml schema readers display.
type ComicInfo struct {
	XMLName          xml.Name `xml:"ComicInfo"`
	Title            string   `xml:"Title,omitempty"`
	Series           string   `xml:"Series,omitempty"`
	Number           string   `xml:"Number,omitempty"`
	Volume           string   `xml:"Volume,omitempty"`
	Summary          string   `xml:"Summary,omitempty"`
	Year             int      `xml:"Year,omitempty"`
	Writer           string   `xml:"Writer,omitempty"`
	Penciller        string   `xml:"Penciller,omitempty"`
	Publisher        string   `xml:"Publisher,omitempty"`
	PageCount        int      `xml:"PageCount,omitempty"`
	LanguageISO      string   `xml:"LanguageISO,omitempty"`
	Manga            string   `xml:"Manga,omitempty"`
	ReadingDirection string   `xml:"ReadingDirection,omitempty"`
}

// RightToLeft reports whether pages are meant to be read right to left.
func (c *ComicInfo) RightToLeft() bool {
	return strings.EqualFold(c.Manga, "YesAndRightToLeft") || strings.EqualFold(c.ReadingDirection, "rtl")
}

// isComicInfo matches only the metadata file at the archive root. The entry
// stays a page like any other.
func isComicInfo(name string) bool {
	return strings.ReplaceAll(name, `\`, "/") == ComicInfoFile
}

func readComicInfo(file string) (*ComicInfo, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var info ComicInfo
	if err := xml.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ComicInfoFile, err)
	}
	return &info, nil
}
