// Package ingest turns tender documents on disk into plain text for the
// extraction contract.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

var excessiveLinesRe = regexp.MustCompile(`\n{4,}`)

var supportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

// Supported reports whether the file extension can be read.
func Supported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

type Document struct {
	Path string
	Name string
	Text string
}

type Reader struct {
	converter *md.Converter
}

func NewReader() *Reader {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	converter.Remove("script", "style", "noscript", "nav", "footer")

	return &Reader{converter: converter}
}

func (r *Reader) Read(path string) (Document, error) {
	if !Supported(path) {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}

	text := string(content)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err = r.converter.ConvertString(text)
		if err != nil {
			return Document{}, fmt.Errorf("convert %s to markdown: %w", filepath.Base(path), err)
		}
		text = excessiveLinesRe.ReplaceAllString(text, "\n\n\n")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Document{}, fmt.Errorf("document %s is empty", filepath.Base(path))
	}

	return Document{Path: path, Name: filepath.Base(path), Text: text}, nil
}
