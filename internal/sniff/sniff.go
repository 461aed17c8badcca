// Package sniff classifies opaque byte payloads into file extensions.
// Payloads inside asset containers frequently lack any usable name, so the
// extension is derived from content: text heuristics first, then binary
// magic numbers.
package sniff

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Binary magic numbers checked against the start of a payload.
var (
	pngSignature = []byte{0x89, 0x50, 0x4E, 0x47}
	jpegSOI      = []byte{0xFF, 0xD8}
	pdfHeader    = []byte("%PDF")
)

// ExtensionFor returns a file extension (without the dot) for data.
//
// The rules form a priority chain; the first match wins:
//  1. a non-empty extension on name's path component is used verbatim;
//  2. valid UTF-8 payloads are classified as md, html, json, xml or txt;
//  3. binary payloads are matched against PNG, JPEG and PDF magic numbers;
//  4. everything else is bin.
func ExtensionFor(data []byte, name string) string {
	if ext := strings.TrimPrefix(filepath.Ext(filepath.Base(name)), "."); ext != "" {
		return ext
	}

	if len(data) > 0 && utf8.Valid(data) {
		return textExtension(string(data))
	}

	switch {
	case bytes.HasPrefix(data, pngSignature):
		return "png"
	case bytes.HasPrefix(data, jpegSOI):
		return "jpg"
	case bytes.HasPrefix(data, pdfHeader):
		return "pdf"
	}
	return "bin"
}

// textExtension classifies a decoded text payload. Markdown markers are
// checked before HTML because fenced code blocks often contain markup.
func textExtension(s string) string {
	if hasMarkdownMarker(s) {
		return "md"
	}
	if hasHTMLMarker(s) {
		return "html"
	}

	trimmed := strings.TrimLeft(s, " \t\r\n")
	switch {
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		return "json"
	case strings.HasPrefix(trimmed, "<?xml"), strings.HasPrefix(trimmed, "<!DOCTYPE plist"):
		return "xml"
	}
	return "txt"
}

// hasMarkdownMarker reports a heading marker, fenced code marker, or an
// inline-link pattern anywhere in the text.
func hasMarkdownMarker(s string) bool {
	if strings.HasPrefix(s, "# ") || strings.Contains(s, "\n# ") || strings.Contains(s, "\n## ") {
		return true
	}
	if strings.Contains(s, "```") {
		return true
	}
	return strings.Contains(s, "](")
}

// hasHTMLMarker reports an HTML or DOCTYPE opening tag.
func hasHTMLMarker(s string) bool {
	lower := strings.ToLower(strings.TrimLeft(s, " \t\r\n"))
	return strings.HasPrefix(lower, "<!doctype html") ||
		strings.HasPrefix(lower, "<html")
}
