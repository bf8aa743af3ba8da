// Package extract turns stored file bytes into plain text for prompting.
// The format is chosen by file extension, since blobs carry no reliable
// content type once stored.
package extract

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
)

// ErrUnsupported means the extension has no text extractor.
var ErrUnsupported = errors.New("unsupported format")

// Family groups extensions by how a summary is produced for them.
type Family int

const (
	FamilyOther Family = iota
	FamilyText
	FamilyImage
)

var plainText = map[string]bool{
	"txt": true, "md": true, "json": true, "csv": true, "log": true,
	"xml": true, "yaml": true, "yml": true, "html": true, "htm": true,
}

var structured = map[string]func([]byte) (string, error){
	"pdf":  extractPDF,
	"docx": extractDOCX,
	"xlsx": extractXLSX,
}

var imageMIME = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// FamilyOf classifies a file by extension; a declared type of "text"
// forces the text family.
func FamilyOf(name, fileType string) Family {
	ext := catalog.Ext(name)
	switch {
	case fileType == catalog.TypeText, plainText[ext], structured[ext] != nil:
		return FamilyText
	case imageMIME[ext] != "":
		return FamilyImage
	default:
		return FamilyOther
	}
}

// ImageMIME returns the MIME type used when sending an image inline.
func ImageMIME(name string) (string, bool) {
	m, ok := imageMIME[catalog.Ext(name)]
	return m, ok
}

// Text extracts up to limit characters of text from data. limit <= 0 means
// no truncation.
func Text(name string, data []byte, limit int) (string, error) {
	ext := catalog.Ext(name)

	var (
		text string
		err  error
	)
	if fn := structured[ext]; fn != nil {
		text, err = fn(data)
	} else {
		text = strings.ToValidUTF8(string(data), "")
	}
	if err != nil {
		return "", err
	}
	return Truncate(text, limit), nil
}

// Truncate keeps the first limit runes of s.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
