// Package document turns uploaded resume files into plain text. Supported
// formats are PDF, DOCX, and plain text, chosen by file extension.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupported is returned for file types the extractor cannot handle.
var ErrUnsupported = errors.New("unsupported document format")

// Extract returns the full plain text of the document. The extension of
// filename decides the parser.
func Extract(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return string(data), nil
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDocx(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(filename))
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

// Extractor adapts Extract to the intake.TextExtractor interface.
type Extractor struct{}

func (Extractor) Text(filename string, data []byte) (string, error) {
	return Extract(filename, data)
}
