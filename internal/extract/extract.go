package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	// ErrUnsupportedFormat indicates a file type the extractor does not handle.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoTextExtracted indicates a readable file that yielded no text,
	// e.g. an image-only PDF scan.
	ErrNoTextExtracted = errors.New("no text extracted")
)

// Text extracts plain text from a resume file. The document type is determined
// by the filename extension. Libraries used: github.com/ledongthuc/pdf (PDF)
// and github.com/nguyenthenguyen/docx (DOCX). Legacy binary .doc is rejected.
func Text(fileName string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileName)
	}
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf library panics on some malformed inputs; a corrupt upload must
	// surface as an extraction error, not crash the process.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("extract pdf: %v", rec)
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("extract pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("extract pdf: %w", err)
	}
	if strings.TrimSpace(buf.String()) == "" {
		return "", ErrNoTextExtracted
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("extract docx: %w", errors.New("empty file"))
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("extract docx: %w", err)
	}
	defer doc.Close()

	text := paragraphText(doc.Editable().GetContent())
	if strings.TrimSpace(text) == "" {
		return "", ErrNoTextExtracted
	}
	return text, nil
}

// paragraphText walks the document XML collecting character data, joining
// paragraphs with newlines.
func paragraphText(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
