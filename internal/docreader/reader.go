// Package docreader turns uploaded documents into ordered text lines.
// It supports .docx (one line per paragraph) and plain .txt files.
package docreader

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractLines reads the document at path into its ordered lines. A
// failure here means the file cannot participate in the batch; callers
// record it as a diagnostic and move on.
func ExtractLines(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return readDocx(path)
	case ".txt":
		return readText(path)
	default:
		return nil, fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}
}

// Supported reports whether the file name has a readable extension.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx", ".txt":
		return true
	}
	return false
}

func readText(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(content, "\n"), nil
}

// readDocx walks word/document.xml and emits one line per paragraph.
// Empty paragraphs are kept; the transcript parser skips them, and
// dropping them here would shift paragraph positions.
func readDocx(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return nil, fmt.Errorf("open document.xml: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return nil, fmt.Errorf("not a docx: word/document.xml missing")
	}
	defer docXML.Close()

	var lines []string
	var para strings.Builder
	inParagraph := false

	decoder := xml.NewDecoder(docXML)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				inParagraph = true
				para.Reset()
			case "t":
				if inParagraph {
					var text string
					if err := decoder.DecodeElement(&text, &el); err != nil {
						return nil, fmt.Errorf("parse text run: %w", err)
					}
					para.WriteString(text)
				}
			case "br", "tab":
				if inParagraph {
					para.WriteString(" ")
				}
			}
		case xml.EndElement:
			if el.Name.Local == "p" && inParagraph {
				lines = append(lines, para.String())
				inParagraph = false
			}
		}
	}

	return lines, nil
}
