// Package report writes the optional per-batch quote digest as a Word
// document, a readable companion to the spreadsheet.
package report

import (
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/quotedeck/quotedeck/internal/batch"
)

const (
	fontName  = "Times New Roman"
	bodySize  = 12
	titleSize = 16
	fileSize  = 14
)

// WriteDigest renders the merged rows grouped by file: one heading per
// source transcript, one line per quote with its timestamp and topic.
// Row order is preserved as given.
func WriteDigest(path string, rows []batch.MergedRow) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), "Interview Quote Digest", true, titleSize)

	currentFile := ""
	for _, row := range rows {
		if row.FileName != currentFile {
			currentFile = row.FileName
			doc.AddParagraph("")
			addStyledRun(doc.AddParagraph(""), currentFile, true, fileSize)
		}

		p := doc.AddParagraph("")
		if row.Timestamp != "" {
			addRun(p, row.Timestamp+"  ", false)
		}
		addRun(p, row.Quote, false)
		addRun(p, "  ["+string(row.Topic)+"]", true)
	}

	return doc.SaveTo(path)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRun(p *docx.Paragraph, text string, bold bool) {
	run := p.AddText(text).Font(fontName).Size(bodySize).Color("000000")
	if bold {
		run.Bold(true)
	}
}
