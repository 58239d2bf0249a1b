package docreader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gomutex/godocx"
)

func TestExtractLines_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interview.txt")
	content := "Sam: How's business?\r\nJo: Revenue is up.\n\nJo: Hiring is hard."
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	lines, err := ExtractLines(path)
	if err != nil {
		t.Fatalf("ExtractLines: %v", err)
	}
	want := []string{"Sam: How's business?", "Jo: Revenue is up.", "", "Jo: Hiring is hard."}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestExtractLines_Docx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interview.docx")

	doc, err := godocx.NewDocument()
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	for _, line := range []string{"Sam: First question?", "Jo: First answer."} {
		p := doc.AddParagraph("")
		p.AddText(line).Font("Calibri").Size(11)
	}
	if err := doc.SaveTo(path); err != nil {
		t.Fatalf("save docx: %v", err)
	}

	lines, err := ExtractLines(path)
	if err != nil {
		t.Fatalf("ExtractLines: %v", err)
	}

	var nonEmpty []string
	for _, l := range lines {
		if l != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}
	if len(nonEmpty) != 2 {
		t.Fatalf("expected 2 paragraphs, got %q", nonEmpty)
	}
	if nonEmpty[0] != "Sam: First question?" || nonEmpty[1] != "Jo: First answer." {
		t.Errorf("unexpected paragraphs: %q", nonEmpty)
	}
}

func TestExtractLines_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interview.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ExtractLines(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestExtractLines_CorruptDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(path, []byte("this is not a zip archive"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ExtractLines(path); err == nil {
		t.Fatal("expected error for corrupt docx")
	}
}

func TestSupported(t *testing.T) {
	cases := map[string]bool{
		"a.docx":     true,
		"b.DOCX":     true,
		"c.txt":      true,
		"d.pdf":      false,
		"noext":      false,
		"weird.docm": false,
	}
	for name, want := range cases {
		if got := Supported(name); got != want {
			t.Errorf("Supported(%q) = %v, want %v", name, got, want)
		}
	}
}
