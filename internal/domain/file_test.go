package domain

import "testing"

func TestFileTypeFromFilename(t *testing.T) {
	t.Parallel()
	cases := []struct {
		filename string
		want     FileType
	}{
		{"slides.pdf", FileTypePDF},
		{"Slides.PDF", FileTypePDF},
		{"doc.docx", FileTypeDOCX},
		{"legacy.doc", FileTypeDOCX},
		{"deck.pptx", FileTypePPTX},
		{"sheet.xlsx", FileTypeXLSX},
		{"notes.txt", FileTypeTXT},
		{"clip.mp4", FileTypeVideo},
		{"talk.mp3", FileTypeAudio},
		{"pic.jpeg", FileTypeImage},
		{"archive.zip", FileTypeOther},
		{"noext", FileTypeOther},
	}
	for _, tc := range cases {
		if got := FileTypeFromFilename(tc.filename); got != tc.want {
			t.Errorf("FileTypeFromFilename(%q)=%q want %q", tc.filename, got, tc.want)
		}
	}
}

func TestMimeTypeFromFilename(t *testing.T) {
	t.Parallel()
	if got := MimeTypeFromFilename("a.pdf"); got != "application/pdf" {
		t.Fatalf("pdf mime: %q", got)
	}
	if got := MimeTypeFromFilename("a.unknown"); got != "application/octet-stream" {
		t.Fatalf("fallback mime: %q", got)
	}
}
