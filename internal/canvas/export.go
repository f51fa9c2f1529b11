package canvas

import (
	"encoding/json"
	"io"

	"kamicanvas/internal/kami"
)

// ExportFileName is the download name offered for exported canvases.
const ExportFileName = "kami-canvas.json"

// ExportContentType is the media type of the export file.
const ExportContentType = "application/json; charset=utf-8"

// MarshalExport renders sections as the write-only export document: a JSON
// array indented with two spaces.
func MarshalExport(sections []kami.Section) ([]byte, error) {
	if sections == nil {
		sections = []kami.Section{}
	}
	return json.MarshalIndent(sections, "", "  ")
}

// WriteExport writes the export document for the store's current sections.
func WriteExport(w io.Writer, s *Store) error {
	b, err := MarshalExport(s.Sections())
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
