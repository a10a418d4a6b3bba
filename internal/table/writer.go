package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/jobboard-finder/internal/types"
)

// Layout selects the output columns.
type Layout string

const (
	// LayoutDetailed writes the vendor and a note describing how the board was found.
	LayoutDetailed Layout = "detailed"
	// LayoutBoard writes the board URL, vendor and the apply-by-email update.
	LayoutBoard Layout = "board"
)

// Header returns the column names written for the layout.
func (l Layout) Header() []string {
	switch l {
	case LayoutBoard:
		return []string{"companyName", "applyUrl", "job_board_url", "board_type", "update"}
	default:
		return []string{"companyName", "source_applyUrl", "job_board_vendor", "job_board_url", "notes"}
	}
}

// Record returns the fields written for row.
func (l Layout) Record(row types.OutputRow) []string {
	switch l {
	case LayoutBoard:
		return []string{row.Company, row.SourceURL, row.BoardURL, row.Vendor, row.Update}
	default:
		return []string{row.Company, row.SourceURL, row.Vendor, row.BoardURL, row.Note}
	}
}

// ParseLayout converts a layout name, defaulting to LayoutDetailed for "".
func ParseLayout(name string) (Layout, error) {
	switch Layout(name) {
	case "", LayoutDetailed:
		return LayoutDetailed, nil
	case LayoutBoard:
		return LayoutBoard, nil
	}
	return "", fmt.Errorf("unknown output layout %q", name)
}

// Writer appends output rows to a CSV table. Each row is flushed as it is
// written so partial results survive an interrupted run.
type Writer struct {
	path   string
	layout Layout
	csv    *csv.Writer
	closer io.Closer
}

// Create creates (or truncates) the output table at path and writes the header.
func Create(path string, layout Layout) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to create output", Cause: err}
	}
	w, err := NewWriter(path, f, layout)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// NewWriter writes the header for layout to dst. name is used in errors only.
func NewWriter(name string, dst io.Writer, layout Layout) (*Writer, error) {
	w := &Writer{path: name, layout: layout, csv: csv.NewWriter(dst)}
	if err := w.write(layout.Header()); err != nil {
		return nil, err
	}
	return w, nil
}

// Write appends one output row.
func (w *Writer) Write(row types.OutputRow) error {
	return w.write(w.layout.Record(row))
}

func (w *Writer) write(record []string) error {
	if err := w.csv.Write(record); err != nil {
		return &Error{Path: w.path, Message: "failed to write row", Cause: err}
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return &Error{Path: w.path, Message: "failed to flush row", Cause: err}
	}
	return nil
}

// Close flushes and closes the underlying file, if any.
func (w *Writer) Close() error {
	w.csv.Flush()
	flushErr := w.csv.Error()
	if w.closer != nil {
		if err := w.closer.Close(); err != nil {
			return &Error{Path: w.path, Message: "failed to close output", Cause: err}
		}
	}
	if flushErr != nil {
		return &Error{Path: w.path, Message: "failed to flush output", Cause: flushErr}
	}
	return nil
}
