package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/jonathan/jobboard-finder/internal/types"
)

// Input column names.
const (
	ColumnCompany  = "companyName"
	ColumnApplyURL = "applyUrl"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader yields input rows from a CSV table with a header line.
// Columns other than companyName and applyUrl are ignored.
type Reader struct {
	path       string
	csv        *csv.Reader
	companyIdx int
	urlIdx     int
	closer     io.Closer
}

// Open opens the input table at path. A missing file yields *MissingInputError.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path, Cause: err}
		}
		return nil, &Error{Path: path, Message: "failed to open input", Cause: err}
	}
	r, err := NewReader(path, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader reads the header from src. name is used in errors only.
func NewReader(name string, src io.Reader) (*Reader, error) {
	br := bufio.NewReader(src)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &Error{Path: name, Line: 1, Message: "input has no header", Cause: ErrMissingColumn}
		}
		return nil, &Error{Path: name, Line: 1, Message: "failed to read header", Cause: err}
	}

	r := &Reader{path: name, csv: cr, companyIdx: -1, urlIdx: -1}
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case ColumnCompany:
			if r.companyIdx < 0 {
				r.companyIdx = i
			}
		case ColumnApplyURL:
			if r.urlIdx < 0 {
				r.urlIdx = i
			}
		}
	}
	if r.companyIdx < 0 {
		return nil, &Error{Path: name, Line: 1, Message: fmt.Sprintf("column %q", ColumnCompany), Cause: ErrMissingColumn}
	}
	if r.urlIdx < 0 {
		return nil, &Error{Path: name, Line: 1, Message: fmt.Sprintf("column %q", ColumnApplyURL), Cause: ErrMissingColumn}
	}
	return r, nil
}

// Next returns the next row, or io.EOF after the last one.
// Short records yield empty values for the missing columns. Stray quotes are
// kept as literal text; a row that still cannot be parsed yields an error
// wrapping ErrMalformedRow and the following rows remain readable.
func (r *Reader) Next() (types.InputRow, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return types.InputRow{}, io.EOF
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return types.InputRow{}, &Error{
				Path:    r.path,
				Line:    parseErr.Line,
				Message: "failed to parse row",
				Cause:   fmt.Errorf("%w: %w", ErrMalformedRow, err),
			}
		}
		return types.InputRow{}, &Error{Path: r.path, Message: "failed to read row", Cause: err}
	}
	return types.InputRow{
		Company:  field(record, r.companyIdx),
		ApplyURL: field(record, r.urlIdx),
	}, nil
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
