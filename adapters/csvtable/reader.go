// Package csvtable turns uploaded CSV bytes into an in-memory columnar table.
package csvtable

import (
	"encoding/csv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"lsparrow/domain/table"
	"lsparrow/internal/errors"
	"lsparrow/internal/logging"
)

// candidate pairs an encoding name with its decoder. Order matters: the first
// candidate that decodes cleanly AND parses as rectangular CSV wins, so a
// technically-decodable file in the wrong encoding is accepted as-is. That is
// a known limitation, not something the loader tries to correct.
type candidate struct {
	name string
	enc  encoding.Encoding
}

var supportedEncodings = []candidate{
	{"utf-8", unicode.UTF8},
	{"utf-8-sig", unicode.UTF8BOM},
	{"latin-1", charmap.ISO8859_1},
	{"windows-1250", charmap.Windows1250},
	{"windows-1252", charmap.Windows1252},
}

// Reader reads delimited survey data with automatic encoding detection.
type Reader struct{}

// NewReader creates a new CSV table reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses raw upload bytes into a Table. It returns an
// UNSUPPORTED_ENCODING error when no supported encoding yields well-formed
// CSV with a header row.
func (r *Reader) Read(data []byte) (*table.Table, error) {
	for _, c := range supportedEncodings {
		text, ok := decode(data, c.enc)
		if !ok {
			continue
		}

		tbl, err := parseCSV(text)
		if err != nil {
			continue
		}

		logging.DefaultLogger.Debug("[CSVReader] decoded upload as %s (%d columns, %d rows)",
			c.name, len(tbl.Columns()), tbl.RowCount())
		return tbl, nil
	}

	return nil, errors.UnsupportedEncoding()
}

// decode runs the candidate decoder over the input. A decode that produces a
// replacement character is treated as a failure: legacy code pages map their
// undefined bytes to U+FFFD instead of returning an error, and invalid UTF-8
// sequences decode the same way.
func decode(data []byte, enc encoding.Encoding) (string, bool) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	text := string(out)
	if strings.ContainsRune(text, utf8.RuneError) {
		return "", false
	}
	return text, true
}

// parseCSV parses decoded text into a table. The first record is the header
// row; csv.Reader's field-count check enforces rectangular data, which keeps
// the equal-column-length invariant of the Table.
func parseCSV(text string) (*table.Table, error) {
	reader := csv.NewReader(strings.NewReader(text))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.InvalidInput("file contains no rows")
	}

	return table.New(records[0], records[1:]), nil
}
