package csvstore

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// rawTable is a table as text cells. Mutations go through this form so that
// untouched cells are written back exactly as they were read.
type rawTable struct {
	header []string
	rows   [][]string
	exists bool
}

func (r *rawTable) index(column string) int {
	for i, c := range r.header {
		if c == column {
			return i
		}
	}
	return -1
}

// ensureColumns appends missing columns to the header and pads every row.
func (r *rawTable) ensureColumns(columns ...string) {
	for _, c := range columns {
		if r.index(c) < 0 {
			r.header = append(r.header, c)
		}
	}
	for i, row := range r.rows {
		if len(row) < len(r.header) {
			r.rows[i] = append(row, make([]string, len(r.header)-len(row))...)
		}
	}
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// decodeCSV parses BOM-prefixed (or plain) UTF-8 CSV. An empty input has no
// header and no rows.
func decodeCSV(r io.Reader) ([]string, [][]string, error) {
	records, err := newCSVReader(r).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	header := records[0]
	rows := records[1:]
	for i, row := range rows {
		if len(row) < len(header) {
			rows[i] = append(row, make([]string, len(header)-len(row))...)
		}
	}
	return header, rows, nil
}

// ValidateCSV reports whether data is well-formed CSV: a non-empty header,
// balanced quotes and the same number of fields on every row.
func ValidateCSV(data []byte) error {
	cr := csv.NewReader(transform.NewReader(bytes.NewReader(data), unicode.UTF8BOM.NewDecoder()))
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty file", ErrInvalidCSV)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	if len(header) == 1 && header[0] == "" {
		return fmt.Errorf("%w: missing header row", ErrInvalidCSV)
	}
	for {
		_, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}
	}
}

func (s *Store) path(table string) string {
	return filepath.Join(s.dir, table+".csv")
}

// readRaw reads a table file. A missing file yields an empty table carrying
// the declared columns.
func (s *Store) readRaw(table string) (*rawTable, error) {
	f, err := os.Open(s.path(table))
	if errors.Is(err, fs.ErrNotExist) {
		return &rawTable{header: s.declaredColumns(table)}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, rows, err := decodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(f.Name()), err)
	}
	raw := &rawTable{header: header, rows: rows, exists: true}
	raw.ensureColumns(s.declaredColumns(table)...)
	return raw, nil
}

// writeRaw replaces a table file atomically: the new contents go to a
// temporary file in the same directory which is then renamed over the old one.
func (s *Store) writeRaw(table string, raw *rawTable) error {
	return s.writeFile(table, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(raw.header); err != nil {
			return err
		}
		if err := cw.WriteAll(raw.rows); err != nil {
			return err
		}
		return cw.Error()
	})
}

func (s *Store) writeFile(table string, fill func(w io.Writer) error) (err error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+table+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	tw := transform.NewWriter(tmp, unicode.UTF8BOM.NewEncoder())
	if err = fill(tw); err != nil {
		return fmt.Errorf("write %s: %w", table, err)
	}
	if err = tw.Close(); err != nil {
		return fmt.Errorf("flush %s: %w", table, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", table, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", table, err)
	}
	if err = os.Rename(tmp.Name(), s.path(table)); err != nil {
		return fmt.Errorf("replace %s: %w", table, err)
	}
	return nil
}
