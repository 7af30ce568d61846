package table

import (
	"bufio"
	"html"
	"io"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"
)

// Delimiter starts every line of a pipe table.
const Delimiter = "|"

const maxLineSize = 1024 * 1024

// Row is one data row of a pipe table.
type Row struct {
	// Line is the 1-based line number in the source document.
	Line  int
	Cells []string
}

// HeaderFunc reports whether a delimiter-prefixed line is the header of a
// wanted table.
type HeaderFunc func(line string, cells []string) bool

// ColumnCount matches headers with exactly n cells.
func ColumnCount(n int) HeaderFunc {
	return func(_ string, cells []string) bool {
		return len(cells) == n
	}
}

// Contains matches headers whose raw line contains word.
func Contains(word string) HeaderFunc {
	return func(line string, _ []string) bool {
		return strings.Contains(line, word)
	}
}

type Options struct {
	// Columns is the expected cell count of a data row. Zero takes the
	// count from each matched header.
	Columns int
	// Header selects table headers; defaults to ColumnCount(Columns).
	Header HeaderFunc
	Logger log.FieldLogger
}

// Extractor scans a document line by line and yields the data rows of every
// matching table. Use it like bufio.Scanner:
//
//	ex := table.NewExtractor(r, opts)
//	for ex.Next() {
//		row := ex.Row()
//	}
//	if err := ex.Err(); err != nil { ... }
type Extractor struct {
	scanner *bufio.Scanner
	opts    Options

	columns  int
	lineNo   int
	inTable  bool
	skipNext bool

	row     Row
	err     error
	tables  int
	rows    int
	dropped int
}

func NewExtractor(r io.Reader, opts Options) *Extractor {
	if opts.Header == nil {
		opts.Header = ColumnCount(opts.Columns)
	}
	if opts.Logger == nil {
		opts.Logger = log.StandardLogger()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Extractor{
		scanner: scanner,
		opts:    opts,
		columns: opts.Columns,
	}
}

// Next advances to the next data row. It returns false at the end of the
// document or on a read error.
func (e *Extractor) Next() bool {
	for e.scanner.Scan() {
		e.lineNo++
		line := html.UnescapeString(e.scanner.Text())
		e.opts.Logger.Debugf("Read line %d: %s", e.lineNo, line)

		// the separator row under a header
		if e.skipNext {
			e.skipNext = false
			continue
		}

		if !strings.HasPrefix(line, Delimiter) {
			if e.inTable {
				e.opts.Logger.Debugf("Table end detected at line %d", e.lineNo)
			}
			e.inTable = false
			continue
		}

		cells := SplitCells(line)

		if !e.inTable {
			if e.opts.Header(line, cells) {
				e.opts.Logger.Debugf("Table start detected at line %d", e.lineNo)
				e.inTable = true
				e.skipNext = true
				e.tables++
				if e.opts.Columns == 0 {
					e.columns = len(cells)
				}
			}
			continue
		}

		if len(cells) != e.columns {
			e.dropped++
			e.opts.Logger.WithFields(log.Fields{
				"line":    e.lineNo,
				"columns": len(cells),
			}).Warnf("Skipping line %d with unexpected number of columns %d: %q", e.lineNo, len(cells), cells)
			continue
		}

		e.rows++
		e.row = Row{Line: e.lineNo, Cells: cells}
		return true
	}

	e.err = e.scanner.Err()
	return false
}

func (e *Extractor) Row() Row {
	return e.row
}

func (e *Extractor) Err() error {
	return e.err
}

// Tables returns the number of table headers matched so far.
func (e *Extractor) Tables() int {
	return e.tables
}

// Dropped returns the number of rows skipped for a wrong column count.
func (e *Extractor) Dropped() int {
	return e.dropped
}

// Rows drains the extractor.
func (e *Extractor) Rows() ([]Row, error) {
	rows := []Row{}
	for e.Next() {
		rows = append(rows, e.Row())
	}

	if err := e.Err(); err != nil {
		return rows, err
	}

	e.opts.Logger.Infof("Done reading %d table(s), %d rows, %d skipped", e.tables, e.rows, e.dropped)
	return rows, nil
}

// Extract returns every data row of r.
func Extract(r io.Reader, opts Options) ([]Row, error) {
	return NewExtractor(r, opts).Rows()
}

// SplitCells splits a pipe table line into trimmed cells. Text before the
// first and after the last pipe is dropped, and \| is a literal pipe.
func SplitCells(line string) []string {
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	var pieces []string
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && line[i+1] == '|':
			b.WriteByte('|')
			i++
		case c == '|':
			pieces = append(pieces, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	pieces = append(pieces, b.String())

	if len(pieces) < 2 {
		return []string{}
	}

	cells := pieces[1 : len(pieces)-1]
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}

	return cells
}
