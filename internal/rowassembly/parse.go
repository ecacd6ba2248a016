package rowassembly

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parser reads delimited text: one header line of field names followed by
// value lines with the same number of columns. There is no quoting or
// escaping. Lines have no length limit and a leading byte-order mark is
// ignored. Blank lines are skipped; an empty value cell leaves that field
// out of the row. With a single-column header a value line holding only an
// empty cell is itself blank and is skipped. Cells must be finite numbers;
// NaN and Inf are rejected.
type Parser struct {
	opts options
}

// NewParser returns a Parser. The matching options are carried into every
// row it produces.
func NewParser(opts ...Option) *Parser {
	return &Parser{opts: buildOptions(opts)}
}

type header struct {
	line  int
	names []string
	keys  []string
}

// ParseRow reads a header line and exactly one value line.
func (p *Parser) ParseRow(r io.Reader) (NamedRow, error) {
	rows, err := p.parse(r, 1)
	if err != nil {
		return NamedRow{}, err
	}
	return rows[0], nil
}

// ParseRows reads a header line and one or more value lines.
func (p *Parser) ParseRows(r io.Reader) ([]NamedRow, error) {
	return p.parse(r, 0)
}

// parse reads up to max value lines; max <= 0 means no limit.
func (p *Parser) parse(r io.Reader, max int) ([]NamedRow, error) {
	var (
		h      *header
		rows   []NamedRow
		lineNo int
	)

	// BOMOverride drops a leading byte-order mark.
	br := bufio.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("cannot read rows: %w", readErr)
		}
		if raw == "" && readErr == io.EOF {
			break
		}
		lineNo++
		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) == "" {
			if readErr == io.EOF {
				break
			}
			continue
		}
		cells := strings.Split(line, string(p.opts.delimiter))

		if h == nil {
			hdr, err := p.parseHeader(cells, lineNo)
			if err != nil {
				return nil, err
			}
			h = hdr
		} else {
			if max > 0 && len(rows) == max {
				return nil, &ParseError{Line: lineNo, Err: ErrTooManyRows}
			}
			row, err := p.parseValues(h, cells, lineNo)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		if readErr == io.EOF {
			break
		}
	}

	if h == nil {
		return nil, &ParseError{Err: ErrEmptyInput}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Line: h.line, Err: ErrNoValues}
	}
	return rows, nil
}

func (p *Parser) parseHeader(cells []string, lineNo int) (*header, error) {
	h := &header{
		line:  lineNo,
		names: make([]string, len(cells)),
		keys:  make([]string, len(cells)),
	}
	seen := make(map[string]struct{}, len(cells))
	for i, name := range cells {
		k := p.opts.key(name)
		if k == "" {
			return nil, &ParseError{Line: lineNo, Field: fmt.Sprintf("#%d", i+1), Err: ErrEmptyFieldName}
		}
		if _, dup := seen[k]; dup {
			return nil, &ParseError{Line: lineNo, Field: name, Err: ErrDuplicateField}
		}
		seen[k] = struct{}{}
		h.names[i] = name
		h.keys[i] = k
	}
	return h, nil
}

func (p *Parser) parseValues(h *header, cells []string, lineNo int) (NamedRow, error) {
	if len(cells) != len(h.names) {
		return NamedRow{}, &ParseError{
			Line: lineNo,
			Err:  fmt.Errorf("%w: got %d values for %d fields", ErrColumnCount, len(cells), len(h.names)),
		}
	}

	row := NamedRow{
		line:   lineNo,
		names:  make([]string, 0, len(cells)),
		values: make(map[string]float64, len(cells)),
		opts:   p.opts,
	}
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return NamedRow{}, &ParseError{
				Line:  lineNo,
				Field: h.names[i],
				Err:   fmt.Errorf("%w: %q", ErrNotNumeric, cell),
			}
		}
		row.values[h.keys[i]] = v
		row.names = append(row.names, h.names[i])
	}
	return row, nil
}
