// Package input reads sheet definitions in the line-oriented text format:
// a cell count on the first line, then a name line and a content line for
// each cell.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aescanero/dago-node-sheet/internal/sheet"
)

// ErrTruncated is returned when the stream ends before every declared cell was read
var ErrTruncated = errors.New("unexpected end of input")

// RawCell is a cell definition as read, before any evaluation
type RawCell struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
}

// Read parses the cell definitions from r.
func Read(r io.Reader) ([]RawCell, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line, err := nextLine(scanner)
	if err != nil {
		return nil, fmt.Errorf("failed to read cell count: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("invalid cell count %q: %w", line, err)
	}
	if n < 0 {
		return nil, fmt.Errorf("invalid cell count %d", n)
	}

	cells := make([]RawCell, 0, n)
	for i := 0; i < n; i++ {
		name, err := nextLine(scanner)
		if err != nil {
			return nil, fmt.Errorf("failed to read name of cell %d: %w", i+1, err)
		}
		formula, err := nextLine(scanner)
		if err != nil {
			return nil, fmt.Errorf("failed to read content of cell %s: %w", name, err)
		}
		cells = append(cells, RawCell{Name: name, Formula: formula})
	}
	return cells, nil
}

// Sheet builds a sheet from raw cells. Later definitions of a name replace earlier ones.
func Sheet(cells []RawCell) *sheet.Sheet {
	s := sheet.NewSheet()
	for _, c := range cells {
		s.Add(c.Name, c.Formula)
	}
	return s
}

func nextLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrTruncated
	}
	return strings.TrimSuffix(scanner.Text(), "\r"), nil
}
