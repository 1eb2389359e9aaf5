package app

import (
	"fmt"
	"strings"

	"salesloader/domain/record"
	"salesloader/internal"
	"salesloader/ports"
)

// HeaderService extracts the column header list from a reference workbook
type HeaderService struct {
	reader ports.SpreadsheetReader
	logger *internal.Logger
}

// NewHeaderService creates a new header service
func NewHeaderService(reader ports.SpreadsheetReader, logger *internal.Logger) *HeaderService {
	return &HeaderService{reader: reader, logger: logger}
}

// InitHeader opens path, reads only row 0 of the first sheet and returns the
// header names by column position. Columns without a header cell get "".
func (s *HeaderService) InitHeader(path string) (headers []string, err error) {
	wb, err := s.reader.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	rows, err := wb.FirstSheetRows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return []string{}, nil
	}
	cells, err := rows.Cells()
	if err != nil {
		return nil, err
	}

	headers = headerList(cells)
	s.logger.Debug("[HeaderService] %d headers from %s", len(headers), path)
	return headers, nil
}

func headerList(cells []record.Cell) []string {
	width := 0
	for _, c := range cells {
		if c.Column+1 > width {
			width = c.Column + 1
		}
	}
	headers := make([]string, width)
	for _, c := range cells {
		headers[c.Column] = record.NormalizeHeader(c.Raw)
	}
	return headers
}

// FormatHeaders renders headers as a bracketed, comma separated list
func FormatHeaders(headers []string) string {
	return "[" + strings.Join(headers, ", ") + "]"
}

// headerDrift describes how a later file's header row differs from the
// reference headers, or "" when they match
func headerDrift(reference []string, cells []record.Cell) string {
	got := headerList(cells)
	if len(got) != len(reference) {
		return fmt.Sprintf("%d headers instead of %d: %s", len(got), len(reference), FormatHeaders(got))
	}
	for i := range got {
		if got[i] != reference[i] {
			return fmt.Sprintf("column %d is %q, reference has %q", i, got[i], reference[i])
		}
	}
	return ""
}
