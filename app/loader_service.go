package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"salesloader/domain/core"
	"salesloader/domain/record"
	"salesloader/internal"
	"salesloader/internal/errors"
	"salesloader/ports"
)

// LoaderService loads the yearly sales spreadsheets into one table
type LoaderService struct {
	conn        ports.Connection
	reader      ports.SpreadsheetReader
	headers     *HeaderService
	provisioner *TableProvisioner
	inputs      []string
	out         io.Writer
	logger      *internal.Logger
}

// NewLoaderService creates a loader over inputs, the first of which supplies
// the header row for all of them
func NewLoaderService(conn ports.Connection, reader ports.SpreadsheetReader, inputs []string, out io.Writer, logger *internal.Logger) *LoaderService {
	return &LoaderService{
		conn:        conn,
		reader:      reader,
		headers:     NewHeaderService(reader, logger),
		provisioner: NewTableProvisioner(conn, out, logger),
		inputs:      inputs,
		out:         out,
		logger:      logger,
	}
}

// Create runs the whole load into tableName: headers from the first input,
// table provisioning, one put per populated row of every input, then a scan
// printing every stored cell.
func (s *LoaderService) Create(ctx context.Context, tableName string) (*LoadReport, error) {
	if len(s.inputs) == 0 {
		return nil, errors.InvalidInput("no input spreadsheets configured")
	}

	start := time.Now()
	report := &LoadReport{RunID: core.NewRunID(), Table: tableName}
	logger := s.logger.With(report.RunID.Short())
	logger.Info("[Loader] loading %d files into %s", len(s.inputs), tableName)

	headers, err := s.headers.InitHeader(s.inputs[0])
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header row")
	}
	report.Headers = headers

	// A failed create is reported but does not stop the load; the first
	// put then fails against the missing table.
	if err := s.provisioner.CreateTable(ctx, tableName, record.DefaultGroups()...); err != nil {
		logger.Error("[Loader] table provisioning failed, continuing: %v", err)
	}

	table, err := s.conn.Table(ctx, tableName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open table %s", tableName)
	}
	defer table.Close()

	fmt.Fprintln(s.out, FormatHeaders(headers))

	written := make(map[string]string)
	for _, path := range s.inputs {
		fileReport, err := s.loadFile(ctx, table, path, headers, written, logger)
		report.Files = append(report.Files, fileReport)
		if err != nil {
			return report, err
		}
	}

	report.ScannedRows, err = ScanTableData(ctx, table, s.out)
	if err != nil {
		return report, err
	}

	report.Duration = time.Since(start)
	logger.Info("[Loader] %s records written, %s rows in %s after %s",
		humanize.Comma(int64(report.RecordsWritten())), humanize.Comma(int64(report.ScannedRows)), tableName, report.Duration.Round(time.Millisecond))
	return report, nil
}

// loadFile writes one spreadsheet. Row keys restart at 0 for every file, so
// rows of later files replace cells of earlier files under the same key;
// written tracks which file last used each key so the overlap gets logged.
func (s *LoaderService) loadFile(ctx context.Context, table ports.Table, path string, headers []string, written map[string]string, logger *internal.Logger) (report FileReport, err error) {
	report.Path = path
	start := time.Now()

	wb, err := s.reader.Open(path)
	if err != nil {
		return report, err
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	rows, err := wb.FirstSheetRows()
	if err != nil {
		return report, err
	}
	defer rows.Close()

	overwrittenFrom := make(map[string]int)
	rowNum := 0
	for rows.Next() {
		// row keys count the rows the sheet stores, not sheet positions
		if !rows.Stored() {
			continue
		}
		cells, err := rows.Cells()
		if err != nil {
			return report, err
		}
		report.RowsRead++

		if rows.Index() == 0 {
			if drift := headerDrift(headers, cells); drift != "" {
				logger.Warn("[Loader] %s header row differs from the reference file (%s); values are stored under the reference headers", path, drift)
			}
		} else {
			rec := record.Record{Key: record.RowKey(rowNum)}
			for _, cell := range cells {
				if cell.Column >= len(headers) {
					return report, errors.WithCode(errors.CodeInvalidInput,
						fmt.Errorf("%s: %w", path, core.NewColumnOutOfRangeError(rows.Index(), cell.Column, len(headers))))
				}
				rec.Add(headers[cell.Column], record.EncodeValue(cell))
			}

			if !rec.IsEmpty() {
				if err := table.Put(ctx, rec); err != nil {
					return report, errors.Wrapf(errors.Storage("put", err), "failed to write row %s of %s", rec.Key, path)
				}
				report.RecordsWritten++
				if prev, ok := written[rec.Key]; ok && prev != path {
					report.Overwritten++
					overwrittenFrom[prev]++
				}
				written[rec.Key] = path
			}
		}
		rowNum++

		if report.RowsRead%10000 == 0 {
			logger.Debug("[Loader] %s: %s rows read", path, humanize.Comma(int64(report.RowsRead)))
		}
	}
	if err := rows.Err(); err != nil {
		return report, err
	}

	for prev, n := range overwrittenFrom {
		logger.Warn("[Loader] %s overwrote %s rows previously written from %s (row keys restart per file)", path, humanize.Comma(int64(n)), prev)
	}
	logger.Info("[Loader] %s: %s rows read, %s records written in %s", path,
		humanize.Comma(int64(report.RowsRead)), humanize.Comma(int64(report.RecordsWritten)), time.Since(start).Round(time.Millisecond))
	return report, nil
}
