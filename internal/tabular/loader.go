// Package tabular loads CardMarket order exports into typed rows.
//
// Exports come in two shapes: delimited text (semicolon by default, comma
// from older export tooling) and XLSX workbooks. Both are normalized into
// the same row type with trimmed, lower-cased headers, so the rest of the
// pipeline never sees the source format.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"fjacquet/cardmarket-lexoffice/internal/fileutils"
	"fjacquet/cardmarket-lexoffice/internal/logging"
	"fjacquet/cardmarket-lexoffice/internal/models"
	"fjacquet/cardmarket-lexoffice/internal/pipelineerror"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

// KeyColumn is the normalized header of the order-identifier column that
// the aggregator groups on.
const KeyColumn = "orderid"

// Table is a loaded export: typed rows plus the set of normalized headers
// that were actually present in the source. Header presence matters because
// an absent key column is a structural error while an absent optional
// column (e.g. shipment costs) is not.
type Table struct {
	Rows    []models.OrderRow
	Headers []string
}

// HasColumn reports whether the source carried the given normalized header.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Load reads an export file into a Table. The extension selects the format:
// .csv for delimited text, .xlsx for workbooks; anything else fails with
// UnsupportedFormatError. A file with headers but zero data rows fails with
// EmptyInputError. Load has no side effects beyond reading the file.
func Load(filePath string, logger logging.Logger) (*Table, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger.Info("Loading order export", logging.F(logging.FieldFile, filePath))

	if !fileutils.FileExists(filePath) {
		return nil, fmt.Errorf("input file does not exist: %s", filePath)
	}

	ext := fileutils.Extension(filePath)
	var (
		records [][]string
		err     error
	)
	switch ext {
	case ".csv":
		records, err = readDelimited(filePath, logger)
	case ".xlsx":
		records, err = readWorkbook(filePath)
	default:
		return nil, &pipelineerror.UnsupportedFormatError{FilePath: filePath, Extension: ext}
	}
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, &pipelineerror.EmptyInputError{FilePath: filePath}
	}

	headers := normalizeHeaders(records[0])
	rows, err := decodeRows(headers, records[1:])
	if err != nil {
		return nil, fmt.Errorf("error decoding rows from %s: %w", filePath, err)
	}
	if len(rows) == 0 {
		return nil, &pipelineerror.EmptyInputError{FilePath: filePath}
	}

	logger.Info("Loaded order rows",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(rows)))
	return &Table{Rows: rows, Headers: headers}, nil
}

// readDelimited parses a delimited text file, trying the semicolon
// delimiter first and falling back to comma when the row shape does not
// work out (a CSV structure error, or a header that collapsed into a single
// column because the file uses the other separator).
func readDelimited(filePath string, logger logging.Logger) ([][]string, error) {
	data, err := os.ReadFile(filePath) // #nosec G304 -- CLI tool takes user-provided paths
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	records, semiErr := parseDelimited(data, ';')
	if semiErr == nil {
		return records, nil
	}

	logger.Warn("Semicolon delimiter did not fit, retrying with comma",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldReason, semiErr.Error()))

	records, commaErr := parseDelimited(data, ',')
	if commaErr != nil {
		return nil, fmt.Errorf("error parsing delimited file: %w", commaErr)
	}
	return records, nil
}

func parseDelimited(data []byte, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) < 2 {
		return nil, fmt.Errorf("header collapsed into %d column(s) with delimiter %q", len(records[0]), delimiter)
	}
	return records, nil
}

// readWorkbook extracts the first sheet of an XLSX workbook. Trailing empty
// cells are not padded by excelize, so short rows are stretched to the
// header width before decoding.
func readWorkbook(filePath string) ([][]string, error) {
	workbook, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer func() {
		_ = workbook.Close()
	}()

	sheet := workbook.GetSheetName(0)
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return rows, nil
	}

	width := len(rows[0])
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row[:width]
	}
	return rows, nil
}

func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return headers
}

// decodeRows maps normalized records onto the typed OrderRow via gocsv.
// The records are re-emitted as a comma-separated document so gocsv can
// match the struct tags against the normalized header line.
func decodeRows(headers []string, data [][]string) ([]models.OrderRow, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(headers); err != nil {
		return nil, err
	}
	if err := writer.WriteAll(data); err != nil {
		return nil, err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	var rows []models.OrderRow
	if err := gocsv.UnmarshalBytes(buf.Bytes(), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
