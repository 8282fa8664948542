package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/polymarket-pnl/internal/bet"
)

const (
	basePrefix = "polymarket_pnl_report"
	sheetName  = "PnL"
)

// WriteError reports a failed report file operation with the path involved.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Files names the report pair produced by one write.
type Files struct {
	CSVPath  string
	XLSXPath string
}

// Writer persists one computed bet as a CSV and XLSX pair sharing a
// timestamped basename.
type Writer struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewWriter creates a report writer.
func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{
		logger: logger,
		now:    time.Now,
	}
}

// Write renders the result into <outputDir>/polymarket_pnl_report_<ts>.csv
// and .xlsx, creating the directory if absent. Both formats are always
// attempted; per-format failures are joined, never masking each other. The
// returned Files always names both target paths.
func (w *Writer) Write(res *bet.Result, outputDir string) (*Files, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, &WriteError{Path: outputDir, Err: fmt.Errorf("failed to create output directory: %w", err)}
	}

	base := fmt.Sprintf("%s_%s", basePrefix, w.now().UTC().Format("20060102_150405"))
	files := &Files{
		CSVPath:  filepath.Join(outputDir, base+".csv"),
		XLSXPath: filepath.Join(outputDir, base+".xlsx"),
	}
	headers, record := Headers(), Record(res)

	var errs []error
	if err := w.writeCSV(files.CSVPath, headers, record); err != nil {
		errs = append(errs, &WriteError{Path: files.CSVPath, Err: err})
	} else {
		w.logger.Info("Report written",
			zap.String("file", files.CSVPath),
			zap.String("format", "csv"))
	}
	if err := w.writeXLSX(files.XLSXPath, headers, record); err != nil {
		errs = append(errs, &WriteError{Path: files.XLSXPath, Err: err})
	} else {
		w.logger.Info("Report written",
			zap.String("file", files.XLSXPath),
			zap.String("format", "xlsx"))
	}

	if err := errors.Join(errs...); err != nil {
		return files, err
	}
	return files, nil
}

func (w *Writer) writeCSV(path string, headers, record []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("failed to write CSV record: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

func (w *Writer) writeXLSX(path string, headers, record []string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	headerCells, recordCells := toCells(headers), toCells(record)
	if err := f.SetSheetRow(sheetName, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A2", &recordCells); err != nil {
		return fmt.Errorf("failed to write record row: %w", err)
	}

	// Market column is wide, everything else uniform.
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", "A", 40); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", lastCol, 17); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save XLSX file: %w", err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
