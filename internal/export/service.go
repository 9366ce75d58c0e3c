package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/statement-splitter/internal/entity"
)

// Service produces XLSX bytes summarizing a matching run for the operator.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

const (
	sheetMatched   = "Matched"
	sheetUnmatched = "Unmatched"
)

// MatchReportXLSX returns a workbook with one sheet per partition plus
// summary counts in the matched sheet header area.
func (s *Service) MatchReportXLSX(result entity.MatchResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	// excelize creates "Sheet1"; rename it rather than leaving it dangling
	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(defaultSheet, sheetMatched); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetUnmatched); err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	write := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	matchedHeaders := []string{"File", "Account", "Customer", "Email", "Page"}
	for i, h := range matchedHeaders {
		write(sheetMatched, i+1, 1, h)
	}
	row := 2
	for _, p := range result.Matched {
		write(sheetMatched, 1, row, p.Artifact.FileName)
		write(sheetMatched, 2, row, p.Artifact.AccountID)
		write(sheetMatched, 3, row, p.Contact.Name)
		write(sheetMatched, 4, row, p.Contact.Email)
		write(sheetMatched, 5, row, p.Artifact.PageIndex+1)
		row++
	}
	// summary block to the right of the data
	write(sheetMatched, 7, 1, "Total")
	write(sheetMatched, 8, 1, result.Stats.Total)
	write(sheetMatched, 7, 2, "Matched")
	write(sheetMatched, 8, 2, result.Stats.Matched)
	write(sheetMatched, 7, 3, "Unmatched")
	write(sheetMatched, 8, 3, result.Stats.Unmatched)

	unmatchedHeaders := []string{"File", "Account", "Captured Name", "Page"}
	for i, h := range unmatchedHeaders {
		write(sheetUnmatched, i+1, 1, h)
	}
	row = 2
	for _, p := range result.Unmatched {
		write(sheetUnmatched, 1, row, p.Artifact.FileName)
		write(sheetUnmatched, 2, row, p.Artifact.AccountID)
		write(sheetUnmatched, 3, row, p.Artifact.Customer)
		write(sheetUnmatched, 4, row, p.Artifact.PageIndex+1)
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheetMatched, "A", "A", 48) // file
	_ = f.SetColWidth(sheetMatched, "B", "B", 18) // account
	_ = f.SetColWidth(sheetMatched, "C", "D", 28) // customer, email
	_ = f.SetColWidth(sheetUnmatched, "A", "A", 48)
	_ = f.SetColWidth(sheetUnmatched, "B", "C", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"matched", result.Stats.Matched,
		"unmatched", result.Stats.Unmatched,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
