package contacts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/statement-splitter/internal/entity"
)

// XLSXSource reads contacts from the first sheet of a workbook, with the same
// header contract as the CSV source. This is the manual-upload shape.
type XLSXSource struct {
	path   string
	logger *slog.Logger
}

func NewXLSXSource(path string, logger *slog.Logger) *XLSXSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXSource{path: path, logger: logger}
}

func (s *XLSXSource) Load(ctx context.Context) ([]entity.Contact, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open contacts workbook: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			s.logger.Warn("failed to close workbook", "path", s.path, "error", closeErr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("contacts workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	account, name, email, err := columnIndexes(rows[0])
	if err != nil {
		return nil, err
	}

	var out []entity.Contact
	skipped := 0
	for _, row := range rows[1:] {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c := recordFromRow(row, account, name, email)
		if c.AccountID == "" {
			skipped++
			continue
		}
		out = append(out, c)
	}

	s.logger.Info("contacts.xlsx.loaded",
		"path", s.path, "sheet", sheets[0], "contacts", len(out), "skipped", skipped)
	return out, nil
}
