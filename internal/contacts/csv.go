package contacts

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joseph-ayodele/statement-splitter/internal/entity"
)

// CSVSource reads contacts from a CSV file with a header row. Column order is
// free; headers are matched case-insensitively.
type CSVSource struct {
	path   string
	logger *slog.Logger
}

func NewCSVSource(path string, logger *slog.Logger) *CSVSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVSource{path: path, logger: logger}
}

func (s *CSVSource) Load(ctx context.Context) ([]entity.Contact, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open contacts csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows tolerated; missing cells read as ""

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read contacts header: %w", err)
	}
	account, name, email, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	var out []entity.Contact
	skipped := 0
	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read contacts row: %w", err)
		}
		c := recordFromRow(row, account, name, email)
		if c.AccountID == "" {
			skipped++
			continue
		}
		out = append(out, c)
	}

	s.logger.Info("contacts.csv.loaded", "path", s.path, "contacts", len(out), "skipped", skipped)
	return out, nil
}
