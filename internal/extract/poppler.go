package extract

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/statement-splitter/constants"
)

type Config struct {
	Pdftotext   string // binary name or absolute path; if empty -> "pdftotext"
	Pdfseparate string // binary name or absolute path; if empty -> "pdfseparate"
	Pdfinfo     string // binary name or absolute path; if empty -> "pdfinfo"
}

// Poppler implements PageSource by shelling out to the poppler utilities.
type Poppler struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewPoppler(cfg Config, logger *slog.Logger) *Poppler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdfseparate == "" {
		cfg.Pdfseparate = "pdfseparate"
	}
	if cfg.Pdfinfo == "" {
		cfg.Pdfinfo = "pdfinfo"
	}
	return &Poppler{cfg: cfg, runner: execRunner{}, logger: logger}
}

// PageCount runs pdfinfo and parses the "Pages:" line. A failure here means
// the document could not be opened or decoded at all.
func (p *Poppler) PageCount(ctx context.Context, path string) (int, error) {
	if constants.MapExtToFormat(filepath.Ext(path)) == "" {
		return 0, fmt.Errorf("unsupported extension: %q", filepath.Ext(path))
	}
	out, errb, err := p.runner.Run(ctx, p.cfg.Pdfinfo, path)
	if err != nil {
		return 0, fmt.Errorf("open document: %s: %w", strings.TrimSpace(string(errb)), err)
	}
	sc := bufio.NewScanner(strings.NewReader(string(out)))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:")))
		if convErr != nil {
			return 0, fmt.Errorf("parse page count %q: %w", line, convErr)
		}
		return n, nil
	}
	return 0, fmt.Errorf("pdfinfo output has no page count")
}

// PageText extracts one page's text.
// pdftotext -layout -enc UTF-8 -eol unix -f N -l N <path> -
func (p *Poppler) PageText(ctx context.Context, path string, page int) (string, error) {
	n := strconv.Itoa(page + 1) // poppler pages are 1-based
	out, errb, err := p.runner.Run(ctx, p.cfg.Pdftotext,
		"-layout", "-enc", "UTF-8", "-eol", "unix", "-f", n, "-l", n, path, "-")
	if err != nil {
		return "", fmt.Errorf("page %s text: %s: %w", n, strings.TrimSpace(string(errb)), err)
	}
	return string(out), nil
}

// ExtractPage copies one page into a standalone PDF via pdfseparate and
// returns its bytes. Temp files are removed before returning.
func (p *Poppler) ExtractPage(ctx context.Context, path string, page int) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "ss-page-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			p.logger.Warn("failed to remove temp dir", "dir", tmpDir, "error", rmErr)
		}
	}()

	n := strconv.Itoa(page + 1)
	out := filepath.Join(tmpDir, "page.pdf")
	if _, errb, runErr := p.runner.Run(ctx, p.cfg.Pdfseparate, "-f", n, "-l", n, path, out); runErr != nil {
		return nil, fmt.Errorf("page %s separate: %s: %w", n, strings.TrimSpace(string(errb)), runErr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("read separated page %s: %w", n, err)
	}
	return data, nil
}
