// Package splitter drives one sequential pass over a source document,
// producing one single-page artifact per page whose owner could be
// identified, and a per-page error list for the rest.
package splitter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/statement-splitter/constants"
	"github.com/joseph-ayodele/statement-splitter/internal/entity"
	"github.com/joseph-ayodele/statement-splitter/internal/extract"
	"github.com/joseph-ayodele/statement-splitter/internal/rules"
)

// ProgressFunc receives a 0-100 percentage proportional to pages completed.
// It reaches 100 only after the page loop finishes.
type ProgressFunc func(percent int)

// Options configures one splitting run.
type Options struct {
	Period     string // period label for filenames; may be empty
	OnProgress ProgressFunc
}

// Result is the outcome of one run. For a document that opened successfully
// and was not cancelled, len(Artifacts)+len(Errors) equals Pages.
type Result struct {
	Status    constants.RunStatus
	Artifacts []entity.Artifact
	Errors    []string // tagged with 1-based page numbers, ascending
	Pages     int
	Duration  time.Duration
}

// Engine coordinates the page source, the pattern cascade, and naming.
type Engine struct {
	source      extract.PageSource
	matcher     *rules.Matcher
	logger      *slog.Logger
	maxPages    int
	pageTimeout time.Duration
}

func NewEngine(source extract.PageSource, set rules.Set, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{source: source, matcher: rules.NewMatcher(set), logger: logger}
}

// SetMaxPages caps the number of pages processed per run. 0 means no limit.
func (e *Engine) SetMaxPages(n int) {
	e.maxPages = n
}

// SetPageTimeout bounds the time spent on any single page. 0 means no bound.
func (e *Engine) SetPageTimeout(d time.Duration) {
	e.pageTimeout = d
}

// Split iterates pages 0..N-1 in order. Page-level failures are collected as
// errors and never abort the run. Cancellation is honored between pages only,
// yielding a CANCELLED result with everything accumulated so far. A document
// that cannot be opened fails the whole run with no page loop.
func (e *Engine) Split(ctx context.Context, path string, opts Options) (Result, error) {
	start := time.Now()

	pages, err := e.source.PageCount(ctx, path)
	if err != nil {
		e.logger.Error("split.open.failed", "path", path, "error", err)
		return Result{Status: constants.RunStatusFailed, Duration: time.Since(start)},
			fmt.Errorf("open document: %w", err)
	}
	if e.maxPages > 0 && pages > e.maxPages {
		pages = e.maxPages
	}
	e.logger.Info("split.start", "path", path, "pages", pages, "period", opts.Period)

	res := Result{Status: constants.RunStatusRunning, Pages: pages}
	seen := make(map[string]struct{}, pages)

	for i := 0; i < pages; i++ {
		if ctx.Err() != nil {
			e.logger.Warn("split.cancelled", "path", path, "completed_pages", i)
			res.Status = constants.RunStatusCancelled
			res.Duration = time.Since(start)
			return res, nil
		}

		e.splitPage(ctx, path, i, opts.Period, seen, &res)

		if opts.OnProgress != nil {
			opts.OnProgress((i + 1) * 100 / pages)
		}
	}

	res.Status = constants.RunStatusCompleted
	res.Duration = time.Since(start)
	e.logger.Info("split.done",
		"path", path,
		"pages", pages,
		"artifacts", len(res.Artifacts),
		"page_errors", len(res.Errors),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// splitPage handles one page: text, cascade, naming, page copy. Exactly one
// of res.Artifacts/res.Errors grows per call.
func (e *Engine) splitPage(ctx context.Context, path string, page int, period string, seen map[string]struct{}, res *Result) {
	pageNo := page + 1

	if e.pageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.pageTimeout)
		defer cancel()
	}

	text, err := e.source.PageText(ctx, path, page)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("page %d: extract text: %v", pageNo, err))
		return
	}

	ext := e.matcher.Extract(text)
	if !ext.OK() {
		res.Errors = append(res.Errors,
			fmt.Sprintf("page %d: no %s found", pageNo, strings.Join(ext.Missing, " or ")))
		return
	}

	name := FileName(ext.AccountID, NormalizeName(ext.CustomerName), period)
	if _, dup := seen[name]; dup {
		// same account and name on a later page; keep both, page-tagged
		name = strings.TrimSuffix(name, ".pdf") + fmt.Sprintf("_p%d.pdf", pageNo)
	} else {
		seen[name] = struct{}{}
	}

	content, err := e.source.ExtractPage(ctx, path, page)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("page %d: extract page: %v", pageNo, err))
		return
	}

	res.Artifacts = append(res.Artifacts, entity.Artifact{
		ID:          uuid.New(),
		AccountID:   ext.AccountID,
		Customer:    ext.CustomerName,
		FileName:    name,
		PageIndex:   page,
		Content:     content,
		ContentSize: len(content),
	})
	e.logger.Debug("split.page.ok", "page", pageNo, "account_id", ext.AccountID, "file", name)
}
