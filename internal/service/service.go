// Package service wires the splitting engine, batch store, and matching join
// behind one validated surface, the shape a transport layer would call.
package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/statement-splitter/constants"
	"github.com/joseph-ayodele/statement-splitter/internal/common"
	"github.com/joseph-ayodele/statement-splitter/internal/contacts"
	"github.com/joseph-ayodele/statement-splitter/internal/entity"
	"github.com/joseph-ayodele/statement-splitter/internal/match"
	"github.com/joseph-ayodele/statement-splitter/internal/splitter"
	"github.com/joseph-ayodele/statement-splitter/internal/store"
)

type Service struct {
	engine *splitter.Engine
	store  *store.BatchStore
	logger *slog.Logger
}

func NewService(engine *splitter.Engine, st *store.BatchStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{engine: engine, store: st, logger: logger}
}

// SplitRequest represents one split-and-store invocation.
type SplitRequest struct {
	Path       string
	Period     string
	OnProgress splitter.ProgressFunc
}

// SplitResponse carries the run result plus the batch id when one was
// created. Cancelled runs and runs with zero artifacts create no batch.
type SplitResponse struct {
	BatchID string
	Result  splitter.Result
}

// SplitAndStore validates the request, runs the engine, and stores the
// produced artifacts as a new batch.
func (s *Service) SplitAndStore(ctx context.Context, req SplitRequest) (*SplitResponse, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		s.logger.Error("split request missing path")
		return nil, common.InvalidArgumentError("path is required")
	}
	if constants.MapExtToFormat(filepath.Ext(path)) == "" {
		s.logger.Error("split request has unsupported extension", "path", path)
		return nil, common.InvalidArgumentErrorf("unsupported source format: %q", filepath.Ext(path))
	}

	s.logger.Info("starting split", "path", path, "period", req.Period)
	result, err := s.engine.Split(ctx, path, splitter.Options{
		Period:     strings.TrimSpace(req.Period),
		OnProgress: req.OnProgress,
	})
	if err != nil {
		return nil, common.InvalidArgumentErrorf("split: %v", err)
	}

	resp := &SplitResponse{Result: result}
	if result.Status == constants.RunStatusCompleted && len(result.Artifacts) > 0 {
		id, err := s.store.CreateBatch(result.Artifacts)
		if err != nil {
			return nil, common.InternalErrorf("store batch: %v", err)
		}
		resp.BatchID = id
	}

	s.logger.Info("split finished",
		"path", path,
		"status", string(result.Status),
		"batch_id", resp.BatchID,
		"artifacts", len(result.Artifacts),
		"page_errors", len(result.Errors),
	)
	return resp, nil
}

// MatchBatch re-fetches the batch's artifacts through the store (the store is
// the source of truth for artifact bytes), loads the complete contact list,
// and joins them. Matching itself never fails; only input loading can.
func (s *Service) MatchBatch(ctx context.Context, batchID string, src contacts.Source) (entity.MatchResult, error) {
	artifacts, ok := s.store.Artifacts(batchID)
	if !ok {
		return entity.MatchResult{}, common.NotFoundError("batch not found: " + batchID)
	}

	list, err := src.Load(ctx)
	if err != nil {
		s.logger.Error("contact load failed", "batch_id", batchID, "error", err)
		return entity.MatchResult{}, common.InternalErrorf("load contacts: %v", err)
	}

	result := match.Match(artifacts, list)
	s.logger.Info("match finished",
		"batch_id", batchID,
		"total", result.Stats.Total,
		"matched", result.Stats.Matched,
		"unmatched", result.Stats.Unmatched,
	)
	return result, nil
}

// WriteArtifacts writes every artifact of the batch into dir under its
// derived filename, then signals download completion so the store can
// auto-clear when configured to.
func (s *Service) WriteArtifacts(batchID, dir string) (int, error) {
	artifacts, ok := s.store.Artifacts(batchID)
	if !ok {
		return 0, common.NotFoundError("batch not found: " + batchID)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, common.InternalErrorf("create output dir: %v", err)
	}

	written := 0
	for _, a := range artifacts {
		out := filepath.Join(dir, a.FileName)
		if err := os.WriteFile(out, a.Content, 0o644); err != nil {
			return written, common.InternalErrorf("write %s: %v", a.FileName, err)
		}
		written++
	}

	cleared := s.store.OnDownloadComplete(batchID)
	s.logger.Info("artifacts written", "batch_id", batchID, "dir", dir, "files", written, "auto_cleared", cleared)
	return written, nil
}
