// Package store holds produced artifacts in process memory, grouped by batch
// id, with usage accounting and explicit eviction. The store is the single
// source of truth for artifact bytes once a batch is created; callers
// re-fetch through it rather than keeping long-lived copies.
package store

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/statement-splitter/internal/common"
	"github.com/joseph-ayodele/statement-splitter/internal/entity"
)

// BatchStore is process-wide shared mutable state; every operation takes the
// store lock so it is safe behind concurrent request handling. Construct one
// per session and inject it; there is no package singleton.
type BatchStore struct {
	mu       sync.RWMutex
	batches  map[string]*entity.Batch
	settings entity.CleanupSettings
	persist  SettingsStore
	logger   *slog.Logger
}

// NewBatchStore loads persisted cleanup settings (defaults when none exist)
// and returns an empty store.
func NewBatchStore(persist SettingsStore, logger *slog.Logger) (*BatchStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if persist == nil {
		persist = NewMemorySettings()
	}
	loaded, err := persist.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings := entity.DefaultCleanupSettings()
	if loaded != nil {
		settings = *loaded
	}
	return &BatchStore{
		batches:  make(map[string]*entity.Batch),
		settings: settings,
		persist:  persist,
		logger:   logger,
	}, nil
}

// newBatchID is time-based with a random suffix so two batches created in the
// same millisecond cannot collide.
func newBatchID(now time.Time) string {
	return now.UTC().Format("20060102T150405.000") + "_" + uuid.NewString()[:8]
}

// CreateBatch stores the artifact list under a fresh batch id. The list must
// be non-empty; insertion order is preserved.
func (s *BatchStore) CreateBatch(artifacts []entity.Artifact) (string, error) {
	if len(artifacts) == 0 {
		return "", common.ErrEmptyBatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	id := newBatchID(now)
	s.batches[id] = &entity.Batch{
		ID:        id,
		Artifacts: append([]entity.Artifact(nil), artifacts...),
		CreatedAt: now.UTC(),
	}
	s.logger.Info("store.batch.created", "batch_id", id, "artifacts", len(artifacts))
	return id, nil
}

// Usage recomputes file count and total bytes over all live batches. Never
// served from a stale cache.
func (s *BatchStore) Usage() entity.UsageSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var files int
	var bytes int64
	for _, b := range s.batches {
		files += len(b.Artifacts)
		for _, a := range b.Artifacts {
			bytes += int64(len(a.Content))
		}
	}
	return entity.UsageSnapshot{
		FileCount:  files,
		TotalBytes: bytes,
		HumanSize:  humanize.Bytes(uint64(bytes)),
		ComputedAt: time.Now().UTC(),
	}
}

// ListBatchIDs returns live batch ids ordered oldest first.
func (s *BatchStore) ListBatchIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.batches))
	for id := range s.batches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.batches[ids[i]].CreatedAt.Before(s.batches[ids[j]].CreatedAt) ||
			(s.batches[ids[i]].CreatedAt.Equal(s.batches[ids[j]].CreatedAt) && ids[i] < ids[j])
	})
	return ids
}

// BatchInfo summarizes one batch; ok is false for an unknown id.
func (s *BatchStore) BatchInfo(id string) (entity.BatchInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.batches[id]
	if !ok {
		return entity.BatchInfo{}, false
	}
	var bytes int64
	for _, a := range b.Artifacts {
		bytes += int64(len(a.Content))
	}
	return entity.BatchInfo{
		ID:        b.ID,
		Count:     len(b.Artifacts),
		SizeLabel: humanize.Bytes(uint64(bytes)),
		CreatedAt: b.CreatedAt,
	}, true
}

// Artifacts returns the batch's artifacts in page order; ok is false for an
// unknown id.
func (s *BatchStore) Artifacts(id string) ([]entity.Artifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.batches[id]
	if !ok {
		return nil, false
	}
	return append([]entity.Artifact(nil), b.Artifacts...), true
}

// ClearBatch evicts one batch whole. Unknown ids are a no-op returning false;
// calling twice is safe.
func (s *BatchStore) ClearBatch(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[id]; !ok {
		return false
	}
	delete(s.batches, id)
	s.logger.Info("store.batch.cleared", "batch_id", id)
	return true
}

// ClearAll evicts every batch. Returns false when the store was already empty.
func (s *BatchStore) ClearAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.batches) == 0 {
		return false
	}
	n := len(s.batches)
	s.batches = make(map[string]*entity.Batch)
	s.logger.Info("store.cleared", "batches", n)
	return true
}

// OnDownloadComplete clears the batch when AutoClearAfterDownload is enabled;
// otherwise it is a no-op. Returns whether the batch was cleared.
func (s *BatchStore) OnDownloadComplete(id string) bool {
	s.mu.Lock()
	auto := s.settings.AutoClearAfterDownload
	s.mu.Unlock()

	if !auto {
		return false
	}
	return s.ClearBatch(id)
}

// Settings returns the current cleanup settings.
func (s *BatchStore) Settings() entity.CleanupSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings merges the patch into the current settings and persists the
// result.
func (s *BatchStore) UpdateSettings(patch entity.CleanupSettingsPatch) (entity.CleanupSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := patch.Apply(s.settings)
	if err := s.persist.Save(merged); err != nil {
		return s.settings, fmt.Errorf("save settings: %w", err)
	}
	s.settings = merged
	s.logger.Info("store.settings.updated",
		"auto_clear_after_download", merged.AutoClearAfterDownload,
		"show_usage", merged.ShowUsage,
		"manual_delete_enabled", merged.ManualDeleteEnabled,
		"confirm_before_delete", merged.ConfirmBeforeDelete,
	)
	return merged, nil
}
