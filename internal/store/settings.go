package store

import (
	"sync"

	"github.com/joseph-ayodele/statement-splitter/internal/entity"
)

// SettingsStore persists cleanup settings. Load returns nil when nothing has
// been saved yet.
type SettingsStore interface {
	Load() (*entity.CleanupSettings, error)
	Save(entity.CleanupSettings) error
}

// MemorySettings is the session-scoped implementation; settings live only as
// long as the process.
type MemorySettings struct {
	mu    sync.Mutex
	saved *entity.CleanupSettings
}

func NewMemorySettings() *MemorySettings {
	return &MemorySettings{}
}

func (m *MemorySettings) Load() (*entity.CleanupSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return nil, nil
	}
	s := *m.saved
	return &s, nil
}

func (m *MemorySettings) Save(s entity.CleanupSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = &s
	return nil
}
