package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/statement-splitter/internal/entity"
)

// SQLiteSettings persists cleanup settings across sessions in a single-row
// SQLite table.
type SQLiteSettings struct {
	db     *sql.DB
	logger *slog.Logger
}

const settingsSchema = `
CREATE TABLE IF NOT EXISTS cleanup_settings (
	id                          INTEGER PRIMARY KEY CHECK (id = 1),
	auto_clear_after_download   INTEGER NOT NULL,
	show_usage                  INTEGER NOT NULL,
	manual_delete_enabled       INTEGER NOT NULL,
	confirm_before_delete       INTEGER NOT NULL
);`

// OpenSQLiteSettings opens (creating if needed) the settings database at path.
// Use ":memory:" for a throwaway database.
func OpenSQLiteSettings(path string, logger *slog.Logger) (*SQLiteSettings, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}
	if _, err := db.Exec(settingsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init settings schema: %w", err)
	}
	logger.Debug("settings db ready", "path", path)
	return &SQLiteSettings{db: db, logger: logger}, nil
}

func (s *SQLiteSettings) Load() (*entity.CleanupSettings, error) {
	row := s.db.QueryRow(`SELECT auto_clear_after_download, show_usage,
		manual_delete_enabled, confirm_before_delete
		FROM cleanup_settings WHERE id = 1`)

	var out entity.CleanupSettings
	err := row.Scan(&out.AutoClearAfterDownload, &out.ShowUsage,
		&out.ManualDeleteEnabled, &out.ConfirmBeforeDelete)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &out, nil
}

func (s *SQLiteSettings) Save(in entity.CleanupSettings) error {
	_, err := s.db.Exec(`INSERT INTO cleanup_settings
		(id, auto_clear_after_download, show_usage, manual_delete_enabled, confirm_before_delete)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			auto_clear_after_download = excluded.auto_clear_after_download,
			show_usage                = excluded.show_usage,
			manual_delete_enabled     = excluded.manual_delete_enabled,
			confirm_before_delete     = excluded.confirm_before_delete`,
		in.AutoClearAfterDownload, in.ShowUsage, in.ManualDeleteEnabled, in.ConfirmBeforeDelete)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (s *SQLiteSettings) Close() error {
	return s.db.Close()
}
