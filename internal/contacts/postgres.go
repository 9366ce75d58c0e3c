package contacts

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joseph-ayodele/statement-splitter/internal/entity"
)

// DirectoryConfig configures the Postgres contact directory.
type DirectoryConfig struct {
	DSN          string
	Table        string // defaults to "contacts"
	MaxConns     int32
	DialTimeout  time.Duration
	QueryTimeout time.Duration
}

// PGDirectory loads the full contact list from a Postgres table with
// account_id, name, and email columns.
type PGDirectory struct {
	pool   *pgxpool.Pool
	cfg    DirectoryConfig
	logger *slog.Logger
}

var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// OpenPGDirectory creates the pool and verifies connectivity.
func OpenPGDirectory(ctx context.Context, cfg DirectoryConfig, logger *slog.Logger) (*PGDirectory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Table == "" {
		cfg.Table = "contacts"
	}
	if !identRe.MatchString(cfg.Table) {
		return nil, fmt.Errorf("invalid contacts table name: %q", cfg.Table)
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = 5
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 3 * time.Second
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 10 * time.Second
	}

	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse contacts dsn: %w", err)
	}
	pc.MaxConns = cfg.MaxConns
	pc.ConnConfig.RuntimeParams["application_name"] = "statement-splitter"

	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect contacts db: %w", err)
	}
	if err := pool.Ping(dialCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping contacts db: %w", err)
	}

	logger.Info("contacts directory connected", "table", cfg.Table)
	return &PGDirectory{pool: pool, cfg: cfg, logger: logger}, nil
}

func (d *PGDirectory) Load(ctx context.Context) ([]entity.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.QueryTimeout)
	defer cancel()

	q := fmt.Sprintf(`SELECT account_id, name, email FROM %s`, d.cfg.Table)
	rows, err := d.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var out []entity.Contact
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.AccountID, &c.Name, &c.Email); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		if c.AccountID == "" {
			continue
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read contacts: %w", err)
	}

	d.logger.Info("contacts.directory.loaded", "table", d.cfg.Table, "contacts", len(out))
	return out, nil
}

func (d *PGDirectory) Close() {
	d.pool.Close()
}
