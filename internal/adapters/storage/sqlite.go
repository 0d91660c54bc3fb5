package storage

// sqlite.go — cache persistente de lecturas fork.
//
// Estrategia:
//   - `core_reads`: UNA fila por (endpoint, cuenta, slot) con UPSERT.
//     El slot es "spot:<index>" o "margin".
//   - El valor se guarda como TEXT para no perder rango de uint64.
//   - Prune automático al arrancar: filas no tocadas en 7 días. Un snapshot
//     más viejo que eso ya no representa nada útil para los tests.

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	_ "modernc.org/sqlite"

	"github.com/endix-foundation/hyper-evm-lib/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS core_reads (
    endpoint   TEXT NOT NULL,
    account    TEXT NOT NULL,
    slot       TEXT NOT NULL,
    value      TEXT NOT NULL,
    run_id     TEXT,
    fetched_at DATETIME NOT NULL,
    PRIMARY KEY (endpoint, account, slot)
);

CREATE INDEX IF NOT EXISTS idx_core_reads_at ON core_reads(fetched_at DESC);
`

// retentionReads: lecturas más viejas que esto se podan al abrir.
const retentionReads = 7 * 24 * time.Hour

// SQLiteCache implementa ports.ReadCache usando SQLite (pure Go, sin CGo).
type SQLiteCache struct {
	db *sql.DB
}

var _ ports.ReadCache = (*SQLiteCache)(nil)

// NewSQLiteCache abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia lecturas antiguas.
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteCache: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteCache: apply schema: %w", err)
	}

	c := &SQLiteCache{db: db}
	c.pruneOld(context.Background())
	return c, nil
}

// Get devuelve el valor cacheado y si existía.
func (c *SQLiteCache) Get(ctx context.Context, endpoint string, addr common.Address, slot string) (uint64, bool, error) {
	var raw string
	err := c.db.QueryRowContext(ctx,
		`SELECT value FROM core_reads WHERE endpoint = ? AND account = ? AND slot = ?`,
		endpoint, addr.Hex(), slot,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage.Get: query: %w", err)
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("storage.Get: parse %q: %w", raw, err)
	}
	return v, true, nil
}

// Put guarda o reemplaza el valor para (endpoint, cuenta, slot).
func (c *SQLiteCache) Put(ctx context.Context, endpoint string, addr common.Address, slot string, value uint64, runID string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO core_reads (endpoint, account, slot, value, run_id, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(endpoint, account, slot) DO UPDATE SET
			value      = excluded.value,
			run_id     = excluded.run_id,
			fetched_at = excluded.fetched_at`,
		endpoint, addr.Hex(), slot, strconv.FormatUint(value, 10), runID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage.Put: upsert: %w", err)
	}
	return nil
}

// Close cierra la conexión a la base de datos limpiamente.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// pruneOld borra lecturas fuera de la ventana de retención. Best effort.
func (c *SQLiteCache) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionReads)
	_, _ = c.db.ExecContext(ctx, `DELETE FROM core_reads WHERE fetched_at < ?`, cutoff)
}
