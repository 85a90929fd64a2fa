package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"t3scan/internal/logging"
	"t3scan/internal/resolution"
)

// SQLite is the longer-lived cache tier. Responses are stored as
// zstd-compressed JSON in .t3scan/cache.db under the working directory.
// Every failure degrades to a miss; a broken persistent tier must never
// break resolution.
type SQLite struct {
	conn    *sql.DB
	logger  *logging.Logger
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	hits    atomic.Int64
	misses  atomic.Int64
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS path_cache (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	expires_at TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_path_cache_expires ON path_cache(expires_at);
`

// OpenSQLite opens or creates the persistent cache database under
// {stateDir}/cache.db.
func OpenSQLite(stateDir string, logger *logging.Logger) (*SQLite, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	dbPath := filepath.Join(stateDir, "cache.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	logger.Debug("Opened persistent path cache", map[string]any{"path": dbPath})
	return &SQLite{
		conn:    conn,
		logger:  logger,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Get returns the cached response if present and fresh.
func (c *SQLite) Get(req *resolution.Request) (*resolution.Response, bool) {
	var payload []byte
	var expiresAt string

	err := c.conn.QueryRow(`
		SELECT payload, expires_at FROM path_cache WHERE key = ?
	`, req.CacheKey()).Scan(&payload, &expiresAt)

	if err == sql.ErrNoRows {
		c.misses.Add(1)
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Persistent cache lookup failed", map[string]any{"error": err.Error()})
		c.misses.Add(1)
		return nil, false
	}

	expiresAtTime, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil || time.Now().After(expiresAtTime) {
		_, _ = c.conn.Exec("DELETE FROM path_cache WHERE key = ?", req.CacheKey())
		c.misses.Add(1)
		return nil, false
	}

	decompressed, err := c.decoder.DecodeAll(payload, nil)
	if err != nil {
		c.logger.Warn("Persistent cache payload corrupt", map[string]any{"error": err.Error()})
		_, _ = c.conn.Exec("DELETE FROM path_cache WHERE key = ?", req.CacheKey())
		c.misses.Add(1)
		return nil, false
	}

	var resp resolution.Response
	if err := json.Unmarshal(decompressed, &resp); err != nil {
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return &resp, true
}

// Put stores a cache-eligible response.
func (c *SQLite) Put(req *resolution.Request, resp *resolution.Response) {
	if !resp.CacheEligible() {
		return
	}
	ttl := req.CacheOptions().TTL
	if ttl <= 0 {
		ttl = resolution.DefaultCacheTTL
	}

	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Warn("Failed to encode response for cache", map[string]any{"error": err.Error()})
		return
	}
	compressed := c.encoder.EncodeAll(data, nil)

	now := time.Now()
	_, err = c.conn.Exec(`
		INSERT OR REPLACE INTO path_cache (key, payload, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`, req.CacheKey(), compressed,
		now.Add(ttl).Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		c.logger.Warn("Persistent cache store failed", map[string]any{"error": err.Error()})
	}
}

// Stats returns the tier's counters.
func (c *SQLite) Stats() resolution.CacheStats {
	var entries int64
	if err := c.conn.QueryRow("SELECT COUNT(*) FROM path_cache").Scan(&entries); err != nil {
		entries = 0
	}
	return resolution.CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: entries,
	}
}

// Clear drops every entry.
func (c *SQLite) Clear() {
	if _, err := c.conn.Exec("DELETE FROM path_cache"); err != nil {
		c.logger.Warn("Failed to clear persistent cache", map[string]any{"error": err.Error()})
	}
}

// CleanupExpired removes expired entries. Called opportunistically by the
// CLI, not required for correctness.
func (c *SQLite) CleanupExpired() {
	now := time.Now().Format(time.RFC3339)
	if _, err := c.conn.Exec("DELETE FROM path_cache WHERE expires_at < ?", now); err != nil {
		c.logger.Warn("Failed to clean up expired cache entries", map[string]any{"error": err.Error()})
	}
}

// Close releases the database handle and codec resources.
func (c *SQLite) Close() error {
	c.encoder.Close()
	c.decoder.Close()
	return c.conn.Close()
}
