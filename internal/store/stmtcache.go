package store

import (
	"database/sql"
	"fmt"

	"github.com/dukaforge/ftag/pkg/types"
)

// stmtCache is an insertion-ordered registry of prepared statements keyed by
// query text. The first use of a query prepares and registers a handle;
// later uses rebind the same handle, which amortizes preparation cost when
// one operation runs many times in a single invocation (tagging one file
// with many tags, most commonly).
//
// The cache owns its handles. closeAll is the only bulk-release point and is
// called from Store.Close before the database handle itself is released.
type stmtCache struct {
	db    *sql.DB
	order []string
	stmts map[string]*sql.Stmt
}

func newStmtCache(db *sql.DB) *stmtCache {
	return &stmtCache{
		db:    db,
		stmts: make(map[string]*sql.Stmt),
	}
}

// get returns the prepared statement for query, preparing and registering it
// on first use. Registration order is preserved so closeAll can release
// handles deterministically.
func (c *stmtCache) get(query string) (*sql.Stmt, error) {
	if c.stmts == nil {
		return nil, types.ErrNotOpen
	}

	if stmt, ok := c.stmts[query]; ok {
		return stmt, nil
	}

	stmt, err := c.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("prepare statement: %w", err)
	}

	c.stmts[query] = stmt
	c.order = append(c.order, query)
	return stmt, nil
}

// closeAll releases every cached handle in insertion order, then nils the
// registry so a second call is a safe no-op.
func (c *stmtCache) closeAll() error {
	if c.stmts == nil {
		return nil
	}

	var firstErr error
	for _, query := range c.order {
		if err := c.stmts[query].Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close statement: %w", err)
		}
	}

	c.order = nil
	c.stmts = nil
	return firstErr
}
