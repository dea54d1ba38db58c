package store

import (
	"database/sql"
	"strings"
)

// hiddenPrefix marks values suppressed from results by default, following
// the dotfile convention.
const hiddenPrefix = "."

// Cursor is a lazy, one-shot sequence of single string values produced by a
// listing query. A cursor is consumed once and must be closed exactly once,
// even on early abandonment.
//
// Next returns (value, true) for each row and ("", false) at the end of the
// sequence. A false return does not distinguish a clean end from a stepping
// failure; callers must check Err after iteration. Err is nil after a clean
// end and non-nil if the underlying store failed mid-iteration.
type Cursor interface {
	Next() (string, bool)
	Err() error
	Close() error
}

// hiddenPolicy decides which values a cursor yields. It is fixed at cursor
// construction rather than consulted from global state.
type hiddenPolicy struct {
	showHidden bool
}

func (p hiddenPolicy) visible(value string) bool {
	return p.showHidden || !strings.HasPrefix(value, hiddenPrefix)
}

// rowsCursor streams single-column rows from a live query result.
type rowsCursor struct {
	rows   *sql.Rows
	policy hiddenPolicy
	err    error
}

func newRowsCursor(rows *sql.Rows, showHidden bool) *rowsCursor {
	return &rowsCursor{
		rows:   rows,
		policy: hiddenPolicy{showHidden: showHidden},
	}
}

// Next advances to the next visible row. Hidden rows are skipped
// transparently; the caller never sees them unless the policy allows.
func (c *rowsCursor) Next() (string, bool) {
	if c.err != nil {
		return "", false
	}

	for c.rows.Next() {
		var value string
		if err := c.rows.Scan(&value); err != nil {
			c.err = err
			return "", false
		}
		if c.policy.visible(value) {
			return value, true
		}
	}

	c.err = c.rows.Err()
	return "", false
}

func (c *rowsCursor) Err() error {
	return c.err
}

func (c *rowsCursor) Close() error {
	return c.rows.Close()
}

// sliceCursor yields values from a materialized result, used by query
// strategies that must merge and reorder rows before anything is yielded.
type sliceCursor struct {
	values []string
	next   int
	policy hiddenPolicy
}

func newSliceCursor(values []string, showHidden bool) *sliceCursor {
	return &sliceCursor{
		values: values,
		policy: hiddenPolicy{showHidden: showHidden},
	}
}

func (c *sliceCursor) Next() (string, bool) {
	for c.next < len(c.values) {
		value := c.values[c.next]
		c.next++
		if c.policy.visible(value) {
			return value, true
		}
	}
	return "", false
}

func (c *sliceCursor) Err() error {
	return nil
}

func (c *sliceCursor) Close() error {
	c.next = len(c.values)
	return nil
}
