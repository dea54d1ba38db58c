package store

import (
	"fmt"

	"github.com/dukaforge/ftag/pkg/types"
)

// The three inserts of a tag operation. Tag and file rows are created before
// the association row so the sub-select always resolves both IDs; OR IGNORE
// makes every step idempotent against the uniqueness constraints.
const (
	insertTagSQL = `INSERT OR IGNORE INTO tags (name) VALUES (?);`

	insertFileSQL = `INSERT OR IGNORE INTO files (relative_path) VALUES (?);`

	insertFileTagSQL = `INSERT OR IGNORE INTO file_tags (file_id, tag_id)
SELECT f.file_id, t.tag_id FROM files f, tags t
WHERE f.relative_path = ? AND t.name = ?;`
)

// Tag associates tagName with filePath, creating the tag and file rows if
// this is their first use. All three inserts commit in one transaction, so a
// failure partway leaves no orphaned tag or file row. The operation is
// idempotent: re-tagging the same pair is a no-op that still succeeds.
func (s *Store) Tag(filePath, tagName string) error {
	if s.db == nil {
		return types.ErrNotOpen
	}
	if filePath == "" {
		return types.ErrEmptyPath
	}
	if tagName == "" {
		return types.ErrEmptyTag
	}

	tagStmt, err := s.stmts.get(insertTagSQL)
	if err != nil {
		return err
	}
	fileStmt, err := s.stmts.get(insertFileSQL)
	if err != nil {
		return err
	}
	assocStmt, err := s.stmts.get(insertFileTagSQL)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tag transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Stmt(tagStmt).Exec(tagName); err != nil {
		return fmt.Errorf("ensure tag %q: %w", tagName, err)
	}
	if _, err := tx.Stmt(fileStmt).Exec(filePath); err != nil {
		return fmt.Errorf("ensure file %q: %w", filePath, err)
	}
	if _, err := tx.Stmt(assocStmt).Exec(filePath, tagName); err != nil {
		return fmt.Errorf("associate %q with %q: %w", filePath, tagName, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tag transaction: %w", err)
	}
	return nil
}
