package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dukaforge/ftag/pkg/types"
)

// Fixed listing queries. Every listing yields DISTINCT values only; a file
// tagged many times never surfaces as a duplicate row.
const (
	selectTagsForFileSQL = `SELECT DISTINCT t.name FROM tags t
JOIN file_tags ft ON ft.tag_id = t.tag_id
JOIN files f ON f.file_id = ft.file_id
WHERE f.relative_path = ?
ORDER BY t.name ASC;`

	selectAllTagsSQL = `SELECT DISTINCT name FROM tags ORDER BY name ASC;`

	selectFilesWithTagSQL = `SELECT DISTINCT f.relative_path FROM files f
JOIN file_tags ft ON ft.file_id = f.file_id
JOIN tags t ON t.tag_id = ft.tag_id
WHERE t.name = ?
ORDER BY f.relative_path ASC;`

	selectAllFilesSQL = `SELECT DISTINCT f.relative_path FROM files f
JOIN file_tags ft ON ft.file_id = f.file_id
ORDER BY f.relative_path ASC;`

	selectTagIDSQL = `SELECT tag_id FROM tags WHERE name = ?;`

	selectFilesWithTagIDSQL = `SELECT DISTINCT f.relative_path FROM files f
JOIN file_tags ft ON ft.file_id = f.file_id
WHERE ft.tag_id = ?;`
)

// unknownTagID is the resolved-strategy sentinel for a tag name with no row.
// SQLite assigns row IDs from 1, so it matches nothing: filtering on a tag
// that was never used returns an empty result, not an error.
const unknownTagID = 0

// TagsForFile returns the distinct tags on filePath, ascending by name.
func (s *Store) TagsForFile(filePath string) (Cursor, error) {
	if filePath == "" {
		return nil, types.ErrEmptyPath
	}
	return s.queryCursor(selectTagsForFileSQL, filePath)
}

// AllTags returns every tag in the store, ascending by name.
func (s *Store) AllTags() (Cursor, error) {
	return s.queryCursor(selectAllTagsSQL)
}

// FilesWithTag returns the distinct files carrying tagName, ascending by path.
func (s *Store) FilesWithTag(tagName string) (Cursor, error) {
	if tagName == "" {
		return nil, types.ErrEmptyTag
	}
	return s.queryCursor(selectFilesWithTagSQL, tagName)
}

// AllFiles returns every tagged file, ascending by path.
func (s *Store) AllFiles() (Cursor, error) {
	return s.queryCursor(selectAllFilesSQL)
}

// FilesWithAnyTag returns the distinct files carrying at least one of the
// given tags. No filter means everything: zero tags returns AllFiles rather
// than an empty set.
//
// Two query strategies exist, selected by Config.Strategy, and their
// user-visible orderings intentionally differ (a historical asymmetry that
// is preserved, not unified):
//   - StrategyInList (canonical): one query with a placeholder list sized to
//     the number of tags, descending by path.
//   - StrategyResolve: each name resolved to its row ID first, one query per
//     ID unioned and deduplicated, ascending by path.
func (s *Store) FilesWithAnyTag(tagNames []string) (Cursor, error) {
	if len(tagNames) == 0 {
		return s.AllFiles()
	}
	for _, name := range tagNames {
		if name == "" {
			return nil, types.ErrEmptyTag
		}
	}

	if s.config.Strategy == types.StrategyResolve {
		return s.filesWithAnyTagResolved(tagNames)
	}
	return s.filesWithAnyTagInList(tagNames)
}

// filesWithAnyTagInList builds a single IN-list query with exactly one
// placeholder per tag. Tag values are always bound as parameters, never
// spliced into the query text.
func (s *Store) filesWithAnyTagInList(tagNames []string) (Cursor, error) {
	placeholders := make([]string, 0, len(tagNames))
	args := make([]any, 0, len(tagNames))
	for _, name := range tagNames {
		placeholders = append(placeholders, "?")
		args = append(args, name)
	}

	query := fmt.Sprintf(`SELECT DISTINCT f.relative_path FROM files f
JOIN file_tags ft ON ft.file_id = f.file_id
JOIN tags t ON t.tag_id = ft.tag_id
WHERE t.name IN (%s)
ORDER BY f.relative_path DESC;`, strings.Join(placeholders, ", "))

	return s.queryCursor(query, args...)
}

// filesWithAnyTagResolved resolves each tag name to its row ID, then unions
// one per-ID query into a deduplicated, ascending result. The merge happens
// before anything is yielded, so the cursor is materialized.
func (s *Store) filesWithAnyTagResolved(tagNames []string) (Cursor, error) {
	if s.db == nil {
		return nil, types.ErrNotOpen
	}

	idStmt, err := s.stmts.get(selectTagIDSQL)
	if err != nil {
		return nil, err
	}
	fileStmt, err := s.stmts.get(selectFilesWithTagIDSQL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var paths []string
	for _, name := range tagNames {
		id, err := resolveTagID(idStmt, name)
		if err != nil {
			return nil, err
		}

		rows, err := fileStmt.Query(id)
		if err != nil {
			return nil, fmt.Errorf("query files for tag %q: %w", name, err)
		}
		for rows.Next() {
			var path string
			if err := rows.Scan(&path); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan file row: %w", err)
			}
			if _, ok := seen[path]; !ok {
				seen[path] = struct{}{}
				paths = append(paths, path)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("step file rows: %w", err)
		}
		rows.Close()
	}

	sort.Strings(paths)
	return newSliceCursor(paths, s.config.ShowHidden), nil
}

// resolveTagID maps a tag name to its row ID, or unknownTagID when the name
// has never been used.
func resolveTagID(stmt *sql.Stmt, name string) (int64, error) {
	var id int64
	err := stmt.QueryRow(name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return unknownTagID, nil
	}
	if err != nil {
		return 0, fmt.Errorf("resolve tag %q: %w", name, err)
	}
	return id, nil
}

// queryCursor runs a cached single-column query and wraps the rows in a
// cursor carrying the store's hidden-entry policy.
func (s *Store) queryCursor(query string, args ...any) (Cursor, error) {
	if s.db == nil {
		return nil, types.ErrNotOpen
	}

	stmt, err := s.stmts.get(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}
	return newRowsCursor(rows, s.config.ShowHidden), nil
}
