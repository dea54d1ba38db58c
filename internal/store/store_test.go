package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaforge/ftag/pkg/types"
)

// chdir mirrors testing.T.Chdir, which requires Go 1.24+; this keeps the
// tests runnable on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
}

// openMemory opens a transient in-memory store and schedules its close.
func openMemory(t *testing.T) *Store {
	t.Helper()
	st, err := Open(types.Config{Database: types.MemoryDatabase})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

// countRows is a white-box helper for asserting on row multiplicity.
func countRows(t *testing.T, st *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, st.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestOpenLifecycle(t *testing.T) {
	t.Run("second open without close fails", func(t *testing.T) {
		st := openMemory(t)

		_, err := Open(types.Config{Database: types.MemoryDatabase})
		assert.ErrorIs(t, err, types.ErrAlreadyOpen)

		require.NoError(t, st.Close())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		st := openMemory(t)
		require.NoError(t, st.Close())
		require.NoError(t, st.Close())
	})

	t.Run("close releases the process slot", func(t *testing.T) {
		st := openMemory(t)
		require.NoError(t, st.Close())

		st2, err := Open(types.Config{Database: types.MemoryDatabase})
		require.NoError(t, err)
		require.NoError(t, st2.Close())
	})

	t.Run("operations on a closed store fail", func(t *testing.T) {
		st := openMemory(t)
		require.NoError(t, st.Close())

		assert.ErrorIs(t, st.Tag("a.txt", "x"), types.ErrNotOpen)
		_, err := st.AllFiles()
		assert.ErrorIs(t, err, types.ErrNotOpen)
	})

	t.Run("rejects an empty database name", func(t *testing.T) {
		_, err := Open(types.Config{})
		assert.ErrorIs(t, err, types.ErrDatabaseEmpty)
	})

	t.Run("rejects an unknown strategy", func(t *testing.T) {
		_, err := Open(types.Config{Database: types.MemoryDatabase, Strategy: "bogus"})
		assert.ErrorIs(t, err, types.ErrStrategyUnknown)
	})
}

func TestOpenOnDisk(t *testing.T) {
	t.Run("forced directory creates the store file", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)

		st, err := Open(types.Config{Database: ".ftagdb", Directory: dir})
		require.NoError(t, err)
		require.NoError(t, st.Close())

		_, err = os.Stat(filepath.Join(dir, ".ftagdb"))
		assert.NoError(t, err)
	})

	t.Run("data persists across open and close", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)

		st, err := Open(types.Config{Database: ".ftagdb", Directory: dir})
		require.NoError(t, err)
		require.NoError(t, st.Tag("notes.txt", "work"))
		require.NoError(t, st.Close())

		st, err = Open(types.Config{Database: ".ftagdb", Directory: dir})
		require.NoError(t, err)
		defer st.Close()

		cur, err := st.TagsForFile("notes.txt")
		require.NoError(t, err)
		defer cur.Close()

		tag, ok := cur.Next()
		require.True(t, ok)
		assert.Equal(t, "work", tag)
	})

	t.Run("discovery opens a store in an ancestor directory", func(t *testing.T) {
		root := t.TempDir()
		chdir(t, root)

		st, err := Open(types.Config{Database: ".ftagdb", Directory: root})
		require.NoError(t, err)
		require.NoError(t, st.Tag("notes.txt", "work"))
		require.NoError(t, st.Close())

		sub := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(sub, 0o755))
		chdir(t, sub)

		st, err = Open(types.Config{Database: ".ftagdb"})
		require.NoError(t, err)
		defer st.Close()

		// The process is now in the store's home directory.
		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, root, cwd)

		cur, err := st.FilesWithTag("work")
		require.NoError(t, err)
		defer cur.Close()

		file, ok := cur.Next()
		require.True(t, ok)
		assert.Equal(t, "notes.txt", file)
	})

	t.Run("discovery failure leaves the working directory unchanged", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)

		_, err := Open(types.Config{Database: ".ftagdb-nowhere-to-be-found"})
		require.ErrorIs(t, err, types.ErrStoreNotFound)

		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, dir, cwd)
	})

	t.Run("migration is idempotent", func(t *testing.T) {
		st := openMemory(t)
		require.NoError(t, migrate(st.db))
		require.NoError(t, st.Close())
	})
}

func TestTag(t *testing.T) {
	t.Run("rejects empty arguments", func(t *testing.T) {
		st := openMemory(t)

		assert.ErrorIs(t, st.Tag("", "work"), types.ErrEmptyPath)
		assert.ErrorIs(t, st.Tag("notes.txt", ""), types.ErrEmptyTag)

		// Nothing reached the store.
		assert.Zero(t, countRows(t, st, "files"))
		assert.Zero(t, countRows(t, st, "tags"))
	})

	t.Run("is idempotent", func(t *testing.T) {
		st := openMemory(t)

		require.NoError(t, st.Tag("notes.txt", "work"))
		require.NoError(t, st.Tag("notes.txt", "work"))
		require.NoError(t, st.Tag("notes.txt", "work"))

		assert.Equal(t, 1, countRows(t, st, "files"))
		assert.Equal(t, 1, countRows(t, st, "tags"))
		assert.Equal(t, 1, countRows(t, st, "file_tags"))
	})

	t.Run("shared tag creates one tag row and two associations", func(t *testing.T) {
		st := openMemory(t)

		require.NoError(t, st.Tag("a.txt", "work"))
		require.NoError(t, st.Tag("b.txt", "work"))

		assert.Equal(t, 2, countRows(t, st, "files"))
		assert.Equal(t, 1, countRows(t, st, "tags"))
		assert.Equal(t, 2, countRows(t, st, "file_tags"))
	})

	t.Run("many tags on one file reuse cached statements", func(t *testing.T) {
		st := openMemory(t)

		for _, tag := range []string{"one", "two", "three", "four"} {
			require.NoError(t, st.Tag("notes.txt", tag))
		}

		// Three insert statements total, prepared once each.
		assert.Len(t, st.stmts.order, 3)
		assert.Equal(t, 4, countRows(t, st, "file_tags"))
	})
}
