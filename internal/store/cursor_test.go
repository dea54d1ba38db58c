package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceCursor(t *testing.T) {
	t.Run("yields values in order then ends cleanly", func(t *testing.T) {
		cur := newSliceCursor([]string{"a", "b"}, false)

		v, ok := cur.Next()
		require.True(t, ok)
		assert.Equal(t, "a", v)

		v, ok = cur.Next()
		require.True(t, ok)
		assert.Equal(t, "b", v)

		_, ok = cur.Next()
		assert.False(t, ok)
		assert.NoError(t, cur.Err())
	})

	t.Run("skips hidden values transparently", func(t *testing.T) {
		cur := newSliceCursor([]string{".hidden", "shown", ".also-hidden"}, false)

		v, ok := cur.Next()
		require.True(t, ok)
		assert.Equal(t, "shown", v)

		_, ok = cur.Next()
		assert.False(t, ok)
	})

	t.Run("show hidden yields everything", func(t *testing.T) {
		cur := newSliceCursor([]string{".hidden", "shown"}, true)

		var got []string
		for {
			v, ok := cur.Next()
			if !ok {
				break
			}
			got = append(got, v)
		}
		assert.Equal(t, []string{".hidden", "shown"}, got)
	})

	t.Run("close ends iteration early", func(t *testing.T) {
		cur := newSliceCursor([]string{"a", "b", "c"}, false)

		_, ok := cur.Next()
		require.True(t, ok)
		require.NoError(t, cur.Close())

		_, ok = cur.Next()
		assert.False(t, ok)
	})
}

func TestRowsCursor(t *testing.T) {
	t.Run("close before exhaustion releases the rows", func(t *testing.T) {
		st := openMemory(t)
		seedStore(t, st, map[string][]string{
			"a.txt": {"work"},
			"b.txt": {"work"},
		})

		cur, err := st.FilesWithTag("work")
		require.NoError(t, err)

		_, ok := cur.Next()
		require.True(t, ok)
		require.NoError(t, cur.Close())
	})

	t.Run("next after exhaustion keeps returning false", func(t *testing.T) {
		st := openMemory(t)
		seedStore(t, st, map[string][]string{"a.txt": {"work"}})

		cur, err := st.FilesWithTag("work")
		require.NoError(t, err)
		defer cur.Close()

		_, ok := cur.Next()
		require.True(t, ok)
		_, ok = cur.Next()
		assert.False(t, ok)
		_, ok = cur.Next()
		assert.False(t, ok)
		assert.NoError(t, cur.Err())
	})
}
