package filestore

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveOpenRemove(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	key, size, err := store.Save(strings.NewReader("%PDF-1.4 content"), ".pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(len("%PDF-1.4 content")), size)
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	reader, openedSize, err := store.Open(key)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, size, openedSize)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 content", string(data))

	require.NoError(t, store.Remove(key))
	_, _, err = store.Open(key)
	assert.Error(t, err)
}

func TestStoreKeysAreOpaque(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	first, _, err := store.Save(strings.NewReader("a"), ".pdf")
	require.NoError(t, err)
	second, _, err := store.Save(strings.NewReader("a"), ".pdf")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStoreOpenRefusesPathTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Open("../../etc/passwd")
	assert.Error(t, err)
}
