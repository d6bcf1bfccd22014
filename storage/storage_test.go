package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBlob(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{
			name:     "session document",
			filename: "session.json",
			data:     []byte(`{"idToken":"abc.def.ghi"}`),
		},
		{
			name:     "nested directory is created",
			filename: filepath.Join("nested", "dir", "list.txt"),
			data:     []byte("[ ] 200 g Flour\n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			blob := NewFileBlob(filepath.Join(tmpDir, tt.filename))

			require.NoError(t, blob.Save(ctx, tt.data))

			loaded, err := blob.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.data, loaded)

			require.NoError(t, blob.Delete(ctx))
			_, err = blob.Load(ctx)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}

	t.Run("save replaces existing content", func(t *testing.T) {
		ctx := context.Background()
		blob := NewFileBlob(filepath.Join(tmpDir, "replace.json"))
		require.NoError(t, blob.Save(ctx, []byte("first")))
		require.NoError(t, blob.Save(ctx, []byte("second")))

		loaded, err := blob.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), loaded)

		entries, err := os.ReadDir(tmpDir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), "replace.json.", "temp files should be cleaned up")
		}
	})

	t.Run("load nonexistent file", func(t *testing.T) {
		_, err := NewFileBlob(filepath.Join(tmpDir, "nonexistent.json")).Load(context.Background())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete nonexistent file", func(t *testing.T) {
		assert.NoError(t, NewFileBlob(filepath.Join(tmpDir, "nonexistent.json")).Delete(context.Background()))
	})
}

func TestTestBlob(t *testing.T) {
	ctx := context.Background()

	blob := NewTestBlob(nil)
	_, err := blob.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	data := []byte("payload")
	require.NoError(t, blob.Save(ctx, data))
	data[0] = 'X'

	loaded, err := blob.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), loaded, "saved data should be copied")

	failing := NewTestBlobWithError(errors.New("boom"))
	_, err = failing.Load(ctx)
	assert.EqualError(t, err, "boom")
	assert.EqualError(t, failing.Save(ctx, nil), "boom")
	assert.EqualError(t, failing.Delete(ctx), "boom")
}
