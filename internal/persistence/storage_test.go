package persistence

import (
	"bytes"
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent png
const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func pixelBytes(t *testing.T) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(pixelPNG)
	require.NoError(t, err)
	return data
}

func TestSaveImageFromDataURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixel.png")

	size, err := SaveImageFromDataURI("data:image/png;base64,"+pixelPNG, path)
	require.NoError(t, err)

	want := pixelBytes(t)
	assert.Equal(t, len(want), size)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveImageFromDataURI_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 4096), 0644))

	size, err := SaveImageFromDataURI("data:image/png;base64,"+pixelPNG, path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(size), info.Size())
}

func TestSaveImageFromDataURI_InvalidFormat(t *testing.T) {
	tests := []struct {
		name    string
		dataURI string
	}{
		{"no comma", "data:image/png;base64"},
		{"empty payload", "data:image/png;base64,"},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.png")

			_, err := SaveImageFromDataURI(tt.dataURI, path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDataURI))

			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr), "no file should be written")
		})
	}
}

func TestSaveImageFromDataURI_Base64Variants(t *testing.T) {
	want := []byte{0xfb, 0xff, 0x01, 0x02}
	tests := []struct {
		name    string
		payload string
	}{
		{"padded standard", base64.StdEncoding.EncodeToString(want)},
		{"unpadded standard", base64.RawStdEncoding.EncodeToString(want)},
		{"url safe", base64.URLEncoding.EncodeToString(want)},
		{"embedded whitespace", "+/8B\nAg=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.bin")
			size, err := SaveImageFromDataURI("data:application/octet-stream;base64,"+tt.payload, path)
			require.NoError(t, err)
			assert.Equal(t, len(want), size)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSaveImageFromDataURI_UndecodablePayload(t *testing.T) {
	_, err := SaveImageFromDataURI("data:image/png;base64,!!!not base64!!!", filepath.Join(t.TempDir(), "x.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode image data")
}

func TestSaveImageFromDataURI_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.png")

	_, err := SaveImageFromDataURI("data:image/png;base64,"+pixelPNG, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write image file")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStore_MaxSize(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	limit := int64(len(pixelBytes(t)))

	t.Run("at limit", func(t *testing.T) {
		store := NewStore(limit, logger)
		_, err := store.SaveImageFromDataURI("data:image/png;base64,"+pixelPNG, filepath.Join(t.TempDir(), "a.png"))
		assert.NoError(t, err)
	})

	t.Run("over limit", func(t *testing.T) {
		store := NewStore(limit-1, logger)
		path := filepath.Join(t.TempDir(), "b.png")
		_, err := store.SaveImageFromDataURI("data:image/png;base64,"+pixelPNG, path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrImageTooLarge))

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("unlimited", func(t *testing.T) {
		store := NewStore(0, logger)
		_, err := store.SaveImageFromDataURI("data:image/png;base64,"+pixelPNG, filepath.Join(t.TempDir(), "c.png"))
		assert.NoError(t, err)
	})
}
