package asset

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immichclient/internal/config"
)

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	content := []byte("not really a jpeg, but good enough")
	path := filepath.Join(dir, "garden.jpg")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	a, err := FromPath(path)
	require.NoError(t, err)

	sum := sha1.Sum(content)
	assert.Equal(t, "garden.jpg", a.DeviceAssetID)
	assert.Equal(t, config.Config.ClientName, a.DeviceID)
	assert.Equal(t, content, a.Data)
	assert.Equal(t, hex.EncodeToString(sum[:]), a.Checksum)
	assert.Equal(t, TypeImage, a.Type)
	assert.Empty(t, a.RemoteID)
	assert.Equal(t, RemoteUnknown, a.RemoteStatus)
	assert.False(t, a.FileCreatedAt.IsZero())
	assert.Equal(t, a.FileCreatedAt, a.FileModifiedAt)
}

func TestFromPathDirectory(t *testing.T) {
	a, err := FromPath(t.TempDir())
	require.ErrorIs(t, err, ErrInvalidAsset)
	assert.Nil(t, a)
}

func TestFromPathMissing(t *testing.T) {
	a, err := FromPath(filepath.Join(t.TempDir(), "no-such-file.jpg"))
	require.ErrorIs(t, err, ErrInvalidAsset)
	assert.Nil(t, a)
}

func TestTypeForExt(t *testing.T) {
	cases := map[string]Type{
		".jpg":  TypeImage,
		".JPG":  TypeImage,
		".heic": TypeImage,
		".png":  TypeImage,
		".mp4":  TypeVideo,
		".MOV":  TypeVideo,
		".txt":  TypeOther,
		".pdf":  TypeOther,
		"":      TypeUnknown,
	}
	for ext, want := range cases {
		assert.Equal(t, want, TypeForExt(ext), "extension %q", ext)
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, time.January, 28, 5, 42, 36, 0, time.UTC)
	assert.Equal(t, "2025-01-28T05:42:36.000Z", FormatTimestamp(ts))

	// Non-UTC input is rendered in UTC.
	cet := time.FixedZone("CET", 3600)
	assert.Equal(t, "2025-01-28T05:42:36.000Z", FormatTimestamp(ts.In(cet)))
}
