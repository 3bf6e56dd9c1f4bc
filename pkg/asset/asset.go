package asset

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"immichclient/internal/config"
	"immichclient/internal/logging"
)

// ErrInvalidAsset marks paths that do not name a readable regular file.
var ErrInvalidAsset = errors.New("path is not an uploadable file")

// TimestampFormat is the UTC timestamp layout the server expects in the
// upload form fields.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// fallbackTime is used when file metadata carries no usable timestamp.
var fallbackTime = time.Date(1990, time.October, 3, 12, 0, 0, 0, time.UTC)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	".heic": true, ".heif": true, ".dng": true, ".raw": true, ".tif": true,
	".tiff": true, ".bmp": true, ".avif": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true,
	".m4v": true, ".3gp": true, ".mts": true,
}

// FromPath reads the file at path and builds an Asset from it. The whole
// file is read into memory and the SHA1 checksum is computed here, so a
// broken file fails before it ever reaches the upload pipeline.
func FromPath(path string) (*Asset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAsset, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidAsset, path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrInvalidAsset, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAsset, err)
	}

	modTime := info.ModTime().UTC()
	if info.ModTime().IsZero() {
		logging.GlobalLogger.Warn().Str("path", path).Msg("no modification timestamp, using fallback")
		modTime = fallbackTime
	}

	sum := sha1.Sum(data)
	return &Asset{
		Path:           path,
		DeviceAssetID:  filepath.Base(path),
		DeviceID:       config.Config.ClientName,
		Data:           data,
		Checksum:       hex.EncodeToString(sum[:]),
		FileCreatedAt:  modTime,
		FileModifiedAt: modTime,
		Type:           TypeForExt(filepath.Ext(path)),
	}, nil
}

// TypeForExt maps a file extension (with leading dot) to the media type the
// server distinguishes.
func TypeForExt(ext string) Type {
	ext = strings.ToLower(ext)
	switch {
	case imageExts[ext]:
		return TypeImage
	case videoExts[ext]:
		return TypeVideo
	case ext == "":
		return TypeUnknown
	default:
		return TypeOther
	}
}

// FormatTimestamp renders t the way the upload form fields expect.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}
