package asset

import "time"

type Type string

const (
	TypeImage   Type = "IMAGE"
	TypeVideo   Type = "VIDEO"
	TypeOther   Type = "OTHER"
	TypeUnknown Type = "UNKNOWN"
)

type RemoteStatus int

const (
	RemoteUnknown RemoteStatus = iota
	RemotePresent
	RemoteAbsent
)

// Asset is one local media file prepared for upload. Checksum is computed
// once at construction and must not be changed afterwards; the upload path
// relies on it staying in sync with Data.
type Asset struct {
	Path           string
	DeviceAssetID  string
	DeviceID       string
	Data           []byte
	Checksum       string
	FileCreatedAt  time.Time
	FileModifiedAt time.Time
	Type           Type

	// RemoteID and RemoteStatus are filled in by the server-facing calls
	// (upload, bulk check). Empty/unknown until then.
	RemoteID     string
	RemoteStatus RemoteStatus
}
