package uploader

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

type Status string

const (
	StatusCreated   Status = "Created"
	StatusDuplicate Status = "Duplicate"
	StatusFailed    Status = "Failed"
)

// Outcome is the per-asset result of one upload attempt. Failures travel
// through the same channel as successes; Err is set only when Status is
// StatusFailed, and RemoteID is empty in that case.
type Outcome struct {
	DeviceAssetID string
	RemoteID      string
	Status        Status
	Err           error
}

// Failed builds a failure Outcome for the given device asset id.
func Failed(deviceAssetID string, err error) Outcome {
	return Outcome{
		DeviceAssetID: deviceAssetID,
		Status:        StatusFailed,
		Err:           err,
	}
}

// Session is the authenticated transport handle the uploader calls through.
// *client.Client satisfies it. Implementations must be safe for concurrent
// use.
type Session interface {
	Post(path string, header http.Header, body io.Reader) (*http.Response, error)
}

var (
	// ErrAuth marks credential rejection, at login or mid-batch.
	ErrAuth = errors.New("unable to authenticate or authentication expired")
	// ErrTransport marks connectivity-level failures.
	ErrTransport = errors.New("error connecting")
	// ErrInvalidResponse marks a malformed or unexpected server response.
	ErrInvalidResponse = errors.New("invalid response from server")
)

// StatusError is an HTTP status the client did not expect.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status: [%d] %s", e.Code, e.Body)
}
