package uploader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"immichclient/internal/logging"
	"immichclient/internal/models"
	"immichclient/pkg/asset"
)

const uploadPath = "/assets"

// Upload sends one asset to the server and reports the result as an
// Outcome. It never panics and never returns an error: transport problems,
// auth rejection and malformed responses all come back as a failed Outcome
// so one bad asset cannot take down a batch.
func Upload(s Session, a *asset.Asset) Outcome {
	body, contentType, err := buildMultipart(a)
	if err != nil {
		return Failed(a.DeviceAssetID, err)
	}

	header := http.Header{}
	header.Set("Content-Type", contentType)
	header.Set("x-immich-checksum", a.Checksum)

	resp, err := s.Post(uploadPath, header, bytes.NewReader(body))
	if err != nil {
		return Failed(a.DeviceAssetID, fmt.Errorf("%w: %v", ErrTransport, err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusUnauthorized:
		io.Copy(io.Discard, resp.Body)
		logging.GlobalLogger.Warn().Str("asset", a.DeviceAssetID).Msg("upload rejected: authentication expired")
		return Failed(a.DeviceAssetID, ErrAuth)
	default:
		detail, _ := io.ReadAll(resp.Body)
		return Failed(a.DeviceAssetID, &StatusError{Code: resp.StatusCode, Body: string(detail)})
	}

	var uploaded models.Uploaded
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return Failed(a.DeviceAssetID, fmt.Errorf("%w: %v", ErrInvalidResponse, err))
	}
	if _, err := uuid.Parse(uploaded.ID); err != nil {
		return Failed(a.DeviceAssetID, fmt.Errorf("%w: bad asset id %q", ErrInvalidResponse, uploaded.ID))
	}

	switch uploaded.Status {
	case "created":
		logging.GlobalLogger.Debug().Str("asset", a.DeviceAssetID).Str("id", uploaded.ID).Msg("uploaded")
		return Outcome{DeviceAssetID: a.DeviceAssetID, RemoteID: uploaded.ID, Status: StatusCreated}
	case "duplicate":
		logging.GlobalLogger.Debug().Str("asset", a.DeviceAssetID).Str("id", uploaded.ID).Msg("already on server")
		return Outcome{DeviceAssetID: a.DeviceAssetID, RemoteID: uploaded.ID, Status: StatusDuplicate}
	default:
		return Failed(a.DeviceAssetID, fmt.Errorf("%w: unknown upload status %q", ErrInvalidResponse, uploaded.Status))
	}
}

func buildMultipart(a *asset.Asset) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"deviceAssetId", a.DeviceAssetID},
		{"deviceId", a.DeviceID},
		{"fileCreatedAt", asset.FormatTimestamp(a.FileCreatedAt)},
		{"fileModifiedAt", asset.FormatTimestamp(a.FileModifiedAt)},
	}
	for _, field := range fields {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile("assetData", a.DeviceAssetID)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(a.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
