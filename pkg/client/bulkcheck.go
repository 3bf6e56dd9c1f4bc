package client

import (
	"fmt"
	"net/http"

	"immichclient/internal/models"
	"immichclient/pkg/asset"
	"immichclient/pkg/uploader"
)

// BulkUploadCheck asks the server which of the given assets it already has,
// by checksum, and records the answer in each asset's RemoteStatus. It is a
// cheap pre-flight for large batches; the upload path deduplicates on the
// server anyway, so skipping this costs only bandwidth.
func (c *Client) BulkUploadCheck(assets []*asset.Asset) error {
	if len(assets) == 0 {
		return nil
	}

	request := models.BulkCheckRequest{Assets: make([]models.BulkCheckAsset, len(assets))}
	for i, a := range assets {
		request.Assets[i] = models.BulkCheckAsset{ID: a.DeviceAssetID, Checksum: a.Checksum}
	}

	var response models.BulkCheckResponse
	if err := c.sendJSON(http.MethodPost, "/assets/bulk-upload-check", request, http.StatusOK, &response); err != nil {
		return err
	}
	if len(response.Results) != len(assets) {
		return fmt.Errorf("%w: %d assets checked, %d results", uploader.ErrInvalidResponse, len(assets), len(response.Results))
	}

	byID := make(map[string]string, len(response.Results))
	for _, result := range response.Results {
		byID[result.ID] = result.Action
	}
	for _, a := range assets {
		switch byID[a.DeviceAssetID] {
		case "accept":
			a.RemoteStatus = asset.RemoteAbsent
		case "reject":
			a.RemoteStatus = asset.RemotePresent
		}
	}
	return nil
}
