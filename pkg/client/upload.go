package client

import (
	"context"

	"immichclient/pkg/asset"
	"immichclient/pkg/engine"
	"immichclient/pkg/uploader"
)

// Upload uploads a single asset and records the assigned remote id on the
// asset when the server accepted it (freshly created or duplicate).
func (c *Client) Upload(a *asset.Asset) uploader.Outcome {
	outcome := uploader.Upload(c, a)
	if outcome.Status != uploader.StatusFailed {
		a.RemoteID = outcome.RemoteID
		a.RemoteStatus = asset.RemotePresent
	}
	return outcome
}

// ParallelUpload runs a batch upload with the given concurrency and
// collects all outcomes. Outcome order is completion order, not source
// order.
func (c *Client) ParallelUpload(ctx context.Context, threads int, source engine.Source) ([]uploader.Outcome, error) {
	var results []uploader.Outcome
	sink := engine.SinkFunc(func(o uploader.Outcome) error {
		results = append(results, o)
		return nil
	})
	if err := c.ParallelUploadWithProgress(ctx, threads, source, sink); err != nil {
		return nil, err
	}
	return results, nil
}

// ParallelUploadWithProgress runs a batch upload and streams each outcome
// to sink as it completes, so a caller can watch a long batch live.
func (c *Client) ParallelUploadWithProgress(ctx context.Context, threads int, source engine.Source, sink engine.Sink) error {
	eng, err := engine.New(threads, func(a *asset.Asset) uploader.Outcome {
		return c.Upload(a)
	})
	if err != nil {
		return err
	}
	return eng.Run(ctx, source, sink)
}
