package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"immichclient/internal/config"
	"immichclient/pkg/client"
	"immichclient/pkg/engine"
	"immichclient/pkg/progress"
	"immichclient/pkg/uploader"
)

var (
	flagConcurrency  int
	flagAlbum        string
	flagProgressAddr string
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Upload a whole directory in parallel",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	cmd.Flags().IntVar(&flagConcurrency, "concurrency", config.Config.ConcurrentUploads, "number of parallel uploads")
	cmd.Flags().StringVar(&flagAlbum, "album", "", "add uploaded assets to this album (created if missing)")
	cmd.Flags().StringVar(&flagProgressAddr, "progress-addr", "", "serve live progress over websocket on this address")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	source, err := engine.FromDir(args[0])
	if err != nil {
		return err
	}

	var watcher *progress.Server
	if flagProgressAddr != "" {
		watcher, err = progress.NewServer(flagProgressAddr)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	var outcomes []uploader.Outcome
	sink := engine.SinkFunc(func(o uploader.Outcome) error {
		printOutcome(o)
		outcomes = append(outcomes, o)
		if watcher != nil {
			return watcher.Deliver(o)
		}
		return nil
	})

	if err := c.ParallelUploadWithProgress(cmd.Context(), flagConcurrency, source, sink); err != nil {
		return err
	}

	failed := 0
	var uploadedIDs []string
	for _, o := range outcomes {
		if o.Status == uploader.StatusFailed {
			failed++
			continue
		}
		uploadedIDs = append(uploadedIDs, o.RemoteID)
	}

	if flagAlbum != "" && len(uploadedIDs) > 0 {
		if err := addToAlbum(c, flagAlbum, uploadedIDs); err != nil {
			return err
		}
	}

	fmt.Printf("%d uploaded, %d failed\n", len(outcomes)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(outcomes))
	}
	return nil
}

func addToAlbum(c *client.Client, name string, ids []string) error {
	album, err := c.GetOrCreateAlbum(name)
	if err != nil {
		return err
	}
	moved, err := c.AddToAlbum(album.ID, ids)
	if err != nil {
		return err
	}
	added := 0
	for _, m := range moved {
		if m.Success {
			added++
		}
	}
	fmt.Printf("added %d assets to album %q\n", added, name)
	return nil
}
