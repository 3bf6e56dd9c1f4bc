package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"immichclient/pkg/asset"
	"immichclient/pkg/uploader"
)

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload individual files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runUpload,
	}
}

func runUpload(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		a, err := asset.FromPath(path)
		if err != nil {
			fmt.Printf("%s: %s (%v)\n", path, uploader.StatusFailed, err)
			failed++
			continue
		}
		outcome := c.Upload(a)
		printOutcome(outcome)
		if outcome.Status == uploader.StatusFailed {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(args))
	}
	return nil
}

func printOutcome(outcome uploader.Outcome) {
	switch outcome.Status {
	case uploader.StatusFailed:
		fmt.Printf("%s: %s (%v)\n", outcome.DeviceAssetID, outcome.Status, outcome.Err)
	default:
		fmt.Printf("%s: %s [%s]\n", outcome.DeviceAssetID, outcome.Status, outcome.RemoteID)
	}
}
