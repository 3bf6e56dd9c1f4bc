package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAlbumsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "albums",
		Short: "List albums on the server",
		Args:  cobra.NoArgs,
		RunE:  runAlbums,
	}
}

func runAlbums(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	albums, err := c.Albums()
	if err != nil {
		return err
	}
	for _, album := range albums {
		shared := ""
		if album.Shared {
			shared = " (shared)"
		}
		fmt.Printf("%s: %d assets%s [%s]\n", album.Name, album.AssetCount, shared, album.ID)
	}
	return nil
}
