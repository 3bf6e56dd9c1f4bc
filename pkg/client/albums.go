package client

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"immichclient/internal/logging"
	"immichclient/internal/models"
)

// Albums returns all albums visible to the session.
func (c *Client) Albums() ([]models.Album, error) {
	var albums []models.Album
	if err := c.getJSON("/albums", &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// CreateAlbum creates a new album. The server allows several albums with
// the same name; use GetOrCreateAlbum to avoid that.
func (c *Client) CreateAlbum(name string) (*models.Album, error) {
	var album models.Album
	err := c.sendJSON(http.MethodPost, "/albums", models.CreateAlbumRequest{Name: name}, http.StatusCreated, &album)
	if err != nil {
		return nil, err
	}
	logging.GlobalLogger.Info().Str("album", name).Str("id", album.ID).Msg("created album")
	return &album, nil
}

// GetOrCreateAlbum returns the first album with the given name, creating it
// if none exists.
func (c *Client) GetOrCreateAlbum(name string) (*models.Album, error) {
	albums, err := c.Albums()
	if err != nil {
		return nil, err
	}
	for _, album := range albums {
		if album.Name == name {
			return &album, nil
		}
	}
	return c.CreateAlbum(name)
}

// AddToAlbum adds uploaded assets to an album by their remote ids.
func (c *Client) AddToAlbum(albumID string, assetIDs []string) ([]models.MovedAsset, error) {
	if _, err := uuid.Parse(albumID); err != nil {
		return nil, fmt.Errorf("invalid album id %q: %w", albumID, err)
	}

	var moved []models.MovedAsset
	err := c.sendJSON(http.MethodPut, "/albums/"+albumID+"/assets", models.AddToAlbumRequest{IDs: assetIDs}, http.StatusOK, &moved)
	if err != nil {
		return nil, err
	}
	return moved, nil
}
