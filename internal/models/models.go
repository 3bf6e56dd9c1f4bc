package models

// Wire structs for the Immich HTTP API. Field names follow the JSON the
// server speaks, not Go conventions.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type Uploaded struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type Owner struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Album struct {
	ID         string `json:"id"`
	Name       string `json:"albumName"`
	AssetCount int    `json:"assetCount"`
	Owner      Owner  `json:"owner"`
	Shared     bool   `json:"shared"`
}

type CreateAlbumRequest struct {
	Name string `json:"albumName"`
}

type AddToAlbumRequest struct {
	IDs []string `json:"ids"`
}

type MovedAsset struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type BulkCheckAsset struct {
	ID       string `json:"id"`
	Checksum string `json:"checksum"`
}

type BulkCheckRequest struct {
	Assets []BulkCheckAsset `json:"assets"`
}

type BulkCheckResult struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

type BulkCheckResponse struct {
	Results []BulkCheckResult `json:"results"`
}
