package config

import "time"

type ImmichClientConfig struct {
	ClientName        string
	ConcurrentUploads int
	HTTPTimeout       time.Duration
	MaxIdleConns      int
	IdleConnTimeout   time.Duration
}

var Config ImmichClientConfig = ImmichClientConfig{
	ClientName:        "Immich-0.1 (Go Client)",
	ConcurrentUploads: 5,
	HTTPTimeout:       5 * time.Minute,
	MaxIdleConns:      100,
	IdleConnTimeout:   90 * time.Second,
}
