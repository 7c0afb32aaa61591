package registry

import (
	"context"
	"time"

	"github.com/azure/feast-azure/pkg/feast/core"
)

// RegistryStore persists one registry document.
type RegistryStore interface {
	// GetRegistryProto reads the registry document.
	//
	// When it has never been written, the error wraps ErrRegistryNotFound.
	GetRegistryProto(ctx context.Context) (*core.Registry, error)

	// UpdateRegistryProto stamps a new version id and the current time on r,
	// then writes it.
	UpdateRegistryProto(ctx context.Context, r *core.Registry) error

	// Teardown removes the registry document.
	Teardown(ctx context.Context) error
}

// Registry store types.
const (
	StoreTypeLocal  = "local"
	StoreTypeAzBlob = "azblob"
)

// RegistryConfig is the "registry" section of a feature store configuration.
type RegistryConfig struct {
	// RegistryStoreType selects the RegistryStore.
	//
	// Empty means "decide by Path".
	RegistryStoreType string `yaml:"registry_store_type,omitempty" json:"registry_store_type,omitempty"`

	// Path is a file path for local stores, or a blob URL for azblob stores.
	Path string `yaml:"path" json:"path"`

	// CacheTTLSeconds is how long the registry cache can be used without
	// reading the store again. Zero means forever.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds,omitempty" json:"cache_ttl_seconds,omitempty"`
}

func (c RegistryConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
