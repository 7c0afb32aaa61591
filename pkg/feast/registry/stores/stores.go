// Package stores builds a RegistryStore from a RegistryConfig.
package stores

import (
	"context"
	"fmt"
	"strings"

	"github.com/azure/feast-azure/pkg/feast/registry"
	"github.com/azure/feast-azure/pkg/feast/registry/azblob"
)

// Accepted spellings of each store type.
var (
	localTypes = []string{
		registry.StoreTypeLocal,
		"LocalRegistryStore",
		"feast.infra.registry.file.FileRegistryStore",
	}
	azblobTypes = []string{
		registry.StoreTypeAzBlob,
		"AzBlobRegistryStore",
		"feast_azure_provider.registry_store.AzBlobRegistryStore",
	}
)

// Resolve returns the canonical store type for cfg.
//
// When no type is given, "https://" paths are azblob stores and others are
// local stores.
func Resolve(cfg registry.RegistryConfig) (string, error) {
	t := cfg.RegistryStoreType
	if t == "" {
		if strings.HasPrefix(cfg.Path, "https://") {
			return registry.StoreTypeAzBlob, nil
		}
		return registry.StoreTypeLocal, nil
	}
	for _, l := range localTypes {
		if t == l {
			return registry.StoreTypeLocal, nil
		}
	}
	for _, a := range azblobTypes {
		if t == a {
			return registry.StoreTypeAzBlob, nil
		}
	}
	return "", fmt.Errorf("unknown registry store type: %s", t)
}

// New builds the RegistryStore selected by cfg.
func New(ctx context.Context, cfg registry.RegistryConfig, azblobOptions ...func(*azblob.Option) *azblob.Option) (registry.RegistryStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("registry path is empty")
	}
	t, err := Resolve(cfg)
	if err != nil {
		return nil, err
	}
	switch t {
	case registry.StoreTypeAzBlob:
		s, err := azblob.New(ctx, cfg.Path, azblobOptions...)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return registry.NewLocalRegistryStore(cfg.Path), nil
	}
}

// Open builds the store selected by cfg and a Registry on it.
func Open(ctx context.Context, cfg registry.RegistryConfig, azblobOptions ...func(*azblob.Option) *azblob.Option) (*registry.Registry, error) {
	store, err := New(ctx, cfg, azblobOptions...)
	if err != nil {
		return nil, err
	}
	return registry.New(store, registry.WithCacheTTL(cfg.CacheTTL())), nil
}
