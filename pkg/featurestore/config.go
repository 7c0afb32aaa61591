package featurestore

import (
	"maps"

	"github.com/azure/feast-azure/api-types/projects"
	"github.com/azure/feast-azure/pkg/feast/registry"
)

// StoreTypeLocalRegistry is the registry store type of the local cache.
const StoreTypeLocalRegistry = "LocalRegistryStore"

// RepoConfig is the configuration of the local feature store which mirrors
// a project on the control plane.
type RepoConfig struct {
	Project      string                    `yaml:"project" json:"project"`
	Provider     string                    `yaml:"provider,omitempty" json:"provider,omitempty"`
	Registry     registry.RegistryConfig   `yaml:"registry" json:"registry"`
	OfflineStore *projects.DataStoreConfig `yaml:"offline_store,omitempty" json:"offline_store,omitempty"`
	OnlineStore  *projects.DataStoreConfig `yaml:"online_store,omitempty" json:"online_store,omitempty"`
	Flags        projects.Flags            `yaml:"flags,omitempty" json:"flags,omitempty"`
}

// NewRepoConfig builds RepoConfig from a project, whose registry is the
// local file at cachePath.
func NewRepoConfig(project projects.Config, cachePath string) RepoConfig {
	return RepoConfig{
		Project:  project.Project,
		Provider: project.Provider,
		Registry: registry.RegistryConfig{
			RegistryStoreType: StoreTypeLocalRegistry,
			Path:              cachePath,
		},
		OfflineStore: project.OfflineStore,
		OnlineStore:  project.OnlineStore,
		Flags:        maps.Clone(project.Flags),
	}
}
