package projects

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"

	"github.com/azure/feast-azure/api-types/misc/rfctime"
)

// RegistryName is the registry reported for every project.
const RegistryName = "azRegistry"

// Flags is a free-form set of feature flags of a project.
type Flags map[string]any

// UnmarshalJSON accepts a JSON object, null, or a string holding a JSON object.
func (f *Flags) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = nil
		return nil
	}
	if len(b) != 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" || s == "null" {
			*f = nil
			return nil
		}
		b = []byte(s)
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	*f = m
	return nil
}

func (f Flags) Equal(o Flags) bool {
	if len(f) != len(o) {
		return false
	}
	return reflect.DeepEqual(map[string]any(f), map[string]any(o))
}

// Config is a project configuration.
//
// Registry, CreatedTime and LastUpdatedTime are set by the control plane.
type Config struct {
	Project         string           `json:"project" yaml:"project"`
	Description     string           `json:"description" yaml:"description"`
	Provider        string           `json:"provider,omitempty" yaml:"provider,omitempty"`
	OfflineStore    *DataStoreConfig `json:"offline_store" yaml:"offline_store,omitempty"`
	OnlineStore     *DataStoreConfig `json:"online_store" yaml:"online_store,omitempty"`
	Flags           Flags            `json:"flags" yaml:"flags,omitempty"`
	Registry        string           `json:"registry,omitempty" yaml:"-"`
	IsDefault       bool             `json:"isDefault" yaml:"isDefault"`
	CreatedTime     rfctime.RFC3339  `json:"createdTime" yaml:"-"`
	LastUpdatedTime rfctime.RFC3339  `json:"lastUpdatedTime" yaml:"-"`
}

func (c Config) Equal(o Config) bool {
	return c.Project == o.Project &&
		c.Description == o.Description &&
		c.Provider == o.Provider &&
		c.OfflineStore.Equal(o.OfflineStore) &&
		c.OnlineStore.Equal(o.OnlineStore) &&
		c.Flags.Equal(o.Flags) &&
		c.Registry == o.Registry &&
		c.IsDefault == o.IsDefault &&
		c.CreatedTime.Equal(o.CreatedTime) &&
		c.LastUpdatedTime.Equal(o.LastUpdatedTime)
}

// Request returns the body to create or update the project.
func (c Config) Request() Request {
	return Request{
		ProjectName:  c.Project,
		Description:  c.Description,
		Provider:     c.Provider,
		OfflineStore: c.OfflineStore,
		OnlineStore:  c.OnlineStore,
		Flags:        maps.Clone(c.Flags),
		IsDefault:    c.IsDefault,
	}
}

// Request is the body of project create and update requests.
type Request struct {
	ProjectName  string           `json:"projectName"`
	Description  string           `json:"description"`
	Provider     string           `json:"provider"`
	OfflineStore *DataStoreConfig `json:"offline_store,omitempty"`
	OnlineStore  *DataStoreConfig `json:"online_store,omitempty"`
	Flags        Flags            `json:"flags"`
	IsDefault    bool             `json:"isDefault"`
}
