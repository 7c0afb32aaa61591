package projects

import (
	"encoding/json"
	"fmt"

	"github.com/azure/feast-azure/api-types/misc/rfctime"
	apiprojects "github.com/azure/feast-azure/api-types/projects"
	kdb "github.com/azure/feast-azure/pkg/db"
)

// Compose converts the project record into its response document.
func Compose(p kdb.Project) (apiprojects.Config, error) {
	offline, err := composeDataStore(p.OfflineStore)
	if err != nil {
		return apiprojects.Config{}, fmt.Errorf("offline_store of project %s: %w", p.Name, err)
	}
	online, err := composeDataStore(p.OnlineStore)
	if err != nil {
		return apiprojects.Config{}, fmt.Errorf("online_store of project %s: %w", p.Name, err)
	}

	var flags apiprojects.Flags
	if len(p.Flags) != 0 {
		if err := json.Unmarshal(p.Flags, &flags); err != nil {
			return apiprojects.Config{}, fmt.Errorf("flags of project %s: %w", p.Name, err)
		}
	}

	return apiprojects.Config{
		Project:         p.Name,
		Description:     p.Description,
		Provider:        p.Provider,
		OfflineStore:    offline,
		OnlineStore:     online,
		Flags:           flags,
		Registry:        apiprojects.RegistryName,
		IsDefault:       p.IsDefault,
		CreatedTime:     rfctime.RFC3339(p.CreatedTime),
		LastUpdatedTime: rfctime.RFC3339(p.LastUpdatedTime),
	}, nil
}

// Parse converts the request document into a project record.
//
// Timestamps are left zero.
func Parse(req apiprojects.Request) (kdb.Project, error) {
	offline, err := parseDataStore(req.OfflineStore)
	if err != nil {
		return kdb.Project{}, fmt.Errorf("offline_store: %w", err)
	}
	online, err := parseDataStore(req.OnlineStore)
	if err != nil {
		return kdb.Project{}, fmt.Errorf("online_store: %w", err)
	}

	var flags []byte
	if req.Flags != nil {
		if flags, err = json.Marshal(req.Flags); err != nil {
			return kdb.Project{}, fmt.Errorf("flags: %w", err)
		}
	}

	return kdb.Project{
		Name:         req.ProjectName,
		Description:  req.Description,
		Provider:     req.Provider,
		OfflineStore: offline,
		OnlineStore:  online,
		Flags:        flags,
		IsDefault:    req.IsDefault,
	}, nil
}

func composeDataStore(ds kdb.DataStore) (*apiprojects.DataStoreConfig, error) {
	if len(ds) == 0 {
		return nil, nil
	}
	c := new(apiprojects.DataStoreConfig)
	if err := json.Unmarshal(ds, c); err != nil {
		return nil, err
	}
	return c, nil
}

func parseDataStore(c *apiprojects.DataStoreConfig) (kdb.DataStore, error) {
	if c == nil || c.Store == nil {
		return nil, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return kdb.DataStore(b), nil
}
