package projects_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/azure/feast-azure/api-types/misc/rfctime"
	"github.com/azure/feast-azure/api-types/projects"
	"gopkg.in/yaml.v3"
)

func TestRequest_MarshalJSON(t *testing.T) {
	cfg := projects.Config{
		Project:     "demo",
		Description: "a project",
		Provider:    "azure",
		OfflineStore: projects.NewDataStoreConfig(projects.MsSqlServerOfflineStore{
			ConnectionString: "Server=sql",
		}),
		OnlineStore: projects.NewDataStoreConfig(projects.RedisOnlineStore{
			RedisType: "redis", ConnectionString: "redis:6379",
		}),
		Flags:     projects.Flags{"alpha_features": true},
		IsDefault: true,
	}

	actual, err := json.Marshal(cfg.Request())
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(actual, &got); err != nil {
		t.Fatal(err)
	}
	var want map[string]any
	if err := json.Unmarshal([]byte(`{
		"projectName": "demo",
		"description": "a project",
		"provider": "azure",
		"offline_store": {
			"type": "feast_azure_provider.mssqlserver.MsSqlServerOfflineStore",
			"connection_string": "Server=sql"
		},
		"online_store": {
			"type": "redis",
			"redis_type": "redis",
			"connection_string": "redis:6379"
		},
		"flags": {"alpha_features": true},
		"isDefault": true
	}`), &want); err != nil {
		t.Fatal(err)
	}

	if !projects.Flags(got).Equal(projects.Flags(want)) {
		t.Errorf("unmatch:\n===actual===\n%s\n===expected===\n%+v", actual, want)
	}
}

func TestConfig_UnmarshalJSON(t *testing.T) {
	t.Run("it reads a server response", func(t *testing.T) {
		var actual projects.Config
		if err := json.Unmarshal([]byte(`{
			"project": "demo",
			"description": "a project",
			"online_store": {"type": "redis", "redis_type": "redis_cluster", "connection_string": "r"},
			"offline_store": null,
			"flags": "{\"on_demand_transforms\": true}",
			"registry": "azRegistry",
			"provider": "azure",
			"isDefault": false,
			"createdTime": "2022-03-01T12:34:56.1234567",
			"lastUpdatedTime": "2022-03-02T00:00:00Z"
		}`), &actual); err != nil {
			t.Fatal(err)
		}

		expected := projects.Config{
			Project:     "demo",
			Description: "a project",
			Provider:    "azure",
			OnlineStore: projects.NewDataStoreConfig(projects.RedisOnlineStore{
				RedisType: "redis_cluster", ConnectionString: "r",
			}),
			Flags:           projects.Flags{"on_demand_transforms": true},
			Registry:        projects.RegistryName,
			CreatedTime:     rfctime.RFC3339(time.Date(2022, 3, 1, 12, 34, 56, 123456700, time.UTC)),
			LastUpdatedTime: rfctime.RFC3339(time.Date(2022, 3, 2, 0, 0, 0, 0, time.UTC)),
		}
		if !actual.Equal(expected) {
			t.Errorf("unmatch:\n- actual   : %+v\n- expected : %+v", actual, expected)
		}
	})

	t.Run("it rejects unknown store types", func(t *testing.T) {
		var actual projects.Config
		err := json.Unmarshal([]byte(`{"project": "demo", "online_store": {"type": "sqlite"}}`), &actual)
		if !errors.Is(err, projects.ErrUnknownStoreType) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("it rejects store without type", func(t *testing.T) {
		var actual projects.Config
		err := json.Unmarshal([]byte(`{"project": "demo", "offline_store": {"connection_string": "x"}}`), &actual)
		if !errors.Is(err, projects.ErrUnknownStoreType) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestConfig_YAML(t *testing.T) {
	src := `
project: demo
description: from a file
offline_store:
  type: feast_azure_provider.mssqlserver.MsSqlServerOfflineStore
  connection_string: Server=sql
online_store:
  type: redis
  redis_type: redis
  connection_string: redis:6379
flags:
  alpha_features: true
isDefault: true
`
	var actual projects.Config
	if err := yaml.Unmarshal([]byte(src), &actual); err != nil {
		t.Fatal(err)
	}
	expected := projects.Config{
		Project:      "demo",
		Description:  "from a file",
		OfflineStore: projects.NewDataStoreConfig(projects.MsSqlServerOfflineStore{ConnectionString: "Server=sql"}),
		OnlineStore: projects.NewDataStoreConfig(projects.RedisOnlineStore{
			RedisType: "redis", ConnectionString: "redis:6379",
		}),
		Flags:     projects.Flags{"alpha_features": true},
		IsDefault: true,
	}
	if !actual.Equal(expected) {
		t.Fatalf("unmatch:\n- actual   : %+v\n- expected : %+v", actual, expected)
	}

	out, err := yaml.Marshal(actual)
	if err != nil {
		t.Fatal(err)
	}
	var again projects.Config
	if err := yaml.Unmarshal(out, &again); err != nil {
		t.Fatal(err)
	}
	if !again.Equal(expected) {
		t.Errorf("unmatch after re-encoding:\n%s", out)
	}
}
