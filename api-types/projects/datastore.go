package projects

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Store type tags.
const (
	MsSqlServerOfflineStoreType = "feast_azure_provider.mssqlserver.MsSqlServerOfflineStore"
	RedisOnlineStoreType        = "redis"
)

var ErrUnknownStoreType = errors.New("unknown data store type")

// DataStore is a connection descriptor of an offline or online store.
//
// Implementations are MsSqlServerOfflineStore and RedisOnlineStore.
type DataStore interface {
	StoreType() string
	dataStore()
}

type MsSqlServerOfflineStore struct {
	ConnectionString string `json:"connection_string" yaml:"connection_string"`
}

func (MsSqlServerOfflineStore) StoreType() string { return MsSqlServerOfflineStoreType }
func (MsSqlServerOfflineStore) dataStore()        {}

type RedisOnlineStore struct {
	// RedisType is "redis" or "redis_cluster".
	RedisType        string `json:"redis_type" yaml:"redis_type"`
	ConnectionString string `json:"connection_string" yaml:"connection_string"`
}

func (RedisOnlineStore) StoreType() string { return RedisOnlineStoreType }
func (RedisOnlineStore) dataStore()        {}

// DataStoreConfig carries a DataStore, tagged with its type in the "type" field.
type DataStoreConfig struct {
	Store DataStore
}

func NewDataStoreConfig(store DataStore) *DataStoreConfig {
	return &DataStoreConfig{Store: store}
}

func (c *DataStoreConfig) Equal(o *DataStoreConfig) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.Store == o.Store
}

func newStore(typ string) (DataStore, error) {
	switch typ {
	case MsSqlServerOfflineStoreType:
		return &MsSqlServerOfflineStore{}, nil
	case RedisOnlineStoreType:
		return &RedisOnlineStore{}, nil
	case "":
		return nil, fmt.Errorf(`%w: "type" is missing`, ErrUnknownStoreType)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownStoreType, typ)
}

func deref(store DataStore) DataStore {
	switch s := store.(type) {
	case *MsSqlServerOfflineStore:
		return *s
	case *RedisOnlineStore:
		return *s
	}
	return store
}

type tagged struct {
	Type string `json:"type" yaml:"type"`
}

func (c DataStoreConfig) MarshalJSON() ([]byte, error) {
	switch s := c.Store.(type) {
	case MsSqlServerOfflineStore:
		return json.Marshal(struct {
			tagged
			MsSqlServerOfflineStore
		}{tagged{s.StoreType()}, s})
	case RedisOnlineStore:
		return json.Marshal(struct {
			tagged
			RedisOnlineStore
		}{tagged{s.StoreType()}, s})
	case nil:
		return []byte("null"), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownStoreType, c.Store)
}

func (c *DataStoreConfig) UnmarshalJSON(b []byte) error {
	t := tagged{}
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	store, err := newStore(t.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, store); err != nil {
		return err
	}
	c.Store = deref(store)
	return nil
}

func (c DataStoreConfig) MarshalYAML() (interface{}, error) {
	switch s := c.Store.(type) {
	case MsSqlServerOfflineStore:
		return struct {
			tagged                  `yaml:",inline"`
			MsSqlServerOfflineStore `yaml:",inline"`
		}{tagged{s.StoreType()}, s}, nil
	case RedisOnlineStore:
		return struct {
			tagged           `yaml:",inline"`
			RedisOnlineStore `yaml:",inline"`
		}{tagged{s.StoreType()}, s}, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownStoreType, c.Store)
}

func (c *DataStoreConfig) UnmarshalYAML(node *yaml.Node) error {
	t := struct {
		Type string `yaml:"type"`
	}{}
	if err := node.Decode(&t); err != nil {
		return err
	}
	store, err := newStore(t.Type)
	if err != nil {
		return err
	}
	if err := node.Decode(store); err != nil {
		return err
	}
	c.Store = deref(store)
	return nil
}
