// Package server reads the configuration file of feastd.
package server

import (
	"errors"
	"os"
	"time"

	"github.com/azure/feast-azure/pkg/logging"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort             = "8080"
	DefaultDBConnectTimeout = 30 * time.Second
)

type ServerConfig struct {
	// ServerPort is the port to listen.
	ServerPort string `yaml:"port"`

	// DBURI is the connection string of the PostgreSQL database.
	DBURI string `yaml:"dbURI"`

	// DBConnectTimeout bounds how long feastd waits for the database on start,
	// like "30s" or "2m".
	DBConnectTimeout time.Duration `yaml:"dbConnectTimeout"`

	// SchemaBootstrap upgrades the database schema on start.
	SchemaBootstrap bool `yaml:"schemaBootstrap"`

	Log logging.Config `yaml:"log"`
}

var ErrDBURIMissing = errors.New(`config: "dbURI" is required`)

// load feastd config from a file.
func LoadServerConfig(filepath string) (*ServerConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (*ServerConfig, error) {
	out := ServerConfig{ServerPort: DefaultPort, DBConnectTimeout: DefaultDBConnectTimeout}
	if err := yaml.Unmarshal(conf, &out); err != nil {
		return nil, err
	}
	if out.DBURI == "" {
		return nil, ErrDBURIMissing
	}
	if out.ServerPort == "" {
		out.ServerPort = DefaultPort
	}
	if out.DBConnectTimeout <= 0 {
		out.DBConnectTimeout = DefaultDBConnectTimeout
	}
	return &out, nil
}
