package server_test

import (
	"errors"
	"testing"
	"time"

	"github.com/azure/feast-azure/pkg/configs/server"
	"github.com/azure/feast-azure/pkg/logging"
)

func TestLoadServerConfig(t *testing.T) {
	t.Run("it can be created from a config file", func(t *testing.T) {
		result, err := server.LoadServerConfig("./testdata/config.yaml")
		if err != nil {
			t.Fatalf("failed to parse config.: %v", err)
		}

		expected := server.ServerConfig{
			ServerPort:       "8443",
			DBURI:            "postgres://feast-test-pgdb:5432/feast",
			SchemaBootstrap:  true,
			DBConnectTimeout: time.Minute,
			Log:              logging.Config{Level: "debug", Format: "text"},
		}
		if *result != expected {
			t.Errorf("unmatch config:\n===actual===\n%+v\n===expected===\n%+v", *result, expected)
		}
	})

	t.Run("port defaults to 8080", func(t *testing.T) {
		result, err := server.Unmarshal([]byte(`dbURI: postgres://localhost/feast`))
		if err != nil {
			t.Fatal(err)
		}
		if result.ServerPort != server.DefaultPort {
			t.Errorf("unmatch port: %s", result.ServerPort)
		}
		if result.SchemaBootstrap {
			t.Errorf("schemaBootstrap should be off by default")
		}
		if result.DBConnectTimeout != server.DefaultDBConnectTimeout {
			t.Errorf("unmatch dbConnectTimeout: %s", result.DBConnectTimeout)
		}
	})

	t.Run("dbConnectTimeout is read as a duration", func(t *testing.T) {
		result, err := server.Unmarshal([]byte("dbURI: postgres://localhost/feast\ndbConnectTimeout: 90s"))
		if err != nil {
			t.Fatal(err)
		}
		if result.DBConnectTimeout != 90*time.Second {
			t.Errorf("unmatch dbConnectTimeout: %s", result.DBConnectTimeout)
		}
	})

	t.Run("dbURI is required", func(t *testing.T) {
		if _, err := server.Unmarshal([]byte(`port: "80"`)); !errors.Is(err, server.ErrDBURIMissing) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing file causes error", func(t *testing.T) {
		if _, err := server.LoadServerConfig("./testdata/nothing.yaml"); err == nil {
			t.Error("expected error")
		}
	})
}
