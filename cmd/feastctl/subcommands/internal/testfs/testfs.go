// Package testfs builds featurestore clients over a mocked control plane.
package testfs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/azure/feast-azure/api-types/projects"
	"github.com/azure/feast-azure/pkg/feast/core"
	"github.com/azure/feast-azure/pkg/featurestore"
	"github.com/azure/feast-azure/pkg/rest/mock"
	"github.com/azure/feast-azure/pkg/utils/try"
	"github.com/rs/zerolog"
)

const Project = "driver_ranking"

// New returns a client of Project, initialized with an empty local registry.
//
// The local registry lives in a temporary directory.
func New(t *testing.T, client *mock.MockClient) *featurestore.Client {
	t.Helper()

	getProject := client.Impl.GetProject
	listEntities := client.Impl.ListEntities
	listFeatureViews := client.Impl.ListFeatureViews
	listFeatureServices := client.Impl.ListFeatureServices

	client.Impl.GetProject = func(ctx context.Context, project string) (projects.Config, error) {
		return projects.Config{Project: project}, nil
	}
	client.Impl.ListEntities = func(ctx context.Context, project string) ([]*core.Entity, error) {
		return nil, nil
	}
	client.Impl.ListFeatureViews = func(ctx context.Context, project string) ([]*core.FeatureView, error) {
		return nil, nil
	}
	client.Impl.ListFeatureServices = func(ctx context.Context, project string) ([]*core.FeatureService, error) {
		return nil, nil
	}

	fs := try.To(featurestore.New(
		context.Background(), "feast-core", Project,
		filepath.Join(t.TempDir(), "registry.db"),
		featurestore.WithFeastClient(client),
		featurestore.WithLogger(zerolog.Nop()),
	)).OrFatal(t)

	// calls made by the initialization are not of interest.
	client.Calls.GetProject = nil
	client.Calls.ListEntities = nil
	client.Calls.ListFeatureViews = nil
	client.Calls.ListFeatureServices = nil

	client.Impl.GetProject = getProject
	client.Impl.ListEntities = listEntities
	client.Impl.ListFeatureViews = listFeatureViews
	client.Impl.ListFeatureServices = listFeatureServices
	return fs
}
