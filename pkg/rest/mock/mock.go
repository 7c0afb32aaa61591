// Package mock provides a mock of rest.FeastClient.
package mock

import (
	"context"
	"testing"

	"github.com/azure/feast-azure/api-types/projects"
	"github.com/azure/feast-azure/pkg/feast/core"
	"github.com/azure/feast-azure/pkg/rest"
)

type ObjectArgs[T any] struct {
	Project string
	Object  T
}

type NameArgs struct {
	Project string
	Name    string
}

// New returns a MockClient.
//
// Each method calls the function of the same name in Impl, and records its arguments in Calls.
// Calling a method without Impl fails the test.
func New(t *testing.T) *MockClient {
	return &MockClient{t: t}
}

type MockClient struct {
	t    *testing.T
	Impl struct {
		CreateProject        func(ctx context.Context, req projects.Request) error
		UpdateProject        func(ctx context.Context, req projects.Request) error
		GetProject           func(ctx context.Context, project string) (projects.Config, error)
		ListProjects         func(ctx context.Context) ([]projects.Config, error)
		DeleteProject        func(ctx context.Context, project string) error
		ApplyEntity          func(ctx context.Context, project string, entity *core.Entity) error
		CreateEntity         func(ctx context.Context, project string, entity *core.Entity) error
		UpdateEntity         func(ctx context.Context, project string, entity *core.Entity) error
		DeleteEntity         func(ctx context.Context, project string, name string) error
		GetEntity            func(ctx context.Context, project string, name string) (*core.Entity, error)
		ListEntities         func(ctx context.Context, project string) ([]*core.Entity, error)
		ApplyFeatureView     func(ctx context.Context, project string, fv *core.FeatureView) error
		CreateFeatureView    func(ctx context.Context, project string, fv *core.FeatureView) error
		UpdateFeatureView    func(ctx context.Context, project string, fv *core.FeatureView) error
		DeleteFeatureView    func(ctx context.Context, project string, name string) error
		GetFeatureView       func(ctx context.Context, project string, name string) (*core.FeatureView, error)
		ListFeatureViews     func(ctx context.Context, project string) ([]*core.FeatureView, error)
		ApplyFeatureService  func(ctx context.Context, project string, fs *core.FeatureService) error
		CreateFeatureService func(ctx context.Context, project string, fs *core.FeatureService) error
		UpdateFeatureService func(ctx context.Context, project string, fs *core.FeatureService) error
		DeleteFeatureService func(ctx context.Context, project string, name string) error
		GetFeatureService    func(ctx context.Context, project string, name string) (*core.FeatureService, error)
		ListFeatureServices  func(ctx context.Context, project string) ([]*core.FeatureService, error)
	}
	Calls struct {
		CreateProject        []projects.Request
		UpdateProject        []projects.Request
		GetProject           []string
		ListProjects         []struct{}
		DeleteProject        []string
		ApplyEntity          []ObjectArgs[*core.Entity]
		CreateEntity         []ObjectArgs[*core.Entity]
		UpdateEntity         []ObjectArgs[*core.Entity]
		DeleteEntity         []NameArgs
		GetEntity            []NameArgs
		ListEntities         []string
		ApplyFeatureView     []ObjectArgs[*core.FeatureView]
		CreateFeatureView    []ObjectArgs[*core.FeatureView]
		UpdateFeatureView    []ObjectArgs[*core.FeatureView]
		DeleteFeatureView    []NameArgs
		GetFeatureView       []NameArgs
		ListFeatureViews     []string
		ApplyFeatureService  []ObjectArgs[*core.FeatureService]
		CreateFeatureService []ObjectArgs[*core.FeatureService]
		UpdateFeatureService []ObjectArgs[*core.FeatureService]
		DeleteFeatureService []NameArgs
		GetFeatureService    []NameArgs
		ListFeatureServices  []string
	}
}

var _ rest.FeastClient = &MockClient{}

func (m *MockClient) CreateProject(ctx context.Context, req projects.Request) error {
	m.t.Helper()

	m.Calls.CreateProject = append(m.Calls.CreateProject, req)
	if m.Impl.CreateProject == nil {
		m.t.Fatal("CreateProject is not ready to be called")
	}
	return m.Impl.CreateProject(ctx, req)
}

func (m *MockClient) UpdateProject(ctx context.Context, req projects.Request) error {
	m.t.Helper()

	m.Calls.UpdateProject = append(m.Calls.UpdateProject, req)
	if m.Impl.UpdateProject == nil {
		m.t.Fatal("UpdateProject is not ready to be called")
	}
	return m.Impl.UpdateProject(ctx, req)
}

func (m *MockClient) GetProject(ctx context.Context, project string) (projects.Config, error) {
	m.t.Helper()

	m.Calls.GetProject = append(m.Calls.GetProject, project)
	if m.Impl.GetProject == nil {
		m.t.Fatal("GetProject is not ready to be called")
	}
	return m.Impl.GetProject(ctx, project)
}

func (m *MockClient) ListProjects(ctx context.Context) ([]projects.Config, error) {
	m.t.Helper()

	m.Calls.ListProjects = append(m.Calls.ListProjects, struct{}{})
	if m.Impl.ListProjects == nil {
		m.t.Fatal("ListProjects is not ready to be called")
	}
	return m.Impl.ListProjects(ctx)
}

func (m *MockClient) DeleteProject(ctx context.Context, project string) error {
	m.t.Helper()

	m.Calls.DeleteProject = append(m.Calls.DeleteProject, project)
	if m.Impl.DeleteProject == nil {
		m.t.Fatal("DeleteProject is not ready to be called")
	}
	return m.Impl.DeleteProject(ctx, project)
}

func (m *MockClient) ApplyEntity(ctx context.Context, project string, entity *core.Entity) error {
	m.t.Helper()

	m.Calls.ApplyEntity = append(m.Calls.ApplyEntity, ObjectArgs[*core.Entity]{Project: project, Object: entity})
	if m.Impl.ApplyEntity == nil {
		m.t.Fatal("ApplyEntity is not ready to be called")
	}
	return m.Impl.ApplyEntity(ctx, project, entity)
}

func (m *MockClient) CreateEntity(ctx context.Context, project string, entity *core.Entity) error {
	m.t.Helper()

	m.Calls.CreateEntity = append(m.Calls.CreateEntity, ObjectArgs[*core.Entity]{Project: project, Object: entity})
	if m.Impl.CreateEntity == nil {
		m.t.Fatal("CreateEntity is not ready to be called")
	}
	return m.Impl.CreateEntity(ctx, project, entity)
}

func (m *MockClient) UpdateEntity(ctx context.Context, project string, entity *core.Entity) error {
	m.t.Helper()

	m.Calls.UpdateEntity = append(m.Calls.UpdateEntity, ObjectArgs[*core.Entity]{Project: project, Object: entity})
	if m.Impl.UpdateEntity == nil {
		m.t.Fatal("UpdateEntity is not ready to be called")
	}
	return m.Impl.UpdateEntity(ctx, project, entity)
}

func (m *MockClient) DeleteEntity(ctx context.Context, project string, name string) error {
	m.t.Helper()

	m.Calls.DeleteEntity = append(m.Calls.DeleteEntity, NameArgs{Project: project, Name: name})
	if m.Impl.DeleteEntity == nil {
		m.t.Fatal("DeleteEntity is not ready to be called")
	}
	return m.Impl.DeleteEntity(ctx, project, name)
}

func (m *MockClient) GetEntity(ctx context.Context, project string, name string) (*core.Entity, error) {
	m.t.Helper()

	m.Calls.GetEntity = append(m.Calls.GetEntity, NameArgs{Project: project, Name: name})
	if m.Impl.GetEntity == nil {
		m.t.Fatal("GetEntity is not ready to be called")
	}
	return m.Impl.GetEntity(ctx, project, name)
}

func (m *MockClient) ListEntities(ctx context.Context, project string) ([]*core.Entity, error) {
	m.t.Helper()

	m.Calls.ListEntities = append(m.Calls.ListEntities, project)
	if m.Impl.ListEntities == nil {
		m.t.Fatal("ListEntities is not ready to be called")
	}
	return m.Impl.ListEntities(ctx, project)
}

func (m *MockClient) ApplyFeatureView(ctx context.Context, project string, fv *core.FeatureView) error {
	m.t.Helper()

	m.Calls.ApplyFeatureView = append(m.Calls.ApplyFeatureView, ObjectArgs[*core.FeatureView]{Project: project, Object: fv})
	if m.Impl.ApplyFeatureView == nil {
		m.t.Fatal("ApplyFeatureView is not ready to be called")
	}
	return m.Impl.ApplyFeatureView(ctx, project, fv)
}

func (m *MockClient) CreateFeatureView(ctx context.Context, project string, fv *core.FeatureView) error {
	m.t.Helper()

	m.Calls.CreateFeatureView = append(m.Calls.CreateFeatureView, ObjectArgs[*core.FeatureView]{Project: project, Object: fv})
	if m.Impl.CreateFeatureView == nil {
		m.t.Fatal("CreateFeatureView is not ready to be called")
	}
	return m.Impl.CreateFeatureView(ctx, project, fv)
}

func (m *MockClient) UpdateFeatureView(ctx context.Context, project string, fv *core.FeatureView) error {
	m.t.Helper()

	m.Calls.UpdateFeatureView = append(m.Calls.UpdateFeatureView, ObjectArgs[*core.FeatureView]{Project: project, Object: fv})
	if m.Impl.UpdateFeatureView == nil {
		m.t.Fatal("UpdateFeatureView is not ready to be called")
	}
	return m.Impl.UpdateFeatureView(ctx, project, fv)
}

func (m *MockClient) DeleteFeatureView(ctx context.Context, project string, name string) error {
	m.t.Helper()

	m.Calls.DeleteFeatureView = append(m.Calls.DeleteFeatureView, NameArgs{Project: project, Name: name})
	if m.Impl.DeleteFeatureView == nil {
		m.t.Fatal("DeleteFeatureView is not ready to be called")
	}
	return m.Impl.DeleteFeatureView(ctx, project, name)
}

func (m *MockClient) GetFeatureView(ctx context.Context, project string, name string) (*core.FeatureView, error) {
	m.t.Helper()

	m.Calls.GetFeatureView = append(m.Calls.GetFeatureView, NameArgs{Project: project, Name: name})
	if m.Impl.GetFeatureView == nil {
		m.t.Fatal("GetFeatureView is not ready to be called")
	}
	return m.Impl.GetFeatureView(ctx, project, name)
}

func (m *MockClient) ListFeatureViews(ctx context.Context, project string) ([]*core.FeatureView, error) {
	m.t.Helper()

	m.Calls.ListFeatureViews = append(m.Calls.ListFeatureViews, project)
	if m.Impl.ListFeatureViews == nil {
		m.t.Fatal("ListFeatureViews is not ready to be called")
	}
	return m.Impl.ListFeatureViews(ctx, project)
}

func (m *MockClient) ApplyFeatureService(ctx context.Context, project string, fs *core.FeatureService) error {
	m.t.Helper()

	m.Calls.ApplyFeatureService = append(m.Calls.ApplyFeatureService, ObjectArgs[*core.FeatureService]{Project: project, Object: fs})
	if m.Impl.ApplyFeatureService == nil {
		m.t.Fatal("ApplyFeatureService is not ready to be called")
	}
	return m.Impl.ApplyFeatureService(ctx, project, fs)
}

func (m *MockClient) CreateFeatureService(ctx context.Context, project string, fs *core.FeatureService) error {
	m.t.Helper()

	m.Calls.CreateFeatureService = append(m.Calls.CreateFeatureService, ObjectArgs[*core.FeatureService]{Project: project, Object: fs})
	if m.Impl.CreateFeatureService == nil {
		m.t.Fatal("CreateFeatureService is not ready to be called")
	}
	return m.Impl.CreateFeatureService(ctx, project, fs)
}

func (m *MockClient) UpdateFeatureService(ctx context.Context, project string, fs *core.FeatureService) error {
	m.t.Helper()

	m.Calls.UpdateFeatureService = append(m.Calls.UpdateFeatureService, ObjectArgs[*core.FeatureService]{Project: project, Object: fs})
	if m.Impl.UpdateFeatureService == nil {
		m.t.Fatal("UpdateFeatureService is not ready to be called")
	}
	return m.Impl.UpdateFeatureService(ctx, project, fs)
}

func (m *MockClient) DeleteFeatureService(ctx context.Context, project string, name string) error {
	m.t.Helper()

	m.Calls.DeleteFeatureService = append(m.Calls.DeleteFeatureService, NameArgs{Project: project, Name: name})
	if m.Impl.DeleteFeatureService == nil {
		m.t.Fatal("DeleteFeatureService is not ready to be called")
	}
	return m.Impl.DeleteFeatureService(ctx, project, name)
}

func (m *MockClient) GetFeatureService(ctx context.Context, project string, name string) (*core.FeatureService, error) {
	m.t.Helper()

	m.Calls.GetFeatureService = append(m.Calls.GetFeatureService, NameArgs{Project: project, Name: name})
	if m.Impl.GetFeatureService == nil {
		m.t.Fatal("GetFeatureService is not ready to be called")
	}
	return m.Impl.GetFeatureService(ctx, project, name)
}

func (m *MockClient) ListFeatureServices(ctx context.Context, project string) ([]*core.FeatureService, error) {
	m.t.Helper()

	m.Calls.ListFeatureServices = append(m.Calls.ListFeatureServices, project)
	if m.Impl.ListFeatureServices == nil {
		m.t.Fatal("ListFeatureServices is not ready to be called")
	}
	return m.Impl.ListFeatureServices(ctx, project)
}
