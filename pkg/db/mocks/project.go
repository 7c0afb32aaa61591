package mocks

import (
	"context"
	"errors"

	kdb "github.com/azure/feast-azure/pkg/db"
)

type ProjectInterface struct {
	Impl struct {
		Get    func(ctx context.Context, name string) (kdb.Project, error)
		List   func(ctx context.Context) ([]kdb.Project, error)
		Create func(ctx context.Context, project kdb.Project) (kdb.Project, error)
		Update func(ctx context.Context, project kdb.Project) (kdb.Project, error)
		Delete func(ctx context.Context, name string) error
	}
	Calls struct {
		Get    CallLog[string]
		List   CallLog[struct{}]
		Create CallLog[kdb.Project]
		Update CallLog[kdb.Project]
		Delete CallLog[string]
	}
}

func NewProjectInterface() *ProjectInterface {
	return &ProjectInterface{}
}

var _ kdb.ProjectInterface = &ProjectInterface{}

func (m *ProjectInterface) Get(ctx context.Context, name string) (kdb.Project, error) {
	m.Calls.Get = append(m.Calls.Get, name)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, name)
	}
	panic(errors.New("it should no be called"))
}

func (m *ProjectInterface) List(ctx context.Context) ([]kdb.Project, error) {
	m.Calls.List = append(m.Calls.List, struct{}{})
	if m.Impl.List != nil {
		return m.Impl.List(ctx)
	}
	panic(errors.New("it should no be called"))
}

func (m *ProjectInterface) Create(ctx context.Context, project kdb.Project) (kdb.Project, error) {
	m.Calls.Create = append(m.Calls.Create, project)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, project)
	}
	panic(errors.New("it should no be called"))
}

func (m *ProjectInterface) Update(ctx context.Context, project kdb.Project) (kdb.Project, error) {
	m.Calls.Update = append(m.Calls.Update, project)
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, project)
	}
	panic(errors.New("it should no be called"))
}

func (m *ProjectInterface) Delete(ctx context.Context, name string) error {
	m.Calls.Delete = append(m.Calls.Delete, name)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, name)
	}
	panic(errors.New("it should no be called"))
}
