package mocks

import (
	"context"
	"errors"

	kdb "github.com/azure/feast-azure/pkg/db"
)

type ObjectKey struct {
	Project string
	Name    string
}

type ObjectInterface struct {
	kind kdb.Kind
	Impl struct {
		Get    func(ctx context.Context, project string, name string) (kdb.Object, error)
		List   func(ctx context.Context, project string) ([]kdb.Object, error)
		Create func(ctx context.Context, obj kdb.Object) (kdb.Object, error)
		Update func(ctx context.Context, obj kdb.Object) (kdb.Object, error)
		Upsert func(ctx context.Context, obj kdb.Object) (kdb.Object, error)
		Delete func(ctx context.Context, project string, name string) error
	}
	Calls struct {
		Get    CallLog[ObjectKey]
		List   CallLog[string]
		Create CallLog[kdb.Object]
		Update CallLog[kdb.Object]
		Upsert CallLog[kdb.Object]
		Delete CallLog[ObjectKey]
	}
}

func NewObjectInterface(kind kdb.Kind) *ObjectInterface {
	return &ObjectInterface{kind: kind}
}

var _ kdb.ObjectInterface = &ObjectInterface{}

func (m *ObjectInterface) Kind() kdb.Kind {
	return m.kind
}

func (m *ObjectInterface) Get(ctx context.Context, project string, name string) (kdb.Object, error) {
	m.Calls.Get = append(m.Calls.Get, ObjectKey{Project: project, Name: name})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, project, name)
	}
	panic(errors.New("it should no be called"))
}

func (m *ObjectInterface) List(ctx context.Context, project string) ([]kdb.Object, error) {
	m.Calls.List = append(m.Calls.List, project)
	if m.Impl.List != nil {
		return m.Impl.List(ctx, project)
	}
	panic(errors.New("it should no be called"))
}

func (m *ObjectInterface) Create(ctx context.Context, obj kdb.Object) (kdb.Object, error) {
	m.Calls.Create = append(m.Calls.Create, obj)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, obj)
	}
	panic(errors.New("it should no be called"))
}

func (m *ObjectInterface) Update(ctx context.Context, obj kdb.Object) (kdb.Object, error) {
	m.Calls.Update = append(m.Calls.Update, obj)
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, obj)
	}
	panic(errors.New("it should no be called"))
}

func (m *ObjectInterface) Upsert(ctx context.Context, obj kdb.Object) (kdb.Object, error) {
	m.Calls.Upsert = append(m.Calls.Upsert, obj)
	if m.Impl.Upsert != nil {
		return m.Impl.Upsert(ctx, obj)
	}
	panic(errors.New("it should no be called"))
}

func (m *ObjectInterface) Delete(ctx context.Context, project string, name string) error {
	m.Calls.Delete = append(m.Calls.Delete, ObjectKey{Project: project, Name: name})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, project, name)
	}
	panic(errors.New("it should no be called"))
}
