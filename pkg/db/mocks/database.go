package mocks

import (
	"context"
	"errors"

	kdb "github.com/azure/feast-azure/pkg/db"
)

type FeastDatabase struct {
	ProjectInterface *ProjectInterface
	ObjectInterfaces map[kdb.Kind]*ObjectInterface
	SchemaInterface  *SchemaInterface
}

func NewDatabase() *FeastDatabase {
	return &FeastDatabase{
		ProjectInterface: NewProjectInterface(),
		ObjectInterfaces: map[kdb.Kind]*ObjectInterface{
			kdb.KindEntity:         NewObjectInterface(kdb.KindEntity),
			kdb.KindFeatureView:    NewObjectInterface(kdb.KindFeatureView),
			kdb.KindFeatureService: NewObjectInterface(kdb.KindFeatureService),
		},
		SchemaInterface: &SchemaInterface{},
	}
}

var _ kdb.FeastDatabase = &FeastDatabase{}

func (m *FeastDatabase) Projects() kdb.ProjectInterface {
	return m.ProjectInterface
}

func (m *FeastDatabase) Objects(kind kdb.Kind) kdb.ObjectInterface {
	o, ok := m.ObjectInterfaces[kind]
	if !ok {
		return nil
	}
	return o
}

func (m *FeastDatabase) Schema() kdb.SchemaInterface {
	return m.SchemaInterface
}

func (m *FeastDatabase) Close() error {
	return nil
}

type SchemaInterface struct {
	Impl struct {
		Version func(ctx context.Context) (int, error)
		Upgrade func(ctx context.Context) error
	}
}

var _ kdb.SchemaInterface = &SchemaInterface{}

func (m *SchemaInterface) Version(ctx context.Context) (int, error) {
	if m.Impl.Version != nil {
		return m.Impl.Version(ctx)
	}
	return 0, errors.New("[MOCK] not implemented")
}

func (m *SchemaInterface) Upgrade(ctx context.Context) error {
	if m.Impl.Upgrade != nil {
		return m.Impl.Upgrade(ctx)
	}
	return errors.New("[MOCK] not implemented")
}
