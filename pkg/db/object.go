package db

import (
	"context"
	"fmt"
	"time"
)

// Kind is a kind of objects.
type Kind string

const (
	KindEntity         Kind = "entity"
	KindFeatureView    Kind = "featureview"
	KindFeatureService Kind = "featureservice"
)

func (k Kind) String() string {
	return string(k)
}

func AsKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindEntity, KindFeatureView, KindFeatureService:
		return k, nil
	default:
		return "", fmt.Errorf("unknown object kind: %s", s)
	}
}

// Object is a record of an entity, a feature view or a feature service.
type Object struct {
	Kind    Kind
	Project string
	Name    string

	// Proto is the object in protobuf wire format.
	Proto []byte

	CreatedTime     time.Time
	LastUpdatedTime time.Time
}

// ObjectInterface is a store of objects of one kind.
//
// Objects are identified by (project, name).
type ObjectInterface interface {
	Kind() Kind

	// Get returns the object.
	//
	// # Returns
	//
	// - error: ErrMissing when the object is not found.
	Get(ctx context.Context, project string, name string) (Object, error)

	// List returns objects in the project, ordered by creation.
	List(ctx context.Context, project string) ([]Object, error)

	// Create registers a new object.
	//
	// # Returns
	//
	// - error: ErrConflict when the object exists,
	// or ErrMissing when the project is not found.
	Create(ctx context.Context, obj Object) (Object, error)

	// Update replaces the object.
	//
	// # Returns
	//
	// - error: ErrMissing when the object is not found.
	Update(ctx context.Context, obj Object) (Object, error)

	// Upsert creates or replaces the object.
	//
	// # Returns
	//
	// - error: ErrMissing when the project is not found.
	Upsert(ctx context.Context, obj Object) (Object, error)

	// Delete removes the object.
	//
	// # Returns
	//
	// - error: ErrMissing when the object is not found.
	Delete(ctx context.Context, project string, name string) error
}
