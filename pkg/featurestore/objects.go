package featurestore

import (
	"context"

	"github.com/azure/feast-azure/pkg/feast/core"
)

// ErrUnknownObjectKind is returned by ApplyAll for nil objects.
var ErrUnknownObjectKind = &ValueError{Message: "Unknown object type provided."}

// Object is one of EntityObject, FeatureViewObject or FeatureServiceObject.
type Object interface {
	Name() string

	// apply the object through its kind-specific Apply method.
	apply(ctx context.Context, c *Client, refreshLocalCache bool) error
}

type EntityObject struct {
	Entity *core.Entity
}

func (o EntityObject) Name() string {
	return o.Entity.Name()
}

func (o EntityObject) apply(ctx context.Context, c *Client, refreshLocalCache bool) error {
	if o.Entity == nil {
		return ErrUnknownObjectKind
	}
	return c.ApplyEntity(ctx, o.Entity, refreshLocalCache)
}

type FeatureViewObject struct {
	FeatureView *core.FeatureView
}

func (o FeatureViewObject) Name() string {
	return o.FeatureView.Name()
}

func (o FeatureViewObject) apply(ctx context.Context, c *Client, refreshLocalCache bool) error {
	if o.FeatureView == nil {
		return ErrUnknownObjectKind
	}
	return c.ApplyFeatureView(ctx, o.FeatureView, refreshLocalCache)
}

type FeatureServiceObject struct {
	FeatureService *core.FeatureService
}

func (o FeatureServiceObject) Name() string {
	return o.FeatureService.Name()
}

func (o FeatureServiceObject) apply(ctx context.Context, c *Client, refreshLocalCache bool) error {
	if o.FeatureService == nil {
		return ErrUnknownObjectKind
	}
	return c.ApplyFeatureService(ctx, o.FeatureService, refreshLocalCache)
}

// ApplyAll applies the sentinel entity, and then objects in order.
//
// It stops at the first error. Objects applied before the error stay applied.
func (c *Client) ApplyAll(ctx context.Context, objects []Object, refreshLocalCache bool) error {
	if err := c.ApplyEntity(ctx, core.DummyEntity(), refreshLocalCache); err != nil {
		return err
	}
	for _, obj := range objects {
		if obj == nil {
			return ErrUnknownObjectKind
		}
		if err := obj.apply(ctx, c, refreshLocalCache); err != nil {
			return err
		}
	}
	return nil
}
