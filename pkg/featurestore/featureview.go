package featurestore

import (
	"context"

	"github.com/azure/feast-azure/pkg/feast/core"
	"github.com/azure/feast-azure/pkg/feast/registry"
)

// ApplyFeatureView creates or replaces the feature view.
func (c *Client) ApplyFeatureView(ctx context.Context, fv *core.FeatureView, refreshLocalCache bool) error {
	if err := c.ready(refreshLocalCache); err != nil {
		return err
	}
	if err := fv.Validate(); err != nil {
		return err
	}
	if err := c.client.ApplyFeatureView(ctx, c.project, fv); err != nil {
		return err
	}
	return c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyFeatureView(ctx, c.project, fv)
	})
}

// CreateFeatureView registers a new feature view.
func (c *Client) CreateFeatureView(ctx context.Context, fv *core.FeatureView, refreshLocalCache bool) error {
	if err := c.ready(refreshLocalCache); err != nil {
		return err
	}
	if err := fv.Validate(); err != nil {
		return err
	}
	if err := c.client.CreateFeatureView(ctx, c.project, fv); err != nil {
		return err
	}
	return c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyFeatureView(ctx, c.project, fv)
	})
}

// UpdateFeatureView replaces an existing feature view.
func (c *Client) UpdateFeatureView(ctx context.Context, fv *core.FeatureView, refreshLocalCache bool) error {
	if err := c.ready(refreshLocalCache); err != nil {
		return err
	}
	if err := fv.Validate(); err != nil {
		return err
	}
	if err := c.client.UpdateFeatureView(ctx, c.project, fv); err != nil {
		return err
	}
	return c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyFeatureView(ctx, c.project, fv)
	})
}

// DeleteFeatureView removes the feature view.
//
// When the local registry does not have it, it returns
// *registry.FeatureViewNotFoundError after the remote deletion.
func (c *Client) DeleteFeatureView(ctx context.Context, name string, refreshLocalCache bool) error {
	if err := c.ready(refreshLocalCache); err != nil {
		return err
	}
	if err := c.client.DeleteFeatureView(ctx, c.project, name); err != nil {
		return err
	}
	return c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.DeleteFeatureView(ctx, name, c.project)
	})
}

func (c *Client) GetFeatureView(ctx context.Context, name string, refreshLocalCache bool) (*core.FeatureView, error) {
	if err := c.ready(refreshLocalCache); err != nil {
		return nil, err
	}
	fv, err := c.client.GetFeatureView(ctx, c.project, name)
	if err != nil {
		return nil, err
	}
	if err := c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyFeatureView(ctx, c.project, fv)
	}); err != nil {
		return nil, err
	}
	return fv, nil
}

func (c *Client) ListFeatureViews(ctx context.Context, refreshLocalCache bool) ([]*core.FeatureView, error) {
	if err := c.ready(refreshLocalCache); err != nil {
		return nil, err
	}
	fvs, err := c.client.ListFeatureViews(ctx, c.project)
	if err != nil {
		return nil, err
	}
	if err := c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyFeatureView(ctx, c.project, fvs...)
	}); err != nil {
		return nil, err
	}
	return fvs, nil
}
