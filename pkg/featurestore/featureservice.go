package featurestore

import (
	"context"

	"github.com/azure/feast-azure/pkg/feast/core"
	"github.com/azure/feast-azure/pkg/feast/registry"
)

func (c *Client) ApplyFeatureService(ctx context.Context, fs *core.FeatureService, refreshLocalCache bool) error {
	if err := c.ready(refreshLocalCache); err != nil {
		return err
	}
	if err := fs.Validate(); err != nil {
		return err
	}
	if err := c.client.ApplyFeatureService(ctx, c.project, fs); err != nil {
		return err
	}
	return c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyFeatureService(ctx, c.project, fs)
	})
}

func (c *Client) CreateFeatureService(ctx context.Context, fs *core.FeatureService, refreshLocalCache bool) error {
	if err := c.ready(refreshLocalCache); err != nil {
		return err
	}
	if err := fs.Validate(); err != nil {
		return err
	}
	if err := c.client.CreateFeatureService(ctx, c.project, fs); err != nil {
		return err
	}
	return c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyFeatureService(ctx, c.project, fs)
	})
}

func (c *Client) UpdateFeatureService(ctx context.Context, fs *core.FeatureService, refreshLocalCache bool) error {
	if err := c.ready(refreshLocalCache); err != nil {
		return err
	}
	if err := fs.Validate(); err != nil {
		return err
	}
	if err := c.client.UpdateFeatureService(ctx, c.project, fs); err != nil {
		return err
	}
	return c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyFeatureService(ctx, c.project, fs)
	})
}

func (c *Client) DeleteFeatureService(ctx context.Context, name string, refreshLocalCache bool) error {
	if err := c.ready(refreshLocalCache); err != nil {
		return err
	}
	if err := c.client.DeleteFeatureService(ctx, c.project, name); err != nil {
		return err
	}
	return c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.DeleteFeatureService(ctx, name, c.project)
	})
}

func (c *Client) GetFeatureService(ctx context.Context, name string, refreshLocalCache bool) (*core.FeatureService, error) {
	if err := c.ready(refreshLocalCache); err != nil {
		return nil, err
	}
	fs, err := c.client.GetFeatureService(ctx, c.project, name)
	if err != nil {
		return nil, err
	}
	if err := c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyFeatureService(ctx, c.project, fs)
	}); err != nil {
		return nil, err
	}
	return fs, nil
}

func (c *Client) ListFeatureServices(ctx context.Context, refreshLocalCache bool) ([]*core.FeatureService, error) {
	if err := c.ready(refreshLocalCache); err != nil {
		return nil, err
	}
	fss, err := c.client.ListFeatureServices(ctx, c.project)
	if err != nil {
		return nil, err
	}
	if err := c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyFeatureService(ctx, c.project, fss...)
	}); err != nil {
		return nil, err
	}
	return fss, nil
}
