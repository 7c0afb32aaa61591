package featurestore

import (
	"context"
	"fmt"

	"github.com/azure/feast-azure/pkg/feast/core"
	"github.com/azure/feast-azure/pkg/feast/registry"
)

func prepareEntity(entity *core.Entity) error {
	entity.SetDefaults()
	return entity.Validate()
}

// ApplyEntity creates or replaces the entity.
//
// An entity named after the sentinel entity is sent with the sentinel's
// join key and value type.
func (c *Client) ApplyEntity(ctx context.Context, entity *core.Entity, refreshLocalCache bool) error {
	if err := c.ready(refreshLocalCache); err != nil {
		return err
	}
	entity.GuardDummy()
	if err := prepareEntity(entity); err != nil {
		return err
	}
	if err := c.client.ApplyEntity(ctx, c.project, entity); err != nil {
		return err
	}
	return c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyEntity(ctx, c.project, entity)
	})
}

// CreateEntity registers a new entity. The control plane refuses an existing one.
//
// An entity named after the sentinel entity is rewritten to the sentinel's
// join key and value type.
func (c *Client) CreateEntity(ctx context.Context, entity *core.Entity, refreshLocalCache bool) error {
	if err := c.ready(refreshLocalCache); err != nil {
		return err
	}
	entity.GuardDummy()
	if err := prepareEntity(entity); err != nil {
		return err
	}
	if err := c.client.CreateEntity(ctx, c.project, entity); err != nil {
		return err
	}
	return c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyEntity(ctx, c.project, entity)
	})
}

// UpdateEntity replaces an existing entity.
//
// An entity named after the sentinel entity is rewritten to the sentinel's
// join key and value type.
func (c *Client) UpdateEntity(ctx context.Context, entity *core.Entity, refreshLocalCache bool) error {
	if err := c.ready(refreshLocalCache); err != nil {
		return err
	}
	entity.GuardDummy()
	if err := prepareEntity(entity); err != nil {
		return err
	}
	if err := c.client.UpdateEntity(ctx, c.project, entity); err != nil {
		return err
	}
	return c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyEntity(ctx, c.project, entity)
	})
}

// DeleteEntity removes the entity.
//
// The sentinel entity can not be deleted; it returns *ValueError.
// When the local registry does not have the entity, it returns
// *registry.EntityNotFoundError after the remote deletion.
func (c *Client) DeleteEntity(ctx context.Context, name string, refreshLocalCache bool) error {
	if name == core.DummyEntityName {
		return &ValueError{Message: fmt.Sprintf("Can not delete entity %s", core.DummyEntityName)}
	}
	if err := c.ready(refreshLocalCache); err != nil {
		return err
	}
	if err := c.client.DeleteEntity(ctx, c.project, name); err != nil {
		return err
	}
	return c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.DeleteEntity(ctx, name, c.project)
	})
}

func (c *Client) GetEntity(ctx context.Context, name string, refreshLocalCache bool) (*core.Entity, error) {
	if err := c.ready(refreshLocalCache); err != nil {
		return nil, err
	}
	entity, err := c.client.GetEntity(ctx, c.project, name)
	if err != nil {
		return nil, err
	}
	if err := c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyEntity(ctx, c.project, entity)
	}); err != nil {
		return nil, err
	}
	return entity, nil
}

func (c *Client) ListEntities(ctx context.Context, refreshLocalCache bool) ([]*core.Entity, error) {
	if err := c.ready(refreshLocalCache); err != nil {
		return nil, err
	}
	entities, err := c.client.ListEntities(ctx, c.project)
	if err != nil {
		return nil, err
	}
	if err := c.mirror(refreshLocalCache, func(r *registry.Registry) error {
		return r.ApplyEntity(ctx, c.project, entities...)
	}); err != nil {
		return nil, err
	}
	return entities, nil
}
