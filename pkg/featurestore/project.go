package featurestore

import (
	"context"

	"github.com/azure/feast-azure/api-types/projects"
)

// CreateProject registers the project to the control plane.
//
// Creating the project of this client does not initialize it; call Init after that.
func (c *Client) CreateProject(ctx context.Context, config projects.Config) error {
	return c.client.CreateProject(ctx, config.Request())
}

func (c *Client) UpdateProject(ctx context.Context, config projects.Config) error {
	return c.client.UpdateProject(ctx, config.Request())
}

func (c *Client) GetProject(ctx context.Context, name string) (projects.Config, error) {
	return c.client.GetProject(ctx, name)
}

func (c *Client) ListProjects(ctx context.Context) ([]projects.Config, error) {
	return c.client.ListProjects(ctx)
}

func (c *Client) DeleteProject(ctx context.Context, name string) error {
	return c.client.DeleteProject(ctx, name)
}
