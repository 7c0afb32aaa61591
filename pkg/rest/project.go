package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/azure/feast-azure/api-types/projects"
)

func (c *client) sendProject(ctx context.Context, method string, req projects.Request) error {
	if req.ProjectName == "" {
		return fmt.Errorf("project name is empty")
	}
	b, err := json.Marshal(req)
	if err != nil {
		return err
	}

	hreq, err := c.newRequest(ctx, method, c.projectpath(req.ProjectName), b)
	if err != nil {
		return err
	}
	resp, err := c.httpclient.Do(hreq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(resp)
}

func (c *client) CreateProject(ctx context.Context, req projects.Request) error {
	return c.sendProject(ctx, http.MethodPut, req)
}

func (c *client) UpdateProject(ctx context.Context, req projects.Request) error {
	return c.sendProject(ctx, http.MethodPatch, req)
}

func (c *client) GetProject(ctx context.Context, project string) (projects.Config, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.projectpath(project), nil)
	if err != nil {
		return projects.Config{}, err
	}
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return projects.Config{}, err
	}
	defer resp.Body.Close()

	var conf projects.Config
	if err := unmarshalJsonResponse(resp, &conf); err != nil {
		return projects.Config{}, err
	}
	return conf, nil
}

func (c *client) ListProjects(ctx context.Context) ([]projects.Config, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("api", "projects"), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	confs := make([]projects.Config, 0, 5)
	if err := unmarshalJsonResponse(resp, &confs); err != nil {
		return nil, err
	}
	return confs, nil
}

func (c *client) DeleteProject(ctx context.Context, project string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, c.projectpath(project), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(resp)
}
