package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/azure/feast-azure/api-types/objects"
	"github.com/azure/feast-azure/pkg/feast/core"
)

// Route segments of object kinds.
const (
	RouteEntities        = "entities"
	RouteFeatureViews    = "featureviews"
	RouteFeatureServices = "featureservices"
)

type sendable interface {
	Name() string
	Marshal() ([]byte, error)
}

type decodable[T any] interface {
	*T
	Unmarshal([]byte) error
}

// send obj as {"proto": "<base64>"} to the route of the object.
//
// When apply is true, the request goes to the ".../apply" sub-route.
func sendObject(ctx context.Context, c *client, method string, project string, kind string, obj sendable, apply bool) error {
	name := obj.Name()
	if name == "" {
		return fmt.Errorf("%s: name is empty", kind)
	}
	payload, err := objects.Encode(obj)
	if err != nil {
		return err
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	path := []string{kind, name}
	if apply {
		path = append(path, "apply")
	}
	req, err := c.newRequest(ctx, method, c.projectpath(project, path...), b)
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

func deleteObject(ctx context.Context, c *client, project string, kind string, name string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, c.projectpath(project, kind, name), nil)
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

func getObject[T any, P decodable[T]](ctx context.Context, c *client, project string, kind string, name string) (*T, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.projectpath(project, kind, name), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload objects.Payload
	if err := unmarshalJsonResponse(resp, &payload); err != nil {
		return nil, err
	}
	return objects.Decode[T, P](payload)
}

func listObjects[T any, P decodable[T]](ctx context.Context, c *client, project string, kind string) ([]*T, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.projectpath(project, kind), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payloads := make([]objects.Payload, 0, 5)
	if err := unmarshalJsonResponse(resp, &payloads); err != nil {
		return nil, err
	}
	return objects.DecodeAll[T, P](payloads)
}

func (c *client) ApplyEntity(ctx context.Context, project string, entity *core.Entity) error {
	return sendObject(ctx, c, http.MethodPost, project, RouteEntities, entity, true)
}

func (c *client) CreateEntity(ctx context.Context, project string, entity *core.Entity) error {
	return sendObject(ctx, c, http.MethodPut, project, RouteEntities, entity, false)
}

func (c *client) UpdateEntity(ctx context.Context, project string, entity *core.Entity) error {
	return sendObject(ctx, c, http.MethodPatch, project, RouteEntities, entity, false)
}

func (c *client) DeleteEntity(ctx context.Context, project string, name string) error {
	return deleteObject(ctx, c, project, RouteEntities, name)
}

func (c *client) GetEntity(ctx context.Context, project string, name string) (*core.Entity, error) {
	return getObject[core.Entity](ctx, c, project, RouteEntities, name)
}

func (c *client) ListEntities(ctx context.Context, project string) ([]*core.Entity, error) {
	return listObjects[core.Entity](ctx, c, project, RouteEntities)
}

func (c *client) ApplyFeatureView(ctx context.Context, project string, fv *core.FeatureView) error {
	return sendObject(ctx, c, http.MethodPost, project, RouteFeatureViews, fv, true)
}

func (c *client) CreateFeatureView(ctx context.Context, project string, fv *core.FeatureView) error {
	return sendObject(ctx, c, http.MethodPut, project, RouteFeatureViews, fv, false)
}

func (c *client) UpdateFeatureView(ctx context.Context, project string, fv *core.FeatureView) error {
	return sendObject(ctx, c, http.MethodPatch, project, RouteFeatureViews, fv, false)
}

func (c *client) DeleteFeatureView(ctx context.Context, project string, name string) error {
	return deleteObject(ctx, c, project, RouteFeatureViews, name)
}

func (c *client) GetFeatureView(ctx context.Context, project string, name string) (*core.FeatureView, error) {
	return getObject[core.FeatureView](ctx, c, project, RouteFeatureViews, name)
}

func (c *client) ListFeatureViews(ctx context.Context, project string) ([]*core.FeatureView, error) {
	return listObjects[core.FeatureView](ctx, c, project, RouteFeatureViews)
}

func (c *client) ApplyFeatureService(ctx context.Context, project string, fs *core.FeatureService) error {
	return sendObject(ctx, c, http.MethodPost, project, RouteFeatureServices, fs, true)
}

func (c *client) CreateFeatureService(ctx context.Context, project string, fs *core.FeatureService) error {
	return sendObject(ctx, c, http.MethodPut, project, RouteFeatureServices, fs, false)
}

func (c *client) UpdateFeatureService(ctx context.Context, project string, fs *core.FeatureService) error {
	return sendObject(ctx, c, http.MethodPatch, project, RouteFeatureServices, fs, false)
}

func (c *client) DeleteFeatureService(ctx context.Context, project string, name string) error {
	return deleteObject(ctx, c, project, RouteFeatureServices, name)
}

func (c *client) GetFeatureService(ctx context.Context, project string, name string) (*core.FeatureService, error) {
	return getObject[core.FeatureService](ctx, c, project, RouteFeatureServices, name)
}

func (c *client) ListFeatureServices(ctx context.Context, project string) ([]*core.FeatureService, error) {
	return listObjects[core.FeatureService](ctx, c, project, RouteFeatureServices)
}
