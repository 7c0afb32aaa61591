package main

import (
	"fmt"
	"path"

	"github.com/azure/feast-azure/cmd/feastd/handlers"
	"github.com/azure/feast-azure/pkg/api-types-binding/errors"
	kdb "github.com/azure/feast-azure/pkg/db"
	"github.com/azure/feast-azure/pkg/rest"
	"github.com/labstack/echo/v4"
)

// route segments of object kinds.
var kindRoutes = map[kdb.Kind]string{
	kdb.KindEntity:         rest.RouteEntities,
	kdb.KindFeatureView:    rest.RouteFeatureViews,
	kdb.KindFeatureService: rest.RouteFeatureServices,
}

// create api path factory
//
// args:
//   - root: api root path
//
// return:
// - func: it receive relative path from root, and returns full-path.
func root(r string) func(...string) string {
	return func(s ...string) string {
		return path.Join(append([]string{"/", r}, s...)...)
	}
}

// routes registers handlers of the control plane API onto e.
func routes(e *echo.Echo, api func(...string) string, db kdb.FeastDatabase) error {
	const (
		projectParam = "project"
		nameParam    = "name"
	)
	dbproject := db.Projects()

	{
		project := api("projects", ":"+projectParam)
		e.GET(api("projects"), handlers.ListProjectsHandler(dbproject))
		e.GET(project, handlers.GetProjectHandler(dbproject, projectParam))
		e.PUT(project, handlers.CreateProjectHandler(dbproject, projectParam))
		e.PATCH(project, handlers.UpdateProjectHandler(dbproject, projectParam))
		e.DELETE(project, handlers.DeleteProjectHandler(dbproject, projectParam))
	}

	params := handlers.ObjectParams{Project: projectParam, Name: nameParam}
	for _, kind := range []kdb.Kind{kdb.KindEntity, kdb.KindFeatureView, kdb.KindFeatureService} {
		dbobject := db.Objects(kind)
		if dbobject == nil {
			return fmt.Errorf("no store for %s", errors.Noun(kind))
		}
		decode, err := handlers.DecoderFor(kind)
		if err != nil {
			return err
		}

		collection := api("projects", ":"+projectParam, kindRoutes[kind])
		item := path.Join(collection, ":"+nameParam)

		e.GET(collection, handlers.ListObjectsHandler(dbproject, dbobject, projectParam))
		e.GET(item, handlers.GetObjectHandler(dbproject, dbobject, params))
		e.PUT(item, handlers.CreateObjectHandler(dbproject, dbobject, decode, params))
		e.PATCH(item, handlers.UpdateObjectHandler(dbproject, dbobject, decode, params))
		e.DELETE(item, handlers.DeleteObjectHandler(dbproject, dbobject, params))
		e.POST(path.Join(item, "apply"), handlers.ApplyObjectHandler(dbproject, dbobject, decode, params))
	}
	return nil
}
