package handlers

import (
	"context"
	"errors"
	"net/http"

	apiobjects "github.com/azure/feast-azure/api-types/objects"
	binderr "github.com/azure/feast-azure/pkg/api-types-binding/errors"
	bindobjects "github.com/azure/feast-azure/pkg/api-types-binding/objects"
	kdb "github.com/azure/feast-azure/pkg/db"
	"github.com/azure/feast-azure/pkg/feast/core"
	"github.com/labstack/echo/v4"
)

// Object is a feast object decoded from a request.
type Object interface {
	Name() string
	Project() string
	Validate() error
}

// Decoder reads an object of a kind from its protobuf wire format.
type Decoder func(proto []byte) (Object, error)

func decoderOf[T any, P interface {
	*T
	Object
	Unmarshal([]byte) error
}]() Decoder {
	return func(proto []byte) (Object, error) {
		obj := P(new(T))
		if err := obj.Unmarshal(proto); err != nil {
			return nil, err
		}
		return obj, nil
	}
}

// DecoderFor returns the Decoder of the kind.
func DecoderFor(kind kdb.Kind) (Decoder, error) {
	switch kind {
	case kdb.KindEntity:
		return decoderOf[core.Entity](), nil
	case kdb.KindFeatureView:
		return decoderOf[core.FeatureView](), nil
	case kdb.KindFeatureService:
		return decoderOf[core.FeatureService](), nil
	}
	return nil, errors.New("unknown object kind: " + kind.String())
}

type ObjectParams struct {
	Project string
	Name    string
}

func requireProject(ctx context.Context, dbproject kdb.ProjectInterface, project string) error {
	if _, err := dbproject.Get(ctx, project); errors.Is(err, kdb.ErrMissing) {
		return binderr.ProjectNotFound(project, err)
	} else if err != nil {
		return binderr.InternalServerError(err)
	}
	return nil
}

// read the object in the request and check it against the URL.
func objectFromRequest(c echo.Context, decode Decoder, project string, name string) (kdb.Object, error) {
	payload := apiobjects.Payload{}
	if err := decodeBody(c, &payload); err != nil {
		return kdb.Object{}, err
	}
	if len(payload.Proto) == 0 {
		return kdb.Object{}, binderr.MissingParameter("proto")
	}

	obj, err := decode(payload.Proto)
	if err != nil {
		return kdb.Object{}, binderr.InvalidBody(err)
	}
	if err := obj.Validate(); err != nil {
		return kdb.Object{}, binderr.InvalidBody(err)
	}
	if obj.Name() != name {
		return kdb.Object{}, binderr.ValueDoesNotMatch("name")
	}
	// project inside the object is optional.
	if p := obj.Project(); p != "" && p != project {
		return kdb.Object{}, binderr.ValueDoesNotMatch("project")
	}

	return kdb.Object{Project: project, Name: name, Proto: payload.Proto}, nil
}

type mutation func(ctx context.Context, dbobject kdb.ObjectInterface, obj kdb.Object) (kdb.Object, error)

func mutationHandler(
	dbproject kdb.ProjectInterface, dbobject kdb.ObjectInterface, decode Decoder,
	params ObjectParams, mutate mutation,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		project, err := pathParam(c, params.Project)
		if err != nil {
			return err
		}
		name, err := pathParam(c, params.Name)
		if err != nil {
			return err
		}
		if err := requireProject(ctx, dbproject, project); err != nil {
			return err
		}

		obj, err := objectFromRequest(c, decode, project, name)
		if err != nil {
			return err
		}

		saved, err := mutate(ctx, dbobject, obj)
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, bindobjects.Compose(saved))
		case errors.Is(err, kdb.ErrConflict):
			return binderr.ObjectAlreadyExists(dbobject.Kind(), project, name, err)
		case errors.Is(err, kdb.ErrMissing):
			// the project may be removed after requireProject.
			if perr := requireProject(ctx, dbproject, project); perr != nil {
				return perr
			}
			return binderr.ObjectNotFound(dbobject.Kind(), project, name, err)
		default:
			return binderr.InternalServerError(err)
		}
	}
}

// ApplyObjectHandler creates or replaces the object.
func ApplyObjectHandler(dbproject kdb.ProjectInterface, dbobject kdb.ObjectInterface, decode Decoder, params ObjectParams) echo.HandlerFunc {
	return mutationHandler(
		dbproject, dbobject, decode, params,
		func(ctx context.Context, dbobject kdb.ObjectInterface, obj kdb.Object) (kdb.Object, error) {
			return dbobject.Upsert(ctx, obj)
		},
	)
}

func CreateObjectHandler(dbproject kdb.ProjectInterface, dbobject kdb.ObjectInterface, decode Decoder, params ObjectParams) echo.HandlerFunc {
	return mutationHandler(
		dbproject, dbobject, decode, params,
		func(ctx context.Context, dbobject kdb.ObjectInterface, obj kdb.Object) (kdb.Object, error) {
			return dbobject.Create(ctx, obj)
		},
	)
}

func UpdateObjectHandler(dbproject kdb.ProjectInterface, dbobject kdb.ObjectInterface, decode Decoder, params ObjectParams) echo.HandlerFunc {
	return mutationHandler(
		dbproject, dbobject, decode, params,
		func(ctx context.Context, dbobject kdb.ObjectInterface, obj kdb.Object) (kdb.Object, error) {
			return dbobject.Update(ctx, obj)
		},
	)
}

func GetObjectHandler(dbproject kdb.ProjectInterface, dbobject kdb.ObjectInterface, params ObjectParams) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		project, err := pathParam(c, params.Project)
		if err != nil {
			return err
		}
		name, err := pathParam(c, params.Name)
		if err != nil {
			return err
		}
		if err := requireProject(ctx, dbproject, project); err != nil {
			return err
		}

		obj, err := dbobject.Get(ctx, project, name)
		if errors.Is(err, kdb.ErrMissing) {
			return binderr.ObjectNotFound(dbobject.Kind(), project, name, err)
		} else if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, bindobjects.Compose(obj))
	}
}

func ListObjectsHandler(dbproject kdb.ProjectInterface, dbobject kdb.ObjectInterface, projectParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		project, err := pathParam(c, projectParam)
		if err != nil {
			return err
		}
		if err := requireProject(ctx, dbproject, project); err != nil {
			return err
		}

		objs, err := dbobject.List(ctx, project)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, bindobjects.ComposeAll(objs))
	}
}

func DeleteObjectHandler(dbproject kdb.ProjectInterface, dbobject kdb.ObjectInterface, params ObjectParams) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		project, err := pathParam(c, params.Project)
		if err != nil {
			return err
		}
		name, err := pathParam(c, params.Name)
		if err != nil {
			return err
		}
		if err := requireProject(ctx, dbproject, project); err != nil {
			return err
		}

		if err := dbobject.Delete(ctx, project, name); errors.Is(err, kdb.ErrMissing) {
			return binderr.ObjectNotFound(dbobject.Kind(), project, name, err)
		} else if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
