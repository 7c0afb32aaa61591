package handlers

import (
	"errors"
	"net/http"

	apiprojects "github.com/azure/feast-azure/api-types/projects"
	binderr "github.com/azure/feast-azure/pkg/api-types-binding/errors"
	bindprojects "github.com/azure/feast-azure/pkg/api-types-binding/projects"
	kdb "github.com/azure/feast-azure/pkg/db"
	"github.com/labstack/echo/v4"
)

// read the project document in the request, checking its name against the URL.
func projectFromRequest(c echo.Context, projectParam string) (kdb.Project, error) {
	project, err := pathParam(c, projectParam)
	if err != nil {
		return kdb.Project{}, err
	}

	req := apiprojects.Request{}
	if err := decodeBody(c, &req); err != nil {
		return kdb.Project{}, err
	}
	if req.ProjectName == "" {
		return kdb.Project{}, binderr.MissingParameter("projectName")
	}
	if req.ProjectName != project {
		return kdb.Project{}, binderr.ValueDoesNotMatch("projectName")
	}

	p, err := bindprojects.Parse(req)
	if err != nil {
		return kdb.Project{}, binderr.InvalidBody(err)
	}
	return p, nil
}

func respondProject(c echo.Context, p kdb.Project) error {
	resp, err := bindprojects.Compose(p)
	if err != nil {
		return binderr.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func CreateProjectHandler(dbproject kdb.ProjectInterface, projectParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := projectFromRequest(c, projectParam)
		if err != nil {
			return err
		}

		created, err := dbproject.Create(c.Request().Context(), p)
		if errors.Is(err, kdb.ErrConflict) {
			return binderr.ProjectAlreadyExists(p.Name, err)
		} else if err != nil {
			return binderr.InternalServerError(err)
		}
		return respondProject(c, created)
	}
}

func UpdateProjectHandler(dbproject kdb.ProjectInterface, projectParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := projectFromRequest(c, projectParam)
		if err != nil {
			return err
		}

		updated, err := dbproject.Update(c.Request().Context(), p)
		if errors.Is(err, kdb.ErrMissing) {
			return binderr.ProjectNotFound(p.Name, err)
		} else if err != nil {
			return binderr.InternalServerError(err)
		}
		return respondProject(c, updated)
	}
}

func GetProjectHandler(dbproject kdb.ProjectInterface, projectParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		project, err := pathParam(c, projectParam)
		if err != nil {
			return err
		}

		p, err := dbproject.Get(c.Request().Context(), project)
		if errors.Is(err, kdb.ErrMissing) {
			return binderr.ProjectNotFound(project, err)
		} else if err != nil {
			return binderr.InternalServerError(err)
		}
		return respondProject(c, p)
	}
}

func ListProjectsHandler(dbproject kdb.ProjectInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ps, err := dbproject.List(c.Request().Context())
		if err != nil {
			return binderr.InternalServerError(err)
		}

		resp := make([]apiprojects.Config, 0, len(ps))
		for _, p := range ps {
			conf, err := bindprojects.Compose(p)
			if err != nil {
				return binderr.InternalServerError(err)
			}
			resp = append(resp, conf)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func DeleteProjectHandler(dbproject kdb.ProjectInterface, projectParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		project, err := pathParam(c, projectParam)
		if err != nil {
			return err
		}

		switch err := dbproject.Delete(c.Request().Context(), project); {
		case err == nil:
			return c.NoContent(http.StatusNoContent)
		case errors.Is(err, kdb.ErrMissing):
			return binderr.ProjectNotFound(project, err)
		case errors.Is(err, kdb.ErrProjectNotEmpty):
			return binderr.ProjectNotEmpty(project, err)
		default:
			return binderr.InternalServerError(err)
		}
	}
}
