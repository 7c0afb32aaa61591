package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	apierr "github.com/azure/feast-azure/api-types/errors"
	apiprojects "github.com/azure/feast-azure/api-types/projects"
	"github.com/azure/feast-azure/cmd/feastd/handlers"
	httptestutil "github.com/azure/feast-azure/internal/testutils/http"
	kdb "github.com/azure/feast-azure/pkg/db"
	mockdb "github.com/azure/feast-azure/pkg/db/mocks"
	"github.com/labstack/echo/v4"
)

// status and ErrorMessage of the error returned by handlers.
func asErrorMessage(t *testing.T, err error) apierr.ErrorMessage {
	t.Helper()
	he := new(echo.HTTPError)
	if !errors.As(err, &he) {
		t.Fatalf("not HTTPError: %v", err)
	}
	msg, ok := he.Message.(apierr.ErrorMessage)
	if !ok {
		t.Fatalf("message is not ErrorMessage: %#v", he.Message)
	}
	if he.Code != msg.HttpStatusCode {
		t.Fatalf("unmatch status code: (HTTPError, ErrorMessage) = (%d, %d)", he.Code, msg.HttpStatusCode)
	}
	return msg
}

// jsonEq tells whether two JSON documents have the same value.
func jsonEq(t *testing.T, actual string, expected string) bool {
	t.Helper()
	var a, e any
	if err := json.Unmarshal([]byte(actual), &a); err != nil {
		t.Fatalf("actual is not JSON: %s", actual)
	}
	if err := json.Unmarshal([]byte(expected), &e); err != nil {
		t.Fatalf("expected is not JSON: %s", expected)
	}
	return reflect.DeepEqual(a, e)
}

var storedProject = kdb.Project{
	Name:         "driver_ranking",
	Description:  "ranking drivers",
	Provider:     "azure",
	OfflineStore: kdb.DataStore(`{"type":"feast_azure_provider.mssqlserver.MsSqlServerOfflineStore","connection_string":"Server=tcp:sql"}`),
	OnlineStore:  kdb.DataStore(`{"type":"redis","redis_type":"redis","connection_string":"redis:6379"}`),
	Flags:        []byte(`{"alpha_features":true}`),
	IsDefault:    true,

	CreatedTime:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	LastUpdatedTime: time.Date(2024, 1, 2, 4, 4, 5, 0, time.UTC),
}

const projectRequestBody = `{
	"projectName": "driver_ranking",
	"description": "ranking drivers",
	"provider": "azure",
	"offline_store": {"type": "feast_azure_provider.mssqlserver.MsSqlServerOfflineStore", "connection_string": "Server=tcp:sql"},
	"online_store": {"type": "redis", "redis_type": "redis", "connection_string": "redis:6379"},
	"flags": {"alpha_features": true},
	"isDefault": true
}`

func assertProjectResponse(t *testing.T, body []byte) {
	t.Helper()
	actual := apiprojects.Config{}
	if err := json.Unmarshal(body, &actual); err != nil {
		t.Fatalf("body is not project: %s", body)
	}

	if actual.Project != "driver_ranking" {
		t.Errorf("unmatch project: %s", actual.Project)
	}
	if actual.Description != "ranking drivers" {
		t.Errorf("unmatch description: %s", actual.Description)
	}
	if actual.Registry != apiprojects.RegistryName {
		t.Errorf("unmatch registry: (actual, expected) = (%s, %s)", actual.Registry, apiprojects.RegistryName)
	}
	if !actual.IsDefault {
		t.Error("project should be default")
	}
	if expected := (apiprojects.Flags{"alpha_features": true}); !reflect.DeepEqual(actual.Flags, expected) {
		t.Errorf("unmatch flags: (actual, expected) = (%v, %v)", actual.Flags, expected)
	}
	online := apiprojects.NewDataStoreConfig(
		apiprojects.RedisOnlineStore{RedisType: "redis", ConnectionString: "redis:6379"},
	)
	if !actual.OnlineStore.Equal(online) {
		t.Errorf("unmatch online store: (actual, expected) = (%+v, %+v)", actual.OnlineStore, online)
	}
	if !actual.CreatedTime.Time().Equal(storedProject.CreatedTime) {
		t.Errorf("unmatch created time: (actual, expected) = (%v, %v)", actual.CreatedTime.Time(), storedProject.CreatedTime)
	}
}

func TestCreateProjectHandler(t *testing.T) {
	params := []string{"project", "driver_ranking"}

	t.Run("it registers the project", func(t *testing.T) {
		dbproject := mockdb.NewProjectInterface()
		dbproject.Impl.Create = func(ctx context.Context, p kdb.Project) (kdb.Project, error) {
			return storedProject, nil
		}

		e := echo.New()
		c, resp := httptestutil.Request(
			e, http.MethodPut, "/api/projects/driver_ranking", strings.NewReader(projectRequestBody), params,
		)
		if err := handlers.CreateProjectHandler(dbproject, "project")(c); err != nil {
			t.Fatal(err)
		}

		if resp.Code != http.StatusOK {
			t.Errorf("unmatch status: %d", resp.Code)
		}
		assertProjectResponse(t, resp.Body.Bytes())

		if n := dbproject.Calls.Create.Times(); n != 1 {
			t.Fatalf("Create is called %d times", n)
		}
		got := dbproject.Calls.Create[0]
		if got.Name != "driver_ranking" || got.Provider != "azure" {
			t.Errorf("unmatch project: (name, provider) = (%s, %s)", got.Name, got.Provider)
		}
		if !jsonEq(t, string(got.OnlineStore), string(storedProject.OnlineStore)) {
			t.Errorf("unmatch online store: %s", got.OnlineStore)
		}
		if !jsonEq(t, string(got.Flags), string(storedProject.Flags)) {
			t.Errorf("unmatch flags: %s", got.Flags)
		}
	})

	t.Run("existing project causes 409", func(t *testing.T) {
		dbproject := mockdb.NewProjectInterface()
		dbproject.Impl.Create = func(ctx context.Context, p kdb.Project) (kdb.Project, error) {
			return kdb.Project{}, kdb.ErrConflict
		}

		c, _ := httptestutil.Request(
			echo.New(), http.MethodPut, "/api/projects/driver_ranking", strings.NewReader(projectRequestBody), params,
		)
		msg := asErrorMessage(t, handlers.CreateProjectHandler(dbproject, "project")(c))
		if msg.HttpStatusCode != http.StatusConflict || msg.ErrorCode != apierr.CodeObjectAlreadyExists {
			t.Errorf("unmatch error: (status, code) = (%d, %d)", msg.HttpStatusCode, msg.ErrorCode)
		}
		if expected := "The project with name driver_ranking already exists."; msg.ErrorMessage != expected {
			t.Errorf("unmatch message: (actual, expected) = (%s, %s)", msg.ErrorMessage, expected)
		}
	})

	for name, testcase := range map[string]struct {
		body string
		code int
	}{
		"name mismatch":      {body: `{"projectName": "other", "description": ""}`, code: apierr.CodeValueDoesNotMatch},
		"name missing":       {body: `{"description": ""}`, code: apierr.CodeMissingParameter},
		"broken json":        {body: `{"projectName": `, code: apierr.CodeUnknown},
		"unknown store type": {body: `{"projectName": "driver_ranking", "online_store": {"type": "dynamodb"}}`, code: apierr.CodeUnknown},
	} {
		t.Run(name+" causes 400", func(t *testing.T) {
			dbproject := mockdb.NewProjectInterface()
			c, _ := httptestutil.Request(
				echo.New(), http.MethodPut, "/api/projects/driver_ranking", strings.NewReader(testcase.body), params,
			)
			msg := asErrorMessage(t, handlers.CreateProjectHandler(dbproject, "project")(c))
			if msg.HttpStatusCode != http.StatusBadRequest {
				t.Errorf("unmatch status: %d", msg.HttpStatusCode)
			}
			if msg.ErrorCode != testcase.code {
				t.Errorf("unmatch code: (actual, expected) = (%d, %d)", msg.ErrorCode, testcase.code)
			}
			if n := dbproject.Calls.Create.Times(); n != 0 {
				t.Errorf("Create is called %d times", n)
			}
		})
	}
}

func TestUpdateProjectHandler(t *testing.T) {
	params := []string{"project", "driver_ranking"}

	t.Run("it updates the project", func(t *testing.T) {
		dbproject := mockdb.NewProjectInterface()
		dbproject.Impl.Update = func(ctx context.Context, p kdb.Project) (kdb.Project, error) {
			return storedProject, nil
		}

		c, resp := httptestutil.Request(
			echo.New(), http.MethodPatch, "/api/projects/driver_ranking", strings.NewReader(projectRequestBody), params,
		)
		if err := handlers.UpdateProjectHandler(dbproject, "project")(c); err != nil {
			t.Fatal(err)
		}
		if resp.Code != http.StatusOK {
			t.Errorf("unmatch status: %d", resp.Code)
		}
		assertProjectResponse(t, resp.Body.Bytes())
		if n := dbproject.Calls.Update.Times(); n != 1 {
			t.Errorf("Update is called %d times", n)
		}
	})

	t.Run("missing project causes 404", func(t *testing.T) {
		dbproject := mockdb.NewProjectInterface()
		dbproject.Impl.Update = func(ctx context.Context, p kdb.Project) (kdb.Project, error) {
			return kdb.Project{}, kdb.ErrMissing
		}

		c, _ := httptestutil.Request(
			echo.New(), http.MethodPatch, "/api/projects/driver_ranking", strings.NewReader(projectRequestBody), params,
		)
		msg := asErrorMessage(t, handlers.UpdateProjectHandler(dbproject, "project")(c))
		if msg.HttpStatusCode != http.StatusNotFound || msg.ErrorCode != apierr.CodeObjectNotFound {
			t.Errorf("unmatch error: (status, code) = (%d, %d)", msg.HttpStatusCode, msg.ErrorCode)
		}
	})
}

func TestGetAndListProjectHandler(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		dbproject := mockdb.NewProjectInterface()
		dbproject.Impl.Get = func(ctx context.Context, name string) (kdb.Project, error) {
			return storedProject, nil
		}

		c, resp := httptestutil.Get(echo.New(), "/api/projects/driver_ranking", []string{"project", "driver_ranking"})
		if err := handlers.GetProjectHandler(dbproject, "project")(c); err != nil {
			t.Fatal(err)
		}
		assertProjectResponse(t, resp.Body.Bytes())
		if actual := dbproject.Calls.Get; !slices.Equal(actual, mockdb.CallLog[string]{"driver_ranking"}) {
			t.Errorf("unmatch Get calls: %v", actual)
		}
	})

	t.Run("get missing one", func(t *testing.T) {
		dbproject := mockdb.NewProjectInterface()
		dbproject.Impl.Get = func(ctx context.Context, name string) (kdb.Project, error) {
			return kdb.Project{}, kdb.ErrMissing
		}

		c, _ := httptestutil.Get(echo.New(), "/api/projects/nothing", []string{"project", "nothing"})
		msg := asErrorMessage(t, handlers.GetProjectHandler(dbproject, "project")(c))
		if msg.HttpStatusCode != http.StatusNotFound {
			t.Errorf("unmatch status: %d", msg.HttpStatusCode)
		}
		expected := "The project with name nothing does not exist or you don't have permission to access it."
		if msg.ErrorMessage != expected {
			t.Errorf("unmatch message: (actual, expected) = (%s, %s)", msg.ErrorMessage, expected)
		}
	})

	t.Run("list", func(t *testing.T) {
		dbproject := mockdb.NewProjectInterface()
		dbproject.Impl.List = func(ctx context.Context) ([]kdb.Project, error) {
			return []kdb.Project{storedProject, {Name: "bare"}}, nil
		}

		c, resp := httptestutil.Get(echo.New(), "/api/projects", nil)
		if err := handlers.ListProjectsHandler(dbproject)(c); err != nil {
			t.Fatal(err)
		}

		actual := []apiprojects.Config{}
		if err := json.Unmarshal(resp.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if len(actual) != 2 {
			t.Fatalf("unmatch projects: %+v", actual)
		}
		if actual[0].Project != "driver_ranking" || actual[1].Project != "bare" {
			t.Errorf("unmatch projects: (%s, %s)", actual[0].Project, actual[1].Project)
		}
		if actual[1].OnlineStore != nil {
			t.Errorf("bare project has online store: %+v", actual[1].OnlineStore)
		}
		if actual[1].Flags != nil {
			t.Errorf("bare project has flags: %v", actual[1].Flags)
		}
	})

	t.Run("database error causes 500", func(t *testing.T) {
		dbproject := mockdb.NewProjectInterface()
		dbproject.Impl.List = func(ctx context.Context) ([]kdb.Project, error) {
			return nil, errors.New("connection refused")
		}

		c, _ := httptestutil.Get(echo.New(), "/api/projects", nil)
		msg := asErrorMessage(t, handlers.ListProjectsHandler(dbproject)(c))
		if msg.HttpStatusCode != http.StatusInternalServerError || msg.ErrorCode != apierr.CodeInternal {
			t.Errorf("unmatch error: (status, code) = (%d, %d)", msg.HttpStatusCode, msg.ErrorCode)
		}
		if strings.Contains(msg.ErrorMessage, "connection refused") {
			t.Errorf("internal error is leaked: %s", msg.ErrorMessage)
		}
	})
}

func TestDeleteProjectHandler(t *testing.T) {
	params := []string{"project", "driver_ranking"}

	t.Run("it deletes the project", func(t *testing.T) {
		dbproject := mockdb.NewProjectInterface()
		dbproject.Impl.Delete = func(ctx context.Context, name string) error { return nil }

		c, resp := httptestutil.Delete(echo.New(), "/api/projects/driver_ranking", params)
		if err := handlers.DeleteProjectHandler(dbproject, "project")(c); err != nil {
			t.Fatal(err)
		}
		if resp.Code != http.StatusNoContent {
			t.Errorf("unmatch status: %d", resp.Code)
		}
		if actual := dbproject.Calls.Delete; !slices.Equal(actual, mockdb.CallLog[string]{"driver_ranking"}) {
			t.Errorf("unmatch Delete calls: %v", actual)
		}
	})

	for name, testcase := range map[string]struct {
		err    error
		status int
		code   int
	}{
		"missing":   {err: kdb.ErrMissing, status: http.StatusNotFound, code: apierr.CodeObjectNotFound},
		"not empty": {err: kdb.ErrProjectNotEmpty, status: http.StatusConflict, code: apierr.CodeProjectNotEmpty},
		"broken":    {err: errors.New("fail"), status: http.StatusInternalServerError, code: apierr.CodeInternal},
	} {
		t.Run(name, func(t *testing.T) {
			dbproject := mockdb.NewProjectInterface()
			dbproject.Impl.Delete = func(ctx context.Context, name string) error { return testcase.err }

			c, _ := httptestutil.Delete(echo.New(), "/api/projects/driver_ranking", params)
			msg := asErrorMessage(t, handlers.DeleteProjectHandler(dbproject, "project")(c))
			if msg.HttpStatusCode != testcase.status || msg.ErrorCode != testcase.code {
				t.Errorf(
					"unmatch error: (status, code) = (%d, %d), expected (%d, %d)",
					msg.HttpStatusCode, msg.ErrorCode, testcase.status, testcase.code,
				)
			}
		})
	}
}
