package project_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/azure/feast-azure/api-types/projects"
	"github.com/azure/feast-azure/cmd/feastctl/subcommands/internal/commandline"
	"github.com/azure/feast-azure/cmd/feastctl/subcommands/internal/testfs"
	"github.com/azure/feast-azure/cmd/feastctl/subcommands/logger"
	"github.com/azure/feast-azure/cmd/feastctl/subcommands/project"
	"github.com/azure/feast-azure/pkg/rest/mock"
	"github.com/youta-t/flarc"
)

func cl(args map[string][]string, stdout io.Writer) commandline.MockCommandline[struct{}] {
	return commandline.MockCommandline[struct{}]{
		Fullname_: "feastctl project",
		Stdout_:   stdout,
		Stderr_:   io.Discard,
		Args_:     args,
	}
}

func writeProjectFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

const projectYaml = `
project: fraud
description: detecting fraud
provider: azure
online_store:
  type: redis
  redis_type: redis
  connection_string: redis:6379
flags:
  alpha_features: true
`

func TestCreate(t *testing.T) {
	t.Run("it creates the project in the file", func(t *testing.T) {
		client := mock.New(t)
		fs := testfs.New(t, client)
		client.Impl.CreateProject = func(ctx context.Context, req projects.Request) error {
			return nil
		}

		path := writeProjectFile(t, projectYaml)
		err := project.CreateTask(
			context.Background(), logger.Null(), fs,
			cl(map[string][]string{project.ARG_PROJECT_FILE: {path}}, io.Discard), nil,
		)
		if err != nil {
			t.Fatal(err)
		}

		if n := len(client.Calls.CreateProject); n != 1 {
			t.Fatalf("CreateProject is called %d times", n)
		}
		req := client.Calls.CreateProject[0]
		if req.ProjectName != "fraud" {
			t.Errorf("unmatch project: %s", req.ProjectName)
		}
		if req.Description != "detecting fraud" {
			t.Errorf("unmatch description: %s", req.Description)
		}
		if req.Provider != "azure" {
			t.Errorf("unmatch provider: %s", req.Provider)
		}
		if req.OfflineStore != nil {
			t.Errorf("offline store should be empty: %+v", req.OfflineStore)
		}
		if req.OnlineStore == nil {
			t.Error("online store is missing")
		}
		if expected := (projects.Flags{"alpha_features": true}); !reflect.DeepEqual(req.Flags, expected) {
			t.Errorf("unmatch flags: (actual, expected) = (%v, %v)", req.Flags, expected)
		}
	})

	t.Run("it returns the error from the control plane", func(t *testing.T) {
		client := mock.New(t)
		fs := testfs.New(t, client)
		expected := errors.New("fake error")
		client.Impl.CreateProject = func(ctx context.Context, req projects.Request) error {
			return expected
		}

		path := writeProjectFile(t, projectYaml)
		err := project.CreateTask(
			context.Background(), logger.Null(), fs,
			cl(map[string][]string{project.ARG_PROJECT_FILE: {path}}, io.Discard), nil,
		)
		if !errors.Is(err, expected) {
			t.Errorf("unexpected error: (actual, expected) = (%v, %v)", err, expected)
		}
	})

	t.Run("project file without project name is a usage error", func(t *testing.T) {
		client := mock.New(t)
		fs := testfs.New(t, client)

		path := writeProjectFile(t, "description: nameless\n")
		err := project.CreateTask(
			context.Background(), logger.Null(), fs,
			cl(map[string][]string{project.ARG_PROJECT_FILE: {path}}, io.Discard), nil,
		)
		if !errors.Is(err, flarc.ErrUsage) {
			t.Errorf("unexpected error: %v", err)
		}
		if n := len(client.Calls.CreateProject); n != 0 {
			t.Errorf("CreateProject is called %d times", n)
		}
	})
}

func TestUpdate(t *testing.T) {
	client := mock.New(t)
	fs := testfs.New(t, client)
	client.Impl.UpdateProject = func(ctx context.Context, req projects.Request) error {
		return nil
	}

	path := writeProjectFile(t, projectYaml)
	err := project.UpdateTask(
		context.Background(), logger.Null(), fs,
		cl(map[string][]string{project.ARG_PROJECT_FILE: {path}}, io.Discard), nil,
	)
	if err != nil {
		t.Fatal(err)
	}
	if calls := client.Calls.UpdateProject; len(calls) != 1 || calls[0].ProjectName != "fraud" {
		t.Errorf("unexpected UpdateProject calls: %+v", calls)
	}
}

func TestShow(t *testing.T) {
	for name, testcase := range map[string]struct {
		args []string
		then string
	}{
		"without argument, it shows the project of the profile": {
			args: nil, then: testfs.Project,
		},
		"with argument, it shows the project": {
			args: []string{"fraud"}, then: "fraud",
		},
	} {
		t.Run(name, func(t *testing.T) {
			client := mock.New(t)
			fs := testfs.New(t, client)
			client.Impl.GetProject = func(ctx context.Context, name string) (projects.Config, error) {
				return projects.Config{Project: name, Description: "desc"}, nil
			}

			stdout := new(bytes.Buffer)
			err := project.ShowTask(
				context.Background(), logger.Null(), fs,
				cl(map[string][]string{project.ARG_PROJECT: testcase.args}, stdout), nil,
			)
			if err != nil {
				t.Fatal(err)
			}
			if actual := client.Calls.GetProject; !slices.Equal(actual, []string{testcase.then}) {
				t.Errorf("unmatch GetProject calls: (actual, expected) = (%v, %v)", actual, []string{testcase.then})
			}

			got := projects.Config{}
			if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			if got.Project != testcase.then || got.Description != "desc" {
				t.Errorf("unexpected output: %+v", got)
			}
		})
	}
}

func TestList(t *testing.T) {
	t.Run("it prints projects", func(t *testing.T) {
		client := mock.New(t)
		fs := testfs.New(t, client)
		client.Impl.ListProjects = func(ctx context.Context) ([]projects.Config, error) {
			return []projects.Config{{Project: "a"}, {Project: "b"}}, nil
		}

		stdout := new(bytes.Buffer)
		if err := project.ListTask(context.Background(), logger.Null(), fs, cl(nil, stdout), nil); err != nil {
			t.Fatal(err)
		}

		got := []projects.Config{}
		if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].Project != "a" || got[1].Project != "b" {
			t.Errorf("unexpected output: %+v", got)
		}
	})

	t.Run("no projects are printed as empty list", func(t *testing.T) {
		client := mock.New(t)
		fs := testfs.New(t, client)
		client.Impl.ListProjects = func(ctx context.Context) ([]projects.Config, error) {
			return nil, nil
		}

		stdout := new(bytes.Buffer)
		if err := project.ListTask(context.Background(), logger.Null(), fs, cl(nil, stdout), nil); err != nil {
			t.Fatal(err)
		}
		if actual := stdout.String(); actual != "[]\n" {
			t.Errorf("unmatch stdout: %q", actual)
		}
	})
}

func TestDelete(t *testing.T) {
	client := mock.New(t)
	fs := testfs.New(t, client)
	client.Impl.DeleteProject = func(ctx context.Context, name string) error {
		return nil
	}

	err := project.DeleteTask(
		context.Background(), logger.Null(), fs,
		cl(map[string][]string{project.ARG_PROJECT: {"fraud"}}, io.Discard), nil,
	)
	if err != nil {
		t.Fatal(err)
	}
	if actual := client.Calls.DeleteProject; !slices.Equal(actual, []string{"fraud"}) {
		t.Errorf("unmatch DeleteProject calls: %v", actual)
	}
}
