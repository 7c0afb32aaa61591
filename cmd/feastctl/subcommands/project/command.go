package project

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/azure/feast-azure/api-types/projects"
	"github.com/azure/feast-azure/cmd/feastctl/subcommands/common"
	"github.com/azure/feast-azure/pkg/featurestore"
	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"
)

const (
	ARG_PROJECT_FILE = "PROJECT_FILE"
	ARG_PROJECT      = "PROJECT"
)

func New() (flarc.Command, error) {
	create, err := flarc.NewCommand(
		"Create a project from a YAML file.",
		struct{}{},
		flarc.Args{
			{Name: ARG_PROJECT_FILE, Required: true, Help: "filepath to project configuration."},
		},
		common.NewTask(CreateTask),
		flarc.WithDescription(`
Create a project on the control plane.

The project file is a YAML document like:

    project: driver_ranking
    description: ranking drivers
    provider: azure
    offline_store:
      type: feast_azure_provider.mssqlserver.MsSqlServerOfflineStore
      connection_string: ...
    online_store:
      type: redis
      redis_type: redis
      connection_string: ...
    flags:
      alpha_features: true
    isDefault: false
`),
	)
	if err != nil {
		return nil, err
	}
	update, err := flarc.NewCommand(
		"Update a project from a YAML file.",
		struct{}{},
		flarc.Args{
			{Name: ARG_PROJECT_FILE, Required: true, Help: "filepath to project configuration."},
		},
		common.NewTask(UpdateTask),
	)
	if err != nil {
		return nil, err
	}
	show, err := flarc.NewCommand(
		"Show a project.",
		struct{}{},
		flarc.Args{
			{Name: ARG_PROJECT, Required: false, Help: "project name. default: the project of the profile."},
		},
		common.NewTask(ShowTask),
	)
	if err != nil {
		return nil, err
	}
	list, err := flarc.NewCommand(
		"List projects.",
		struct{}{},
		flarc.Args{},
		common.NewTask(ListTask),
	)
	if err != nil {
		return nil, err
	}
	rm, err := flarc.NewCommand(
		"Delete a project. It should not have any entities, feature views or feature services.",
		struct{}{},
		flarc.Args{
			{Name: ARG_PROJECT, Required: true, Help: "project name."},
		},
		common.NewTask(DeleteTask),
	)
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate feast projects.",
		struct{}{},
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("update", update),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("rm", rm),
	)
}

// ReadConfig reads a project configuration from the YAML file.
func ReadConfig(path string) (projects.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return projects.Config{}, err
	}
	config := projects.Config{}
	if err := yaml.Unmarshal(content, &config); err != nil {
		return projects.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if config.Project == "" {
		return projects.Config{}, fmt.Errorf("%w: %s: project is empty", flarc.ErrUsage, path)
	}
	return config, nil
}

func CreateTask(
	ctx context.Context,
	logger *log.Logger,
	fs *featurestore.Client,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	config, err := ReadConfig(cl.Args()[ARG_PROJECT_FILE][0])
	if err != nil {
		return err
	}
	if err := fs.CreateProject(ctx, config); err != nil {
		return err
	}
	logger.Printf("[OK] project %s is created", config.Project)

	// the project of the profile is now available.
	if config.Project == fs.Project() && !fs.Initialized() {
		return fs.Init(ctx)
	}
	return nil
}

func UpdateTask(
	ctx context.Context,
	logger *log.Logger,
	fs *featurestore.Client,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	config, err := ReadConfig(cl.Args()[ARG_PROJECT_FILE][0])
	if err != nil {
		return err
	}
	if err := fs.UpdateProject(ctx, config); err != nil {
		return err
	}
	logger.Printf("[OK] project %s is updated", config.Project)
	return nil
}

func ShowTask(
	ctx context.Context,
	logger *log.Logger,
	fs *featurestore.Client,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	name := fs.Project()
	if args := cl.Args()[ARG_PROJECT]; 0 < len(args) {
		name = args[0]
	}
	config, err := fs.GetProject(ctx, name)
	if err != nil {
		return err
	}
	return dump(cl.Stdout(), config)
}

func ListTask(
	ctx context.Context,
	logger *log.Logger,
	fs *featurestore.Client,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	configs, err := fs.ListProjects(ctx)
	if err != nil {
		return err
	}
	if configs == nil {
		configs = []projects.Config{}
	}
	return dump(cl.Stdout(), configs)
}

func DeleteTask(
	ctx context.Context,
	logger *log.Logger,
	fs *featurestore.Client,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	name := cl.Args()[ARG_PROJECT][0]
	if err := fs.DeleteProject(ctx, name); err != nil {
		return err
	}
	logger.Printf("[OK] project %s is deleted", name)
	return nil
}

func dump(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}
