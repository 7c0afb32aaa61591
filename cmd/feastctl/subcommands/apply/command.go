package apply

import (
	"context"
	"log"

	"github.com/azure/feast-azure/cmd/feastctl/subcommands/common"
	"github.com/azure/feast-azure/cmd/feastctl/subcommands/internal/manifest"
	"github.com/azure/feast-azure/pkg/featurestore"
	"github.com/youta-t/flarc"
)

const ARG_FILE = "FILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Apply entities, feature views and feature services in YAML files.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_FILE, Required: true, Repeatable: true,
				Help: "YAML files. Each document should have \"kind\".",
			},
		},
		common.NewTask(Task),
		flarc.WithDescription(`
Apply objects in YAML files to the project of the profile.

Each document has "kind" (entity, featureview or featureservice) and the object:

    kind: entity
    spec:
      name: driver
      joinKey: driver_id
      valueType: INT64
    ---
    kind: featureview
    spec:
      name: driver_stats
      entities: [driver]
      ttl: 24h

The sentinel entity "__dummy" is applied first, then objects in the order of
files and documents. It stops at the first error; objects applied before that
stay applied.
`),
	)
}

func Task(
	ctx context.Context,
	logger *log.Logger,
	fs *featurestore.Client,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	objects, err := manifest.ReadFiles("", cl.Args()[ARG_FILE]...)
	if err != nil {
		return err
	}
	if err := fs.ApplyAll(ctx, objects, fs.RefreshLocalCache()); err != nil {
		return err
	}
	logger.Printf("[OK] %d objects are applied to project %s", len(objects), fs.Project())
	return nil
}
