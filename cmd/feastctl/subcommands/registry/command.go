package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/azure/feast-azure/cmd/feastctl/subcommands/common"
	fregistry "github.com/azure/feast-azure/pkg/feast/registry"
	"github.com/azure/feast-azure/pkg/feast/registry/stores"
	"github.com/azure/feast-azure/pkg/featurestore"
	"github.com/youta-t/flarc"
)

const ARG_DESTINATION = "DESTINATION"

type Flag struct {
	StoreType string `flag:"store-type" help:"registry store type of DESTINATION: local or azblob. default: azblob for https:// URL, otherwise local."`
}

// Opener opens the registry in a registry store.
type Opener func(ctx context.Context, cfg fregistry.RegistryConfig) (*fregistry.Registry, error)

func open(ctx context.Context, cfg fregistry.RegistryConfig) (*fregistry.Registry, error) {
	return stores.Open(ctx, cfg)
}

func New() (flarc.Command, error) {
	show, err := flarc.NewCommand(
		"Show the local registry of the project.",
		struct{}{},
		flarc.Args{},
		common.NewTask(ShowTask),
		flarc.WithDescription(`
Show the local registry of the project.

The local registry file is read again when the cacheTTLSeconds of the profile
has passed since it was read last.
`),
	)
	if err != nil {
		return nil, err
	}
	push, err := flarc.NewCommand(
		"Write the local registry into a registry store.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_DESTINATION, Required: true,
				Help: "file path or blob URL (https://{account}.blob.core.windows.net/{container}/{blob}) of the registry.",
			},
		},
		common.NewTask(PushTask(open)),
		flarc.WithDescription(`
Write the local registry into a registry store, so that feature servers can read it.

The destination is read before it is written. A blob store is written with
Azure default credentials, and it fails when the blob is updated by others
between the read and the write.
`),
	)
	if err != nil {
		return nil, err
	}
	teardown, err := flarc.NewCommand(
		"Remove a registry from a registry store.",
		Flag{},
		flarc.Args{
			{Name: ARG_DESTINATION, Required: true, Help: "file path or blob URL of the registry."},
		},
		common.NewTask(TeardownTask(open)),
	)
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate feast registries.",
		struct{}{},
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("push", push),
		flarc.WithSubcommand("teardown", teardown),
	)
}

func ShowTask(
	ctx context.Context,
	logger *log.Logger,
	fs *featurestore.Client,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	local := fs.Registry()
	if local == nil {
		return featurestore.ErrNotInitialized
	}
	snapshot, err := local.Snapshot(ctx, true)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cl.Stdout())
	enc.SetIndent("", "    ")
	return enc.Encode(snapshot)
}

func PushTask(open Opener) common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		fs *featurestore.Client,
		cl flarc.Commandline[Flag],
		_ []any,
	) error {
		local := fs.Registry()
		if local == nil {
			return featurestore.ErrNotInitialized
		}
		snapshot, err := local.Snapshot(ctx, false)
		if err != nil {
			return err
		}

		dest := cl.Args()[ARG_DESTINATION][0]
		remote, err := open(ctx, fregistry.RegistryConfig{
			RegistryStoreType: cl.Flags().StoreType, Path: dest,
		})
		if err != nil {
			return fmt.Errorf("%w: %s", flarc.ErrUsage, err)
		}
		if err := remote.Replace(ctx, snapshot); err != nil {
			return err
		}
		pushed, err := remote.Snapshot(ctx, true)
		if err != nil {
			return err
		}
		logger.Printf(
			"[OK] registry of project %s is pushed to %s (version: %s)",
			fs.Project(), dest, pushed.VersionId,
		)
		return nil
	}
}

func TeardownTask(open Opener) common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		fs *featurestore.Client,
		cl flarc.Commandline[Flag],
		_ []any,
	) error {
		dest := cl.Args()[ARG_DESTINATION][0]
		remote, err := open(ctx, fregistry.RegistryConfig{
			RegistryStoreType: cl.Flags().StoreType, Path: dest,
		})
		if err != nil {
			return fmt.Errorf("%w: %s", flarc.ErrUsage, err)
		}
		if err := remote.Teardown(ctx); err != nil {
			return err
		}
		logger.Printf("[OK] registry at %s is removed", dest)
		return nil
	}
}
