package objects

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/azure/feast-azure/cmd/feastctl/subcommands/common"
	"github.com/azure/feast-azure/cmd/feastctl/subcommands/internal/manifest"
	"github.com/azure/feast-azure/pkg/featurestore"
	"github.com/youta-t/flarc"
)

const (
	ARG_FILE = "FILE"
	ARG_NAME = "NAME"
)

// New builds the command group of the kind.
func New[T any](kind Kind[T]) (flarc.Command, error) {
	apply, err := flarc.NewCommand(
		fmt.Sprintf("Create or update %ss in YAML files.", kind.Noun),
		struct{}{},
		flarc.Args{
			{
				Name: ARG_FILE, Required: true, Repeatable: true,
				Help: fmt.Sprintf("YAML files of %ss. Each file can hold multiple documents.", kind.Noun),
			},
		},
		common.NewTask(ApplyTask(kind)),
	)
	if err != nil {
		return nil, err
	}
	create, err := flarc.NewCommand(
		fmt.Sprintf("Create %ss in YAML files. It fails when one exists.", kind.Noun),
		struct{}{},
		flarc.Args{
			{Name: ARG_FILE, Required: true, Repeatable: true, Help: fmt.Sprintf("YAML files of %ss.", kind.Noun)},
		},
		common.NewTask(CreateTask(kind)),
	)
	if err != nil {
		return nil, err
	}
	update, err := flarc.NewCommand(
		fmt.Sprintf("Update %ss in YAML files. It fails when one is missing.", kind.Noun),
		struct{}{},
		flarc.Args{
			{Name: ARG_FILE, Required: true, Repeatable: true, Help: fmt.Sprintf("YAML files of %ss.", kind.Noun)},
		},
		common.NewTask(UpdateTask(kind)),
	)
	if err != nil {
		return nil, err
	}
	show, err := flarc.NewCommand(
		fmt.Sprintf("Show a %s.", kind.Noun),
		struct{}{},
		flarc.Args{
			{Name: ARG_NAME, Required: true, Help: fmt.Sprintf("name of the %s.", kind.Noun)},
		},
		common.NewTask(ShowTask(kind)),
	)
	if err != nil {
		return nil, err
	}
	list, err := flarc.NewCommand(
		fmt.Sprintf("List %ss in the project.", kind.Noun),
		struct{}{},
		flarc.Args{},
		common.NewTask(ListTask(kind)),
	)
	if err != nil {
		return nil, err
	}
	rm, err := flarc.NewCommand(
		fmt.Sprintf("Delete a %s.", kind.Noun),
		struct{}{},
		flarc.Args{
			{Name: ARG_NAME, Required: true, Help: fmt.Sprintf("name of the %s.", kind.Noun)},
		},
		common.NewTask(DeleteTask(kind)),
	)
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		fmt.Sprintf("Manipulate %ss in the project of the profile.", kind.Noun),
		struct{}{},
		flarc.WithSubcommand("apply", apply),
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("update", update),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("rm", rm),
	)
}

// read objects of the kind from files. Documents of other kinds are usage errors.
//
// names of objects are returned in the same order.
func read[T any](kind Kind[T], files []string) ([]*T, []string, error) {
	entries, err := manifest.ReadFiles(kind.Kind, files...)
	if err != nil {
		return nil, nil, err
	}
	objs := make([]*T, 0, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		obj, ok := kind.Unwrap(e)
		if !ok {
			k, _ := manifest.KindOf(e)
			return nil, nil, fmt.Errorf("%w: %s %s is not %s", flarc.ErrUsage, k, e.Name(), kind.Noun)
		}
		objs = append(objs, obj)
		names = append(names, e.Name())
	}
	return objs, names, nil
}

func mutation[T any](
	kind Kind[T],
	verb string,
	do func(fs *featurestore.Client, ctx context.Context, obj *T, refresh bool) error,
) common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		fs *featurestore.Client,
		cl flarc.Commandline[struct{}],
		_ []any,
	) error {
		objs, names, err := read(kind, cl.Args()[ARG_FILE])
		if err != nil {
			return err
		}
		for i, obj := range objs {
			name := names[i]
			if err := do(fs, ctx, obj, fs.RefreshLocalCache()); err != nil {
				return fmt.Errorf("%s %s: %w", kind.Noun, name, err)
			}
			logger.Printf("[OK] %s %s is %s", kind.Noun, name, verb)
		}
		return nil
	}
}

func ApplyTask[T any](kind Kind[T]) common.Task[struct{}] {
	return mutation(kind, "applied", kind.Apply)
}

func CreateTask[T any](kind Kind[T]) common.Task[struct{}] {
	return mutation(kind, "created", kind.Create)
}

func UpdateTask[T any](kind Kind[T]) common.Task[struct{}] {
	return mutation(kind, "updated", kind.Update)
}

func ShowTask[T any](kind Kind[T]) common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		fs *featurestore.Client,
		cl flarc.Commandline[struct{}],
		_ []any,
	) error {
		name := cl.Args()[ARG_NAME][0]
		obj, err := kind.Get(fs, ctx, name, fs.RefreshLocalCache())
		if err != nil {
			return err
		}
		return dump(cl.Stdout(), obj)
	}
}

func ListTask[T any](kind Kind[T]) common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		fs *featurestore.Client,
		cl flarc.Commandline[struct{}],
		_ []any,
	) error {
		objs, err := kind.List(fs, ctx, fs.RefreshLocalCache())
		if err != nil {
			return err
		}
		if objs == nil {
			objs = []*T{}
		}
		return dump(cl.Stdout(), objs)
	}
}

func DeleteTask[T any](kind Kind[T]) common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		fs *featurestore.Client,
		cl flarc.Commandline[struct{}],
		_ []any,
	) error {
		name := cl.Args()[ARG_NAME][0]
		if err := kind.Delete(fs, ctx, name, fs.RefreshLocalCache()); err != nil {
			return err
		}
		logger.Printf("[OK] %s %s is deleted", kind.Noun, name)
		return nil
	}
}

func dump(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}
