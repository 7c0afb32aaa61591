package common

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/azure/feast-azure/cmd/feastctl/config/profiles"
	cuierr "github.com/azure/feast-azure/cmd/feastctl/errors"
	"github.com/azure/feast-azure/pkg/featurestore"
	"github.com/rs/zerolog"
	"github.com/youta-t/flarc"
)

type TaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task TaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix(fmt.Sprintf("[%s] ", cl.Fullname()))

		return task(ctx, logger, commonFlag, cl, newpos)
	}
}

// Task is a task on the project of the profile.
//
// fs is initialized when the project exists on the control plane.
type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	fs *featurestore.Client,
	cl flarc.Commandline[T],
	params []any,
) error

// Connect creates a featurestore client for the profile.
//
// Warnings of the client go to stderr.
func Connect(ctx context.Context, stderr zerolog.Logger, profile *profiles.FeastProfile, refresh bool) (*featurestore.Client, error) {
	opts := append(
		profile.Options(),
		featurestore.WithRefreshLocalCache(refresh),
		featurestore.WithLogger(stderr),
	)
	return featurestore.New(ctx, profile.Service, profile.Project, profile.Cache, opts...)
}

// LoadProfile reads the profile named in the common flags.
func LoadProfile(commonFlag CommonFlags) (*profiles.FeastProfile, error) {
	store, err := profiles.LoadProfileStore(commonFlag.ProfileStore)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileStoreNotFound) {
			return nil, cuierr.NewCuiError(
				fmt.Sprintf(
					"feast profile store (%s) is not found. Please try `feastctl init` first. Ask your admin to get feast profile",
					commonFlag.ProfileStore,
				),
				cuierr.WithCause(err),
			)
		}
		return nil, fmt.Errorf("%w: failed to load feast profile store (%s)", err, commonFlag.ProfileStore)
	}
	prof, ok := store[commonFlag.Profile]
	if !ok {
		return nil, cuierr.NewCuiError(fmt.Sprintf(
			"profile '%s' not found in the profile store (%s)",
			commonFlag.Profile, commonFlag.ProfileStore,
		))
	}
	return prof, nil
}

func NewTask[T any](task Task[T]) flarc.Task[T] {
	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		prof, err := LoadProfile(commonFlag)
		if err != nil {
			return err
		}

		stderr := zerolog.New(zerolog.ConsoleWriter{Out: cl.Stderr(), NoColor: true}).
			With().Timestamp().Logger()
		fs, err := Connect(ctx, stderr, prof, !commonFlag.NoCacheRefresh)
		if err != nil {
			return cuierr.NewCuiError(
				fmt.Sprintf(
					"failed to connect to %s. Your feast profile (%s in %s) can be broken, or the control plane is not available",
					prof.Service, commonFlag.Profile, commonFlag.ProfileStore,
				),
				cuierr.WithCause(cuierr.FromResponse(err)),
			)
		}
		return cuierr.FromResponse(task(ctx, logger, fs, cl, params))
	})
}
