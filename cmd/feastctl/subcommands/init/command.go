package init

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	prof "github.com/azure/feast-azure/cmd/feastctl/config/profiles"
	"github.com/azure/feast-azure/cmd/feastctl/subcommands/common"
	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"
)

const ARG_PROFILE_FILE = "PROFILE_FILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Register a feast profile, and use it in this directory.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_PROFILE_FILE, Required: true,
				Help: "filepath to feast profile file, which you received from your admin.",
			},
		},
		common.NewTaskWithCommonFlag(Task(".")),
		flarc.WithDescription(`
Register a new feast profile into your profile store.

"feast profile" is a YAML file which tells the control plane, the project
and the path of the local registry cache:

    service: feast-core   # app service name, or https://... URL
    project: driver_ranking
    cache: ./data/registry.db
    aad:
      enabled: true
      tenantId: ...       # default: $AZURE_TENANT_ID
      clientId: ...       # default: $FEAST_CLIENT_ID
    cert:
      ca: ...             # base64 encoded PEM

The name of the profile is given by "--profile" (default: current filepath).
`),
	)
}

// Task registers the profile, and writes its name into dir/.feastprofile.
func Task(dir string) common.TaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		cf common.CommonFlags,
		cl flarc.Commandline[struct{}],
		_ []any,
	) error {
		profFile := cl.Args()[ARG_PROFILE_FILE][0]

		profStore, err := prof.LoadProfileStore(cf.ProfileStore)
		if errors.Is(err, prof.ErrProfileStoreNotFound) {
			profStore = prof.ProfileStore{}
		} else if err != nil {
			return fmt.Errorf("failed to load profile store (%s): %w", cf.ProfileStore, err)
		}

		newProf := new(prof.FeastProfile)
		{
			content, err := os.ReadFile(profFile)
			if err != nil {
				return fmt.Errorf("failed to read profile file (%s): %w", profFile, err)
			}
			if err := yaml.Unmarshal(content, newProf); err != nil {
				return fmt.Errorf("failed to parse profile file (%s): %w", profFile, err)
			}
		}
		if err := newProf.Verify(); err != nil {
			return fmt.Errorf("%s: %w", profFile, err)
		}

		profName := cf.Profile
		profStore[profName] = newProf
		if err := profStore.Save(cf.ProfileStore); err != nil {
			return fmt.Errorf("failed to save profile store (%s): %w", cf.ProfileStore, err)
		}
		logger.Printf("profile %s is saved to %s", profName, cf.ProfileStore)

		marker := filepath.Join(dir, common.ProfileFile)
		if err := os.WriteFile(marker, []byte(profName), os.FileMode(0600)); err != nil {
			return fmt.Errorf("failed to write %s: %w", marker, err)
		}
		return nil
	}
}
