package common_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/azure/feast-azure/cmd/feastctl/subcommands/common"
	"github.com/azure/feast-azure/pkg/utils/try"
)

func TestFlags(t *testing.T) {
	root := t.TempDir()
	home := filepath.Join(root, "home")
	current := filepath.Join(root, "current")
	folder := filepath.Join(current, "children", "folder")
	if err := os.MkdirAll(folder, os.FileMode(0700)); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(current, common.ProfileFile), []byte("test\nignored"), os.FileMode(0600)); err != nil {
		t.Fatal(err)
	}

	for name, from := range map[string]string{
		"it returns default value from given directory":              current,
		"it returns default value from ancestors of given directory": folder,
	} {
		t.Run(name, func(t *testing.T) {
			cf := try.To(common.Flags(from, common.WithHome(home))).OrFatal(t)

			if cf.ProfileStore != filepath.Join(home, ".feast", "profile") {
				t.Errorf("wrong profile store: %s", cf.ProfileStore)
			}
			if cf.Profile != "test" {
				t.Errorf("wrong profile: %s", cf.Profile)
			}
			if cf.NoCacheRefresh {
				t.Error("cache refresh is disabled by default")
			}
		})
	}

	t.Run("without profile file, the profile is named after the directory", func(t *testing.T) {
		other := filepath.Join(root, "other")
		if err := os.MkdirAll(other, os.FileMode(0700)); err != nil {
			t.Fatal(err)
		}
		cf := try.To(common.Flags(other, common.WithHome(home))).OrFatal(t)
		if cf.Profile != other {
			t.Errorf("wrong profile: %s", cf.Profile)
		}
	})
}
