package common

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ProfileFile is the name of the file which tells the profile to use in its directory and below.
const ProfileFile = ".feastprofile"

type CommonFlags struct {
	Profile        string `flag:"profile" help:"feast profile name to use"`
	ProfileStore   string `flag:"profile-store" help:"path to feast profile store file"`
	NoCacheRefresh bool   `flag:"no-cache-refresh" help:"do not mirror objects into the local registry"`
}

type commonFlagDetection struct {
	home string
}

type CommonFlagDetectionOption func(*commonFlagDetection) *commonFlagDetection

func WithHome(home string) CommonFlagDetectionOption {
	return func(opt *commonFlagDetection) *commonFlagDetection {
		opt.home = home
		return opt
	}
}

// Flags detects default values of common flags.
//
// The profile is read from the nearest .feastprofile file in from or its ancestors.
// When there are no such file, the profile is named after from.
func Flags(from string, opt ...CommonFlagDetectionOption) (CommonFlags, error) {
	detparam := commonFlagDetection{}
	for _, o := range opt {
		detparam = *o(&detparam)
	}

	home := detparam.home
	if home == "" {
		_home, err := os.UserHomeDir()
		if err != nil {
			_home = ""
		}
		home = _home
	}

	if _from, err := filepath.Abs(from); err == nil {
		from = _from
	}

	profile := from
	for searchpath := from; ; {
		candidate := path.Join(searchpath, ProfileFile)
		if s, err := os.Stat(candidate); err == nil && s.Mode().IsRegular() {
			_profile, err := os.ReadFile(candidate)
			if err != nil {
				return CommonFlags{}, err
			}
			if p := strings.Split(string(_profile), "\n"); 0 < len(p) {
				profile = strings.TrimSpace(p[0])
			}
			break
		}

		next := path.Dir(searchpath)
		if next == searchpath {
			break
		}
		searchpath = next
	}

	return CommonFlags{
		Profile:      profile,
		ProfileStore: path.Join(home, ".feast", "profile"),
	}, nil
}
