package profiles

import (
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/azure/feast-azure/pkg/featurestore"
	"github.com/azure/feast-azure/pkg/utils/safefile"
	yaml "gopkg.in/yaml.v3"
)

var ErrProfileStoreNotFound = errors.New("profile store is not found")
var ErrProfileInvalid = errors.New("feast profile is invalid")

// ProfileStore is a map from profile name to FeastProfile.
type ProfileStore map[string]*FeastProfile

type FeastCert struct {
	// base64 encoded CA certificate
	CA string `yaml:"ca,omitempty"`
}

type AAD struct {
	Enabled bool `yaml:"enabled"`

	// TenantId and ClientId fall back to AZURE_TENANT_ID and FEAST_CLIENT_ID when empty.
	TenantId string `yaml:"tenantId,omitempty"`
	ClientId string `yaml:"clientId,omitempty"`
}

// FeastProfile tells which control plane and project feastctl works on.
type FeastProfile struct {
	// Service is the name of the app service, or the base URL of the control plane.
	Service string `yaml:"service"`

	Project string `yaml:"project"`

	// Cache is the file path of the local registry.
	Cache string `yaml:"cache"`

	// CacheTTLSeconds is how long the local registry is read without
	// reloading the file. Zero means forever.
	CacheTTLSeconds int `yaml:"cacheTTLSeconds,omitempty"`

	AAD AAD `yaml:"aad,omitempty"`

	Cert FeastCert `yaml:"cert,omitempty"`
}

func verifyUrl(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func verifyPEM(b64cert string) bool {
	bin, err := base64.StdEncoding.DecodeString(b64cert)
	if err != nil {
		return false
	}
	blk, _ := pem.Decode(bin)
	return blk != nil
}

// Verify FeastProfile
//
// # Return
//
// nil if it is valid. Otherwise, ErrProfileInvalid error.
func (p *FeastProfile) Verify() error {
	if p.Service == "" {
		return fmt.Errorf("%w: service is empty", ErrProfileInvalid)
	}
	if strings.Contains(p.Service, "://") && !verifyUrl(p.Service) {
		return fmt.Errorf("%w: service is not URL: %s", ErrProfileInvalid, p.Service)
	}
	if p.Project == "" {
		return fmt.Errorf("%w: project is empty", ErrProfileInvalid)
	}
	if p.Cache == "" {
		return fmt.Errorf("%w: cache is empty", ErrProfileInvalid)
	}
	if p.CacheTTLSeconds < 0 {
		return fmt.Errorf("%w: cacheTTLSeconds is negative", ErrProfileInvalid)
	}
	if p.Cert.CA != "" && !verifyPEM(p.Cert.CA) {
		return fmt.Errorf("%w: cert.ca is not PEM", ErrProfileInvalid)
	}
	return nil
}

// Options returns options of featurestore.New which the profile requires.
func (p *FeastProfile) Options() []func(*featurestore.Option) *featurestore.Option {
	opts := []func(*featurestore.Option) *featurestore.Option{}
	if p.AAD.Enabled {
		opts = append(opts, featurestore.WithAADAuth(p.AAD.TenantId, p.AAD.ClientId))
	}
	if p.Cert.CA != "" {
		opts = append(opts, featurestore.WithCACert(p.Cert.CA))
	}
	if 0 < p.CacheTTLSeconds {
		opts = append(opts, featurestore.WithCacheTTL(time.Duration(p.CacheTTLSeconds)*time.Second))
	}
	return opts
}

// Equal tells whether two stores hold the same profiles.
func (ps ProfileStore) Equal(other ProfileStore) bool {
	return maps.EqualFunc(ps, other, func(a, b *FeastProfile) bool {
		if a == nil || b == nil {
			return a == b
		}
		return *a == *b
	})
}

// LoadProfileStore loads profile store from file.
func LoadProfileStore(filepath string) (ProfileStore, error) {
	buf, err := os.ReadFile(filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrProfileStoreNotFound, filepath)
		}
		return nil, err
	}
	return Unmarshall(buf)
}

// Unmarshall profile store from yaml in byte array.
func Unmarshall(buf []byte) (ProfileStore, error) {
	ret := map[string]*FeastProfile{}
	if err := yaml.Unmarshal(buf, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Save profile store to file. The file is readable only by the current user.
func (ps ProfileStore) Save(path string) error {
	buf, err := yaml.Marshal(ps)
	if err != nil {
		return err
	}
	return safefile.Write(path, buf)
}
