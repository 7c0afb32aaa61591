package profiles_test

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	prof "github.com/azure/feast-azure/cmd/feastctl/config/profiles"
	"github.com/azure/feast-azure/pkg/utils/try"
)

const cacert = `-----BEGIN CERTIFICATE-----
MIIBhTCCASugAwIBAgIQIRi6zePL6mKjOipn+dNuaTAKBggqhkjOPQQDAjASMRAw
DgYDVQQKEwdBY21lIENvMB4XDTE3MTAyMDE5NDMwNloXDTE4MTAyMDE5NDMwNlow
EjEQMA4GA1UEChMHQWNtZSBDbzBZMBMGByqGSM49AgEGCCqGSM49AwEHA0IABD0d
7VNhbWvZLWPuj/RtHFjvtJBEwOkhbN/BnnE8rnZR8+sbwnc/KhCk3FhnpHZnQz7B
5aETbbIgmuvewdjvSBSjYzBhMA4GA1UdDwEB/wQEAwICpDATBgNVHSUEDDAKBggr
BgEFBQcDATAPBgNVHRMBAf8EBTADAQH/MCkGA1UdEQQiMCCCDmxvY2FsaG9zdDo1
NDUzgg4xMjcuMC4wLjE6NTQ1MzAKBggqhkjOPQQDAgNIADBFAiEA2zpJEPQyz6/l
Wf86aX6PepsntZv2GYlA5UpabfT2EZICICpJ5h/iI+i341gBmLiAFQOyTDT+/wQc
6MF9+Yw1Yy0t
-----END CERTIFICATE-----
`

func TestUnmarshall(t *testing.T) {
	conf, err := prof.Unmarshall([]byte(`
profname:
    service: feast-core
    project: driver_ranking
    cache: /tmp/registry.db
    aad:
        enabled: true
        tenantId: tenant
        clientId: client
    cert:
        ca: BASE64_ENCODED_CERT
`))
	if err != nil {
		t.Fatal(err)
	}
	p, ok := conf["profname"]
	if !ok {
		t.Fatal("config has no profile")
	}

	expected := prof.FeastProfile{
		Service: "feast-core",
		Project: "driver_ranking",
		Cache:   "/tmp/registry.db",
		AAD:     prof.AAD{Enabled: true, TenantId: "tenant", ClientId: "client"},
		Cert:    prof.FeastCert{CA: "BASE64_ENCODED_CERT"},
	}
	if *p != expected {
		t.Errorf("unmatch profile: (actual, expected) = (%+v, %+v)", *p, expected)
	}
}

func TestFeastProfile_Verify(t *testing.T) {
	valid := func() *prof.FeastProfile {
		return &prof.FeastProfile{
			Service: "https://feast.example.com",
			Project: "driver_ranking",
			Cache:   "registry.db",
			Cert:    prof.FeastCert{CA: base64.StdEncoding.EncodeToString([]byte(cacert))},
		}
	}

	for name, testcase := range map[string]struct {
		modify func(*prof.FeastProfile)
		then   error
	}{
		"all values are valid, it is valid": {
			modify: func(*prof.FeastProfile) {},
		},
		"service name without scheme is valid": {
			modify: func(p *prof.FeastProfile) { p.Service = "feast-core" },
		},
		"no CA is valid": {
			modify: func(p *prof.FeastProfile) { p.Cert.CA = "" },
		},
		"empty service is not valid": {
			modify: func(p *prof.FeastProfile) { p.Service = "" },
			then:   prof.ErrProfileInvalid,
		},
		"broken url is not valid": {
			modify: func(p *prof.FeastProfile) { p.Service = "://feast" },
			then:   prof.ErrProfileInvalid,
		},
		"empty project is not valid": {
			modify: func(p *prof.FeastProfile) { p.Project = "" },
			then:   prof.ErrProfileInvalid,
		},
		"empty cache is not valid": {
			modify: func(p *prof.FeastProfile) { p.Cache = "" },
			then:   prof.ErrProfileInvalid,
		},
		"negative cacheTTLSeconds is not valid": {
			modify: func(p *prof.FeastProfile) { p.CacheTTLSeconds = -1 },
			then:   prof.ErrProfileInvalid,
		},
		"CA which is not PEM is not valid": {
			modify: func(p *prof.FeastProfile) {
				p.Cert.CA = base64.StdEncoding.EncodeToString([]byte("not a pem"))
			},
			then: prof.ErrProfileInvalid,
		},
	} {
		t.Run(name, func(t *testing.T) {
			p := valid()
			testcase.modify(p)
			err := p.Verify()
			if testcase.then == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			} else if !errors.Is(err, testcase.then) {
				t.Errorf("unexpected error: (actual, expected) = (%v, %v)", err, testcase.then)
			}
		})
	}
}

func TestFeastProfile_Options(t *testing.T) {
	p := &prof.FeastProfile{Service: "feast-core", Project: "p", Cache: "c"}
	if actual := len(p.Options()); actual != 0 {
		t.Errorf("unmatch options: (actual, expected) = (%d, %d)", actual, 0)
	}

	p.AAD.Enabled = true
	p.Cert.CA = "CA"
	if actual := len(p.Options()); actual != 2 {
		t.Errorf("unmatch options: (actual, expected) = (%d, %d)", actual, 2)
	}

	p.CacheTTLSeconds = 60
	if actual := len(p.Options()); actual != 3 {
		t.Errorf("unmatch options: (actual, expected) = (%d, %d)", actual, 3)
	}
}

func TestProfileStore(t *testing.T) {
	t.Run("when the store file does not exist, it returns ErrProfileStoreNotFound", func(t *testing.T) {
		_, err := prof.LoadProfileStore(filepath.Join(t.TempDir(), "profile"))
		if !errors.Is(err, prof.ErrProfileStoreNotFound) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("saved store can be loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".feast", "profile")
		store := prof.ProfileStore{
			"a": {Service: "feast-a", Project: "pa", Cache: "a.db"},
			"b": {Service: "https://feast-b.example.com", Project: "pb", Cache: "b.db", AAD: prof.AAD{Enabled: true}},
		}
		if err := store.Save(path); err != nil {
			t.Fatal(err)
		}

		stat := try.To(os.Stat(path)).OrFatal(t)
		if perm := stat.Mode().Perm(); perm != os.FileMode(0600) {
			t.Errorf("unmatch permission: (actual, expected) = (%v, %v)", perm, os.FileMode(0600))
		}

		loaded := try.To(prof.LoadProfileStore(path)).OrFatal(t)
		if !loaded.Equal(store) {
			t.Errorf("unmatch store:\n===actual===\n%+v\n===expected===\n%+v", loaded, store)
		}
	})
}
