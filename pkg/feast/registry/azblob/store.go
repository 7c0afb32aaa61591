package azblob

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	sdkazblob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/azure/feast-azure/pkg/feast/core"
	"github.com/azure/feast-azure/pkg/feast/registry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConfigError is returned when a Store cannot be built.
type ConfigError struct {
	URL string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cannot set up azure blob registry store for %s: %s", e.URL, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Store is a RegistryStore keeping the registry document in one azure block blob.
//
// Writes are conditional on the blob state observed last by this Store.
// When another writer replaced the blob since then, writes fail with
// registry.ErrRegistryConflict.
type Store struct {
	url  string
	blob blobAPI
	now  func() time.Time

	mu      sync.Mutex
	etag    *azcore.ETag
	missing bool
}

var _ registry.RegistryStore = &Store{}

type Option struct {
	credential azcore.TokenCredential
	logger     zerolog.Logger
	now        func() time.Time
	blob       blobAPI
}

// WithCredential uses cred instead of the default azure credential chain.
func WithCredential(cred azcore.TokenCredential) func(*Option) *Option {
	return func(o *Option) *Option {
		o.credential = cred
		return o
	}
}

func WithLogger(logger zerolog.Logger) func(*Option) *Option {
	return func(o *Option) *Option {
		o.logger = logger
		return o
	}
}

func WithClock(now func() time.Time) func(*Option) *Option {
	return func(o *Option) *Option {
		o.now = now
		return o
	}
}

func withBlob(b blobAPI) func(*Option) *Option {
	return func(o *Option) *Option {
		o.blob = b
		return o
	}
}

// New builds a Store for the blob at url
// ("https://<account>.blob.core.windows.net/<container>/<path/to/blob>").
//
// On failure, it logs a warning and returns *ConfigError.
func New(ctx context.Context, url string, options ...func(*Option) *Option) (*Store, error) {
	opt := &Option{logger: log.Logger, now: time.Now}
	for _, o := range options {
		opt = o(opt)
	}

	b, err := connect(url, opt)
	if err != nil {
		cerr := &ConfigError{URL: url, Err: err}
		opt.logger.Warn().Err(err).Str("url", url).Msg("azure blob registry store is not available")
		return nil, cerr
	}
	return &Store{url: url, blob: b, now: opt.now}, nil
}

func connect(url string, opt *Option) (blobAPI, error) {
	parts, err := sdkazblob.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if parts.Scheme != "https" && parts.Scheme != "http" {
		return nil, fmt.Errorf("unsupported scheme: %q", parts.Scheme)
	}
	if parts.ContainerName == "" {
		return nil, errors.New("container name is missing")
	}
	if parts.BlobName == "" {
		return nil, errors.New("blob path is missing")
	}
	if opt.blob != nil {
		return opt.blob, nil
	}

	cred := opt.credential
	if cred == nil {
		c, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, err
		}
		cred = c
	}
	client, err := blockblob.NewClient(url, cred, nil)
	if err != nil {
		return nil, err
	}
	return sdkBlob{client: client}, nil
}

func (s *Store) URL() string {
	return s.url
}

func (s *Store) GetRegistryProto(ctx context.Context) (*core.Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, etag, err := s.blob.download(ctx)
	if errors.Is(err, errBlobNotFound) {
		s.etag = nil
		s.missing = true
		return nil, fmt.Errorf(
			"%w: registry not found at %s. Have you run \"feast apply\"?",
			registry.ErrRegistryNotFound, s.url,
		)
	} else if err != nil {
		return nil, err
	}

	r := new(core.Registry)
	if err := r.Unmarshal(buf); err != nil {
		return nil, fmt.Errorf("registry at %s is broken: %w", s.url, err)
	}
	s.observe(etag)
	return r, nil
}

func (s *Store) observe(etag azcore.ETag) {
	s.missing = false
	if etag == "" {
		s.etag = nil
		return
	}
	s.etag = &etag
}

func (s *Store) UpdateRegistryProto(ctx context.Context, r *core.Registry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.VersionId = uuid.NewString()
	r.LastUpdated = s.now().UTC()
	buf, err := r.Marshal()
	if err != nil {
		return err
	}

	etag, err := s.blob.upload(ctx, buf, condition{ifMatch: s.etag, ifNotExists: s.missing})
	if errors.Is(err, errConditionNotMet) {
		return fmt.Errorf("%w: %s", registry.ErrRegistryConflict, s.url)
	} else if err != nil {
		return err
	}
	s.observe(etag)
	return nil
}

func (s *Store) Teardown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.blob.remove(ctx); err != nil && !errors.Is(err, errBlobNotFound) {
		return err
	}
	s.etag = nil
	s.missing = true
	return nil
}
