// Package featurestore is the client of the feast control plane.
//
// Client performs operations on entities, feature views and feature services
// of one project through the control-plane REST API, and mirrors the outcome
// into a local registry file.
//
// Client is not safe for concurrent use.
package featurestore

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/azure/feast-azure/pkg/auth/aad"
	"github.com/azure/feast-azure/pkg/feast/registry"
	"github.com/azure/feast-azure/pkg/feast/registry/stores"
	"github.com/azure/feast-azure/pkg/rest"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrNotInitialized is returned by operations which need the local registry
// before the project is found on the control plane.
var ErrNotInitialized = errors.New("feature store client is not initialized: create the project, then call Init")

// ValueError is returned when the client is misused.
type ValueError struct {
	Message string
}

func (e *ValueError) Error() string {
	return e.Message
}

type Option struct {
	refresh  bool
	cacheTTL time.Duration

	aad      bool
	tenantID string
	clientID string

	token      rest.TokenSource
	httpClient *http.Client
	caCerts    []string
	client     rest.FeastClient
	logger     *zerolog.Logger
}

// WithAADAuth enables bearer token authentication with Azure AD.
//
// Empty tenantID and clientID are read from AZURE_TENANT_ID and
// FEAST_CLIENT_ID environment variables.
func WithAADAuth(tenantID string, clientID string) func(*Option) *Option {
	return func(o *Option) *Option {
		o.aad = true
		o.tenantID = tenantID
		o.clientID = clientID
		return o
	}
}

// WithRefreshLocalCache sets whether Init loads all objects into the local
// registry. Default is true.
func WithRefreshLocalCache(refresh bool) func(*Option) *Option {
	return func(o *Option) *Option {
		o.refresh = refresh
		return o
	}
}

// WithCacheTTL sets how long reads with allowCache may use the local registry
// without reading the file again. Zero (default) means forever.
//
// It is written into Config().Registry as cache_ttl_seconds.
func WithCacheTTL(ttl time.Duration) func(*Option) *Option {
	return func(o *Option) *Option {
		o.cacheTTL = ttl
		return o
	}
}

// WithTokenSource sets the source of bearer tokens. It takes precedence over WithAADAuth.
func WithTokenSource(ts rest.TokenSource) func(*Option) *Option {
	return func(o *Option) *Option {
		o.token = ts
		return o
	}
}

func WithHTTPClient(hc *http.Client) func(*Option) *Option {
	return func(o *Option) *Option {
		o.httpClient = hc
		return o
	}
}

// WithCACert trusts CA certificates (base64 encoded PEM) on requests.
func WithCACert(cacerts ...string) func(*Option) *Option {
	return func(o *Option) *Option {
		o.caCerts = append(o.caCerts, cacerts...)
		return o
	}
}

// WithFeastClient replaces the REST client.
//
// When it is given, WithAADAuth, WithTokenSource, WithHTTPClient and WithCACert are ignored.
func WithFeastClient(c rest.FeastClient) func(*Option) *Option {
	return func(o *Option) *Option {
		o.client = c
		return o
	}
}

func WithLogger(logger zerolog.Logger) func(*Option) *Option {
	return func(o *Option) *Option {
		o.logger = &logger
		return o
	}
}

type Client struct {
	uri       string
	project   string
	cachePath string
	cacheTTL  time.Duration
	refresh   bool

	client rest.FeastClient
	logger zerolog.Logger

	config *RepoConfig
	local  *registry.Registry
}

// New creates a Client for the project, and initializes it with Init.
//
// # Args
//
// - ctx
//
// - name: name of the service, or its URL. See rest.ResolveServiceURI.
//
// - project: the project to be operated.
//
// - localCachePath: file path of the local registry.
//
// - options
//
// # Returns
//
// - *Client: When the project does not exist yet, it is not initialized.
//
// - error: errors from Init, except "project not found".
func New(ctx context.Context, name string, project string, localCachePath string, options ...func(*Option) *Option) (*Client, error) {
	opt := &Option{refresh: true}
	for _, o := range options {
		opt = o(opt)
	}

	logger := log.Logger
	if opt.logger != nil {
		logger = *opt.logger
	}

	uri := rest.ResolveServiceURI(name)
	client := opt.client
	if client == nil {
		restOptions := []rest.Option{}
		if opt.httpClient != nil {
			restOptions = append(restOptions, rest.WithHTTPClient(opt.httpClient))
		}
		if len(opt.caCerts) != 0 {
			restOptions = append(restOptions, rest.WithCACert(opt.caCerts...))
		}
		switch {
		case opt.token != nil:
			restOptions = append(restOptions, rest.WithTokenSource(opt.token))
		case opt.aad:
			restOptions = append(restOptions, rest.WithTokenSource(
				aad.NewTokenSource(opt.tenantID, opt.clientID, aad.WithLogger(logger)),
			))
		}

		c, err := rest.NewClient(uri, restOptions...)
		if err != nil {
			return nil, err
		}
		client = c
	}

	fs := &Client{
		uri:       uri,
		project:   project,
		cachePath: localCachePath,
		cacheTTL:  opt.cacheTTL,
		refresh:   opt.refresh,
		client:    client,
		logger:    logger,
	}
	if err := fs.Init(ctx); err != nil {
		return nil, err
	}
	return fs, nil
}

// Init reads the project from the control plane and opens the local registry.
//
// When the project is not found, it logs a warning and leaves the client
// uninitialized. Other errors are returned.
func (c *Client) Init(ctx context.Context) error {
	project, err := c.client.GetProject(ctx, c.project)
	if err != nil {
		if rest.IsNotFound(err) {
			c.logger.Warn().
				Str("project", c.project).
				Msgf(
					"The project %s does not exist. Call CreateProject to create the project and then call Init to reinitialize the client.",
					c.project,
				)
			return nil
		}
		return err
	}

	config := NewRepoConfig(project, c.cachePath)
	config.Registry.CacheTTLSeconds = int(c.cacheTTL / time.Second)
	local, err := stores.Open(ctx, config.Registry)
	if err != nil {
		return err
	}
	c.config = &config
	c.local = local

	if c.refresh {
		if err := c.loadObjects(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) loadObjects(ctx context.Context) error {
	if _, err := c.ListEntities(ctx, true); err != nil {
		return err
	}
	if _, err := c.ListFeatureViews(ctx, true); err != nil {
		return err
	}
	if _, err := c.ListFeatureServices(ctx, true); err != nil {
		return err
	}
	return nil
}

// Initialized tells whether the local registry is open.
func (c *Client) Initialized() bool {
	return c.local != nil
}

// URI is the base URI of the control plane.
func (c *Client) URI() string {
	return c.uri
}

func (c *Client) Project() string {
	return c.project
}

// RefreshLocalCache is the default of refreshLocalCache, given by WithRefreshLocalCache.
func (c *Client) RefreshLocalCache() bool {
	return c.refresh
}

// Config returns the configuration of the local feature store.
//
// It is nil until the client is initialized.
func (c *Client) Config() *RepoConfig {
	return c.config
}

// Registry returns the local registry.
//
// It is nil until the client is initialized.
func (c *Client) Registry() *registry.Registry {
	return c.local
}

// mirror runs update on the local registry when refresh is true.
func (c *Client) mirror(refresh bool, update func(*registry.Registry) error) error {
	if !refresh {
		return nil
	}
	if c.local == nil {
		return ErrNotInitialized
	}
	return update(c.local)
}

// ready fails early when the local registry is needed but not open.
func (c *Client) ready(refresh bool) error {
	if refresh && c.local == nil {
		return ErrNotInitialized
	}
	return nil
}
