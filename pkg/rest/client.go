// Package rest is the HTTP client of the feast control plane.
package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/azure/feast-azure/api-types/projects"
	"github.com/azure/feast-azure/pkg/feast/core"
)

// DefaultDomain is appended to bare service names.
const DefaultDomain = "azurewebsites.net"

// FeastClient talks to the control-plane REST API.
//
// Object operations are scoped by a project; they are routed under
// /api/projects/{project}.
type FeastClient interface {
	// CreateProject registers a new project. It fails when the project exists.
	CreateProject(ctx context.Context, req projects.Request) error

	// UpdateProject replaces the configuration of an existing project.
	UpdateProject(ctx context.Context, req projects.Request) error

	GetProject(ctx context.Context, project string) (projects.Config, error)
	ListProjects(ctx context.Context) ([]projects.Config, error)

	// DeleteProject removes a project. The server refuses it while
	// the project holds objects.
	DeleteProject(ctx context.Context, project string) error

	ApplyEntity(ctx context.Context, project string, entity *core.Entity) error
	CreateEntity(ctx context.Context, project string, entity *core.Entity) error
	UpdateEntity(ctx context.Context, project string, entity *core.Entity) error
	DeleteEntity(ctx context.Context, project string, name string) error
	GetEntity(ctx context.Context, project string, name string) (*core.Entity, error)
	ListEntities(ctx context.Context, project string) ([]*core.Entity, error)

	ApplyFeatureView(ctx context.Context, project string, fv *core.FeatureView) error
	CreateFeatureView(ctx context.Context, project string, fv *core.FeatureView) error
	UpdateFeatureView(ctx context.Context, project string, fv *core.FeatureView) error
	DeleteFeatureView(ctx context.Context, project string, name string) error
	GetFeatureView(ctx context.Context, project string, name string) (*core.FeatureView, error)
	ListFeatureViews(ctx context.Context, project string) ([]*core.FeatureView, error)

	ApplyFeatureService(ctx context.Context, project string, fs *core.FeatureService) error
	CreateFeatureService(ctx context.Context, project string, fs *core.FeatureService) error
	UpdateFeatureService(ctx context.Context, project string, fs *core.FeatureService) error
	DeleteFeatureService(ctx context.Context, project string, name string) error
	GetFeatureService(ctx context.Context, project string, name string) (*core.FeatureService, error)
	ListFeatureServices(ctx context.Context, project string) ([]*core.FeatureService, error)
}

// TokenSource gives bearer tokens for requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Option func(*client) (*client, error)

// WithTokenSource makes the client send "Authorization: Bearer <token>".
func WithTokenSource(ts TokenSource) Option {
	return func(c *client) (*client, error) {
		c.token = ts
		return c, nil
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) (*client, error) {
		c.httpclient = hc
		return c, nil
	}
}

// WithCACert trusts additional CA certificates.
//
// Each of cacerts is base64 encoded PEM.
func WithCACert(cacerts ...string) Option {
	return func(c *client) (*client, error) {
		hc, err := trustCa(c.httpclient, cacerts)
		if err != nil {
			return nil, err
		}
		c.httpclient = hc
		return c, nil
	}
}

type client struct {
	httpclient *http.Client
	api        string
	token      TokenSource
}

// ResolveServiceURI returns the base URI of the service.
//
// A name which is not a https URL is taken as the name of the app service,
// and becomes "https://{name}.azurewebsites.net".
func ResolveServiceURI(name string) string {
	if strings.HasPrefix(name, "https:") || strings.HasPrefix(name, "http://") {
		return strings.TrimSuffix(name, "/")
	}
	return fmt.Sprintf("https://%s.%s", name, DefaultDomain)
}

// NewClient creates a client for the service.
//
// # Args
//
// - uri: service name or base URI. See ResolveServiceURI.
//
// - options
//
// # Return
//
// - FeastClient
//
// - error: when an option can not be applied.
func NewClient(uri string, options ...Option) (FeastClient, error) {
	if uri == "" {
		return nil, fmt.Errorf("service uri is empty")
	}
	c := &client{
		httpclient: new(http.Client),
		api:        ResolveServiceURI(uri),
	}

	for _, opt := range options {
		_c, err := opt(c)
		if err != nil {
			return nil, err
		}
		c = _c
	}
	return c, nil
}

// build URL with path. Each path segment is escaped.
func (c *client) apipath(path ...string) string {
	segs := make([]string, 0, len(path)+1)
	segs = append(segs, c.api)
	for _, p := range path {
		segs = append(segs, url.PathEscape(strings.Trim(p, "/")))
	}
	return strings.Join(segs, "/")
}

func (c *client) projectpath(project string, path ...string) string {
	return c.apipath(append([]string{"api", "projects", project}, path...)...)
}

func (c *client) newRequest(ctx context.Context, method string, url string, body []byte) (*http.Request, error) {
	var payload io.Reader
	if body != nil {
		payload = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.token != nil {
		tok, err := c.token.Token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}
	if hc == nil {
		hc = new(http.Client)
	}

	transport := hc.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	tran, ok := transport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}

		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	newHc := *hc
	newHc.Transport = tran
	return &newHc, nil
}
