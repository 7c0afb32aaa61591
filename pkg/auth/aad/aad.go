// Package aad acquires Azure AD bearer tokens for the feast control plane.
package aad

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Environment variables.
const (
	EnvTenantID = "AZURE_TENANT_ID"

	// EnvFeastClientID is the application (client) id of the feast control plane.
	EnvFeastClientID = "FEAST_CLIENT_ID"

	// EnvClientID and EnvClientSecret are the credentials of a service principal.
	//
	// When both are set, tokens are acquired without user interaction.
	EnvClientID     = "AZURE_CLIENT_ID"
	EnvClientSecret = "AZURE_CLIENT_SECRET"
)

// TokenSource gives bearer tokens.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// ServicePrincipalScope is the scope requested with service principal credentials.
func ServicePrincipalScope(clientID string) string {
	return fmt.Sprintf("api://%s/.default", clientID)
}

// DeviceCodeScope is the scope requested with the device code flow.
func DeviceCodeScope(clientID string) string {
	return fmt.Sprintf("api://%s/Feast.All", clientID)
}

type Option struct {
	now    func() time.Time
	lookup func(string) (string, bool)
	logger zerolog.Logger

	newClientSecret func(tenantID, clientID, secret string) (azcore.TokenCredential, error)
	newDeviceCode   func(tenantID, clientID string, prompt func(context.Context, azidentity.DeviceCodeMessage) error) (azcore.TokenCredential, error)
}

func WithClock(now func() time.Time) func(*Option) *Option {
	return func(o *Option) *Option {
		o.now = now
		return o
	}
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(lookup func(string) (string, bool)) func(*Option) *Option {
	return func(o *Option) *Option {
		o.lookup = lookup
		return o
	}
}

func WithLogger(logger zerolog.Logger) func(*Option) *Option {
	return func(o *Option) *Option {
		o.logger = logger
		return o
	}
}

func WithClientSecretCredential(
	newCred func(tenantID, clientID, secret string) (azcore.TokenCredential, error),
) func(*Option) *Option {
	return func(o *Option) *Option {
		o.newClientSecret = newCred
		return o
	}
}

func WithDeviceCodeCredential(
	newCred func(tenantID, clientID string, prompt func(context.Context, azidentity.DeviceCodeMessage) error) (azcore.TokenCredential, error),
) func(*Option) *Option {
	return func(o *Option) *Option {
		o.newDeviceCode = newCred
		return o
	}
}

func defaultClientSecret(tenantID, clientID, secret string) (azcore.TokenCredential, error) {
	return azidentity.NewClientSecretCredential(tenantID, clientID, secret, nil)
}

func defaultDeviceCode(
	tenantID, clientID string,
	prompt func(context.Context, azidentity.DeviceCodeMessage) error,
) (azcore.TokenCredential, error) {
	return azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
		TenantID:   tenantID,
		ClientID:   clientID,
		UserPrompt: prompt,
	})
}

// Source is a TokenSource caching the last token until it expires.
type Source struct {
	tenantID string
	clientID string

	now    func() time.Time
	lookup func(string) (string, bool)
	logger zerolog.Logger

	newClientSecret func(tenantID, clientID, secret string) (azcore.TokenCredential, error)
	newDeviceCode   func(tenantID, clientID string, prompt func(context.Context, azidentity.DeviceCodeMessage) error) (azcore.TokenCredential, error)

	mu         sync.Mutex
	token      string
	expiresOn  time.Time
	deviceCode azcore.TokenCredential
}

var _ TokenSource = &Source{}

// NewTokenSource returns a Source for the feast control plane registered as clientID.
//
// Empty tenantID and clientID are taken from AZURE_TENANT_ID and FEAST_CLIENT_ID.
// When they are still missing, it logs errors; acquiring tokens will fail then.
func NewTokenSource(tenantID, clientID string, options ...func(*Option) *Option) *Source {
	opt := &Option{
		now:             time.Now,
		lookup:          os.LookupEnv,
		logger:          log.Logger,
		newClientSecret: defaultClientSecret,
		newDeviceCode:   defaultDeviceCode,
	}
	for _, o := range options {
		opt = o(opt)
	}

	if clientID == "" {
		if v, ok := opt.lookup(EnvFeastClientID); ok {
			clientID = v
		} else {
			opt.logger.Error().Msgf(
				"Feast service client ID is required for AAD authentication. "+
					"You can provide it as input parameter or environment variable with name %s.",
				EnvFeastClientID,
			)
		}
	}
	if tenantID == "" {
		if v, ok := opt.lookup(EnvTenantID); ok {
			tenantID = v
		} else {
			opt.logger.Error().Msgf(
				"AAD tenant ID is required for AAD authentication. "+
					"You can provide it as input parameter or environment variable with name %s.",
				EnvTenantID,
			)
		}
	}

	return &Source{
		tenantID:        tenantID,
		clientID:        clientID,
		now:             opt.now,
		lookup:          opt.lookup,
		logger:          opt.logger,
		newClientSecret: opt.newClientSecret,
		newDeviceCode:   opt.newDeviceCode,
	}
}

func (s *Source) TenantID() string {
	return s.tenantID
}

func (s *Source) ClientID() string {
	return s.clientID
}

// Token returns the cached token while it is valid, or acquires a new one.
//
// Errors from the identity client are returned as they are.
func (s *Source) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Before(s.expiresOn) {
		return s.token, nil
	}

	cred, scope, err := s.credential()
	if err != nil {
		return "", err
	}
	tok, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{scope}})
	if err != nil {
		return "", err
	}
	s.token = tok.Token
	s.expiresOn = tok.ExpiresOn
	return s.token, nil
}

func (s *Source) credential() (azcore.TokenCredential, string, error) {
	spnID, hasID := s.lookup(EnvClientID)
	spnSecret, hasSecret := s.lookup(EnvClientSecret)
	if hasID && hasSecret {
		cred, err := s.newClientSecret(s.tenantID, spnID, spnSecret)
		if err != nil {
			return nil, "", err
		}
		return cred, ServicePrincipalScope(s.clientID), nil
	}

	if s.deviceCode == nil {
		cred, err := s.newDeviceCode(s.tenantID, s.clientID, s.prompt)
		if err != nil {
			return nil, "", err
		}
		s.deviceCode = cred
	}
	return s.deviceCode, DeviceCodeScope(s.clientID), nil
}

func (s *Source) prompt(_ context.Context, msg azidentity.DeviceCodeMessage) error {
	s.logger.Warn().
		Str("verification_url", msg.VerificationURL).
		Str("user_code", msg.UserCode).
		Msg(msg.Message)
	return nil
}
