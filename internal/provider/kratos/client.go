// Package kratos implements signup.IdentityProvider on Ory Kratos native
// self-service flows.
package kratos

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	kratosclient "github.com/ory/kratos-client-go"

	"github.com/aussiebroadwan/signup/pkg/signup"
)

// Provider talks to the Kratos public API. It remembers the verification flow
// started for each identifier so a later code can be submitted to it.
type Provider struct {
	api    *kratosclient.APIClient
	logger *slog.Logger

	mu    sync.Mutex
	flows map[string]string // identifier -> verification flow id
}

var (
	_ signup.IdentityProvider = (*Provider)(nil)
	_ signup.CodeResender     = (*Provider)(nil)
)

// NewProvider returns a Provider for the Kratos public API at publicURL. A nil
// httpClient gets a client with a 30 second timeout.
func NewProvider(publicURL string, httpClient *http.Client, logger *slog.Logger) (*Provider, error) {
	if !isValidURL(publicURL) {
		return nil, fmt.Errorf("invalid Kratos public URL: %q", publicURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	cfg := kratosclient.NewConfiguration()
	cfg.Servers = []kratosclient.ServerConfiguration{{URL: publicURL}}
	cfg.HTTPClient = httpClient
	cfg.DefaultHeader = map[string]string{"Accept": "application/json"}

	return &Provider{
		api:    kratosclient.NewAPIClient(cfg),
		logger: logger.With(slog.String("component", "kratos")),
		flows:  make(map[string]string),
	}, nil
}

func (p *Provider) rememberFlow(identifier, flowID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flows[identifier] = flowID
}

func (p *Provider) flow(identifier string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.flows[identifier]
	return id, ok
}

func (p *Provider) forgetFlow(identifier string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.flows, identifier)
}

func isValidURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
