package github

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

type ManagedClient struct {
	Client    *gh.Client
	Token     string
	Proxy     string
	remaining int
	resetAt   time.Time
	mu        sync.Mutex
}

func (mc *ManagedClient) UpdateRateLimit(rate gh.Rate) {
	if rate.Limit == 0 {
		return
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.remaining = rate.Remaining
	mc.resetAt = rate.Reset.Time
}

func (mc *ManagedClient) Remaining() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.remaining
}

func (mc *ManagedClient) ResetAt() time.Time {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.resetAt
}

// ClientPool spreads GraphQL calls over several tokens, preferring whichever
// has the most budget left.
type ClientPool struct {
	clients []*ManagedClient
	mu      sync.Mutex
}

func NewClientPool(tokens []string, proxies []string, cfg Config) (*ClientPool, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("at least one GitHub token is required for the GraphQL API")
	}

	pool := &ClientPool{
		clients: make([]*ManagedClient, 0, len(tokens)),
	}

	for i, token := range tokens {
		var proxyURL string
		if i < len(proxies) {
			proxyURL = proxies[i]
		}

		client, err := createClient(token, proxyURL, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create client for token %d: %w", i+1, err)
		}

		pool.clients = append(pool.clients, &ManagedClient{
			Client:    client,
			Token:     token,
			Proxy:     proxyURL,
			remaining: 5000,
		})
	}

	return pool, nil
}

func createClient(token, proxyURL string, cfg Config) (*gh.Client, error) {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}

	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", proxyURL, err)
		}
		transport.Proxy = http.ProxyURL(parsed)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &oauth2.Transport{
			Source: ts,
			Base:   transport,
		},
	}

	client := gh.NewClient(httpClient)
	if cfg.UserAgent != "" {
		client.UserAgent = cfg.UserAgent
	}
	if cfg.APIURL != "" && cfg.APIURL != DefaultAPIURL {
		base := cfg.APIURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", cfg.APIURL, err)
		}
		client.BaseURL = u
	}
	return client, nil
}

func (p *ClientPool) GetClient() *ManagedClient {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.clients) == 1 {
		return p.clients[0]
	}

	var best *ManagedClient
	bestRemaining := -1

	for _, mc := range p.clients {
		rem := mc.Remaining()
		if rem > bestRemaining {
			bestRemaining = rem
			best = mc
		}
	}

	if bestRemaining < 100 {
		var earliest *ManagedClient
		earliestReset := time.Now().Add(24 * time.Hour)

		for _, mc := range p.clients {
			reset := mc.ResetAt()
			if reset.Before(earliestReset) {
				earliestReset = reset
				earliest = mc
			}
		}

		if earliest != nil {
			return earliest
		}
	}

	return best
}

func (p *ClientPool) Size() int {
	return len(p.clients)
}

func (p *ClientPool) AllClients() []*ManagedClient {
	return p.clients
}
