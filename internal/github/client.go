package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gnomegl/gitcards/internal/metrics"
	gh "github.com/google/go-github/v57/github"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

var ErrUserNotFound = errors.New("GitHub user not found")

// GraphQLError carries the messages of a GraphQL "errors" array.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "GraphQL error: " + strings.Join(e.Messages, ", ")
}

// Client talks to the GitHub GraphQL endpoint through a token pool, with an
// outbound rate limit shared by every pagination loop.
type Client struct {
	pool    *ClientPool
	limiter *rate.Limiter
	cfg     Config
}

func NewClient(tokens, proxies []string, cfg Config) (*Client, error) {
	pool, err := NewClientPool(tokens, proxies, cfg)
	if err != nil {
		return nil, err
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		pool:    pool,
		limiter: rate.NewLimiter(limit, burst),
		cfg:     cfg,
	}, nil
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Query runs a GraphQL query and decodes its data object into out.
func (c *Client) Query(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	mc := c.pool.GetClient()
	req, err := mc.Client.NewRequest(http.MethodPost, "graphql", &graphqlRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("error building GraphQL request: %w", err)
	}

	var body graphqlResponse
	start := time.Now()
	resp, err := mc.Client.Do(ctx, req, &body)
	metrics.GraphQLDuration.Observe(time.Since(start).Seconds())
	if resp != nil {
		mc.UpdateRateLimit(resp.Rate)
	}

	if err != nil {
		metrics.GraphQLRequestsTotal.WithLabelValues("http_error").Inc()
		var errResp *gh.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil {
			code := errResp.Response.StatusCode
			return fmt.Errorf("GitHub API error: %d %s", code, http.StatusText(code))
		}
		var rateErr *gh.RateLimitError
		if errors.As(err, &rateErr) {
			return fmt.Errorf("GitHub API rate limit exceeded, resets at %s", rateErr.Rate.Reset.Time.Format(time.RFC3339))
		}
		return fmt.Errorf("GitHub API request failed: %w", err)
	}

	if len(body.Errors) > 0 {
		metrics.GraphQLRequestsTotal.WithLabelValues("graphql_error").Inc()
		gqlErr := &GraphQLError{}
		for _, e := range body.Errors {
			gqlErr.Messages = append(gqlErr.Messages, e.Message)
		}
		return gqlErr
	}

	metrics.GraphQLRequestsTotal.WithLabelValues("ok").Inc()
	if out == nil || len(body.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(body.Data, out); err != nil {
		return fmt.Errorf("error decoding GraphQL data: %w", err)
	}
	return nil
}

// RateLimits reports the REST and GraphQL budgets of the least used token.
func (c *Client) RateLimits(ctx context.Context) (*gh.RateLimits, error) {
	mc := c.pool.GetClient()
	limits, resp, err := mc.Client.RateLimit.Get(ctx)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("invalid GitHub token")
		}
		return nil, fmt.Errorf("error fetching rate limits: %w", err)
	}
	if limits.GraphQL != nil {
		mc.UpdateRateLimit(*limits.GraphQL)
	}
	return limits, nil
}

func (c *Client) PoolSize() int {
	return c.pool.Size()
}

// newSpinner only draws when progress output is enabled; server mode gets a
// bar that writes nowhere.
func (c *Client) newSpinner(description string) *progressbar.ProgressBar {
	var w io.Writer = io.Discard
	if c.cfg.ShowProgress {
		w = os.Stderr
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(w),
		progressbar.OptionClearOnFinish(),
	)
}

type pageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

func (c *Client) perPage() int {
	if c.cfg.PerPage <= 0 || c.cfg.PerPage > 100 {
		return 100
	}
	return c.cfg.PerPage
}

// morePages reports whether another page should be fetched after page
// fetched pages.
func (c *Client) morePages(info pageInfo, fetched int) bool {
	if !info.HasNextPage || info.EndCursor == nil {
		return false
	}
	return c.cfg.MaxPages <= 0 || fetched < c.cfg.MaxPages
}

// LatestRelease returns the tag of the newest published release of owner/repo.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string) (string, error) {
	mc := c.pool.GetClient()
	release, resp, err := mc.Client.Repositories.GetLatestRelease(ctx, owner, repo)
	if resp != nil {
		mc.UpdateRateLimit(resp.Rate)
	}
	if err != nil {
		return "", fmt.Errorf("error fetching latest release: %w", err)
	}
	return release.GetTagName(), nil
}
