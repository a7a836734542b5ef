package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/gnomegl/gitcards/internal/config"
	"github.com/gnomegl/gitcards/internal/github"
	"github.com/gnomegl/gitcards/internal/utils"
)

const (
	repoOwner = "gnomegl"
	repoName  = "gitcards"
)

var ErrNoToken = errors.New("GITHUB_TOKEN not configured")

var currentVersion = utils.GetVersion

// SetupGitHubClient builds the pooled client from the configured tokens and
// proxies. With validate set the first token is checked against the API.
func SetupGitHubClient(ctx context.Context, cfg *config.AppConfig, validate bool) (*github.Client, error) {
	tokens, err := cfg.Tokens()
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, ErrNoToken
	}

	proxies, err := cfg.Proxies()
	if err != nil {
		return nil, err
	}

	client, err := github.NewClient(tokens, proxies, cfg.ClientConfig())
	if err != nil {
		return nil, err
	}
	slog.Debug("GitHub client ready", "tokens", client.PoolSize(), "proxies", len(proxies))

	if validate {
		if _, err := client.RateLimits(ctx); err != nil {
			return nil, fmt.Errorf("token validation failed: %w", err)
		}
	}

	return client, nil
}

// CheckLatestVersion prints an upgrade hint when a newer release exists.
// Lookup failures are ignored.
func CheckLatestVersion(ctx context.Context, client *github.Client, w io.Writer) {
	tag, err := client.LatestRelease(ctx, repoOwner, repoName)
	if err != nil || tag == "" {
		return
	}

	latest := strings.TrimPrefix(tag, "v")
	current := currentVersion()
	if latest == current || current == utils.DevVersion {
		return
	}

	yellow := color.New(color.FgYellow)
	yellow.Fprintf(w, "A new version of gitcards is available: %s (you're running %s)\n", latest, current)
	yellow.Fprintln(w, "To update:")
	color.New(color.FgCyan).Fprintf(w, "go install github.com/%s/%s@latest\n\n", repoOwner, repoName)
}
