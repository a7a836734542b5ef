package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnomegl/gitcards/internal/models"
	gh "github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// newTestClient serves every GraphQL call through handle and returns a client
// pointed at it.
func newTestClient(t *testing.T, cfg Config, handle func(t *testing.T, req recordedRequest) string) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/graphql", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req recordedRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, handle(t, req))
	}))
	t.Cleanup(srv.Close)

	cfg.APIURL = srv.URL + "/"
	client, err := NewClient([]string{"test-token"}, nil, cfg)
	require.NoError(t, err)
	return client
}

func TestQuery_GraphQLErrors(t *testing.T) {
	client := newTestClient(t, DefaultConfig(), func(t *testing.T, req recordedRequest) string {
		return `{"data":null,"errors":[{"message":"first"},{"message":"second"}]}`
	})

	err := client.Query(context.Background(), "query { viewer { login } }", nil, nil)
	require.Error(t, err)

	var gqlErr *GraphQLError
	require.ErrorAs(t, err, &gqlErr)
	assert.Equal(t, "GraphQL error: first, second", err.Error())
}

func TestQuery_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Bad credentials"}`)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.APIURL = srv.URL
	client, err := NewClient([]string{"bad"}, nil, cfg)
	require.NoError(t, err)

	err = client.Query(context.Background(), "query { viewer { login } }", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "GitHub API error: 401 Unauthorized", err.Error())
}

func TestQuery_CanceledContext(t *testing.T) {
	client := newTestClient(t, DefaultConfig(), func(t *testing.T, req recordedRequest) string {
		return `{"data":{}}`
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, client.Query(ctx, "query { viewer { login } }", nil, nil))
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(nil, nil, DefaultConfig())
	assert.Error(t, err)
}

func TestFetchContributionCalendar(t *testing.T) {
	client := newTestClient(t, DefaultConfig(), func(t *testing.T, req recordedRequest) string {
		assert.Equal(t, "octocat", req.Variables["username"])
		assert.Contains(t, req.Query, "contributionCalendar")
		return `{"data":{"user":{"contributionsCollection":{"contributionCalendar":{
			"totalContributions": 12,
			"weeks": [
				{"contributionDays": [{"contributionCount": 5, "date": "2024-01-01"}, {"contributionCount": 0, "date": "2024-01-02"}]},
				{"contributionDays": [{"contributionCount": 7, "date": "2024-01-03"}]}
			]}}}}}`
	})

	cal, err := client.FetchContributionCalendar(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, 12, cal.TotalContributions)
	require.Len(t, cal.Weeks, 2)
	assert.Equal(t, "2024-01-01", cal.Weeks[0].ContributionDays[0].Date)
	assert.Equal(t, 7, cal.Weeks[1].ContributionDays[0].ContributionCount)
}

func TestFetchContributionCalendar_UnknownUser(t *testing.T) {
	client := newTestClient(t, DefaultConfig(), func(t *testing.T, req recordedRequest) string {
		return `{"data":{"user":null}}`
	})

	_, err := client.FetchContributionCalendar(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFetchUserStats_PaginatesStars(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	calls := 0

	client := newTestClient(t, DefaultConfig(), func(t *testing.T, req recordedRequest) string {
		calls++
		switch req.Variables["cursor"] {
		case nil:
			assert.Equal(t, "2023-06-02T12:00:00Z", req.Variables["from"])
			assert.Equal(t, "2024-06-01T12:00:00Z", req.Variables["to"])
			return `{"data":{"user":{
				"name": null,
				"avatarUrl": "https://avatars.example/u/1",
				"contributionsCollection": {"totalCommitContributions": 300, "restrictedContributionsCount": 20},
				"repositoriesContributedTo": {"totalCount": 4},
				"pullRequests": {"totalCount": 10},
				"issues": {"totalCount": 3},
				"repositories": {"totalCount": 3, "nodes": [{"stargazerCount": 50}, {"stargazerCount": 7}],
					"pageInfo": {"hasNextPage": true, "endCursor": "c1"}}}}}`
		case "c1":
			return `{"data":{"user":{"repositories":{"nodes":[{"stargazerCount": 1}],
				"pageInfo":{"hasNextPage": false, "endCursor": null}}}}}`
		default:
			assert.Failf(t, "unexpected cursor", "%v", req.Variables["cursor"])
			return `{"data":{}}`
		}
	})

	stats, err := client.FetchUserStats(context.Background(), "octocat", now)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, "octocat", stats.Name)
	assert.Equal(t, 58, stats.TotalStars)
	assert.Equal(t, 320, stats.TotalCommits)
	assert.Equal(t, 10, stats.TotalPRs)
	assert.Equal(t, 3, stats.TotalIssues)
	assert.Equal(t, 3, stats.TotalRepos)
	assert.Equal(t, 4, stats.ContributedTo)
}

func TestFetchUserStats_MaxPages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPages = 2
	calls := 0

	client := newTestClient(t, cfg, func(t *testing.T, req recordedRequest) string {
		calls++
		if req.Variables["cursor"] == nil {
			return `{"data":{"user":{"name":"Mona","repositories":{"totalCount":500,"nodes":[{"stargazerCount":1}],
				"pageInfo":{"hasNextPage":true,"endCursor":"c"}}}}}`
		}
		return `{"data":{"user":{"repositories":{"nodes":[{"stargazerCount":1}],
			"pageInfo":{"hasNextPage":true,"endCursor":"c"}}}}}`
	})

	stats, err := client.FetchUserStats(context.Background(), "mona", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, stats.TotalStars)
	assert.Equal(t, "Mona", stats.Name)
}

func TestFetchLanguageStats(t *testing.T) {
	client := newTestClient(t, DefaultConfig(), func(t *testing.T, req recordedRequest) string {
		if req.Variables["cursor"] == nil {
			return `{"data":{"user":{"repositories":{"nodes":[
				{"languages":{"edges":[
					{"size":600,"node":{"name":"Go","color":"#00ADD8"}},
					{"size":100,"node":{"name":"Makefile","color":null}}]}}
				],"pageInfo":{"hasNextPage":true,"endCursor":"next"}}}}}`
		}
		assert.Equal(t, "next", req.Variables["cursor"])
		return `{"data":{"user":{"repositories":{"nodes":[
			{"languages":{"edges":[
				{"size":200,"node":{"name":"Go","color":"#00ADD8"}},
				{"size":100,"node":{"name":"Shell","color":"#89e051"}}]}}
			],"pageInfo":{"hasNextPage":false,"endCursor":null}}}}}`
	})

	langs, err := client.FetchLanguageStats(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, langs, 3)

	assert.Equal(t, "Go", langs[0].Name)
	assert.Equal(t, int64(800), langs[0].Size)
	assert.InDelta(t, 80.0, langs[0].Percentage, 0.001)
	assert.Equal(t, "Makefile", langs[1].Name)
	assert.Equal(t, defaultLanguageColor, langs[1].Color)
	assert.Equal(t, "Shell", langs[2].Name)
	assert.InDelta(t, 10.0, langs[2].Percentage, 0.001)
}

func TestRankLanguages_TopTen(t *testing.T) {
	sizes := make(map[string]*models.LanguageStat)
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("lang%02d", i)
		sizes[name] = &models.LanguageStat{Name: name, Size: int64(i * 10)}
	}

	langs := rankLanguages(sizes)
	require.Len(t, langs, maxLanguages)
	assert.Equal(t, "lang12", langs[0].Name)
	assert.Equal(t, "lang03", langs[9].Name)

	var total float64
	for _, l := range langs {
		total += l.Percentage
	}
	// percentages are shares of every language, not just the ten shown
	assert.Less(t, total, 100.0)
}

func TestRankLanguages_Empty(t *testing.T) {
	assert.Empty(t, rankLanguages(map[string]*models.LanguageStat{}))
}

func TestReadTokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens")
	require.NoError(t, os.WriteFile(path, []byte("# pool\nghp_one\n\n  ghp_two  \n"), 0600))

	tokens, err := ReadTokenFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ghp_one", "ghp_two"}, tokens)

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0600))
	_, err = ReadTokenFile(empty)
	assert.Error(t, err)
}

func TestReadProxyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxies")
	require.NoError(t, os.WriteFile(path, []byte("10.0.0.1:8080\nsocks5://10.0.0.2:1080\n"), 0600))

	proxies, err := ReadProxyFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://10.0.0.1:8080", "socks5://10.0.0.2:1080"}, proxies)
}

func TestClientPool_PrefersRemainingBudget(t *testing.T) {
	pool, err := NewClientPool([]string{"a", "b"}, nil, DefaultConfig())
	require.NoError(t, err)

	clients := pool.AllClients()
	reset := gh.Timestamp{Time: time.Now().Add(time.Hour)}
	clients[0].UpdateRateLimit(gh.Rate{Limit: 5000, Remaining: 10, Reset: reset})
	clients[1].UpdateRateLimit(gh.Rate{Limit: 5000, Remaining: 4000, Reset: reset})

	assert.Same(t, clients[1], pool.GetClient())
	assert.Equal(t, "a", clients[0].Token)
}
