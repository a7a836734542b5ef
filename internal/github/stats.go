package github

import (
	"context"
	"fmt"
	"time"

	"github.com/gnomegl/gitcards/internal/models"
)

const userStatsQuery = `
query($username: String!, $from: DateTime!, $to: DateTime!, $perPage: Int!) {
  user(login: $username) {
    name
    avatarUrl
    contributionsCollection(from: $from, to: $to) {
      totalCommitContributions
      restrictedContributionsCount
    }
    repositoriesContributedTo(first: 1, contributionTypes: [COMMIT, ISSUE, PULL_REQUEST, REPOSITORY]) {
      totalCount
    }
    pullRequests(first: 1) {
      totalCount
    }
    issues(first: 1) {
      totalCount
    }
    repositories(first: $perPage, ownerAffiliations: OWNER, orderBy: {direction: DESC, field: STARGAZERS}) {
      totalCount
      nodes {
        stargazerCount
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}`

const moreStarsQuery = `
query($username: String!, $cursor: String, $perPage: Int!) {
  user(login: $username) {
    repositories(first: $perPage, ownerAffiliations: OWNER, after: $cursor, orderBy: {direction: DESC, field: STARGAZERS}) {
      nodes {
        stargazerCount
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}`

type totalCount struct {
	TotalCount int `json:"totalCount"`
}

type starPage struct {
	TotalCount int `json:"totalCount"`
	Nodes      []struct {
		StargazerCount int `json:"stargazerCount"`
	} `json:"nodes"`
	PageInfo pageInfo `json:"pageInfo"`
}

func (p starPage) stars() int {
	sum := 0
	for _, n := range p.Nodes {
		sum += n.StargazerCount
	}
	return sum
}

type userStatsResponse struct {
	User *struct {
		Name                    *string `json:"name"`
		AvatarURL               string  `json:"avatarUrl"`
		ContributionsCollection struct {
			TotalCommitContributions     int `json:"totalCommitContributions"`
			RestrictedContributionsCount int `json:"restrictedContributionsCount"`
		} `json:"contributionsCollection"`
		RepositoriesContributedTo totalCount `json:"repositoriesContributedTo"`
		PullRequests              totalCount `json:"pullRequests"`
		Issues                    totalCount `json:"issues"`
		Repositories              starPage   `json:"repositories"`
	} `json:"user"`
}

type moreStarsResponse struct {
	User *struct {
		Repositories starPage `json:"repositories"`
	} `json:"user"`
}

// FetchUserStats collects the profile counters. Commits cover the 365 days
// before now; stars are summed over every owned repository.
func (c *Client) FetchUserStats(ctx context.Context, username string, now time.Time) (*models.UserStats, error) {
	from := now.AddDate(0, 0, -365)

	var data userStatsResponse
	err := c.Query(ctx, userStatsQuery, map[string]interface{}{
		"username": username,
		"from":     from.UTC().Format(time.RFC3339),
		"to":       now.UTC().Format(time.RFC3339),
		"perPage":  c.perPage(),
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}

	user := data.User
	stats := &models.UserStats{
		Username:      username,
		Name:          username,
		AvatarURL:     user.AvatarURL,
		TotalStars:    user.Repositories.stars(),
		TotalCommits:  user.ContributionsCollection.TotalCommitContributions + user.ContributionsCollection.RestrictedContributionsCount,
		TotalPRs:      user.PullRequests.TotalCount,
		TotalIssues:   user.Issues.TotalCount,
		TotalRepos:    user.Repositories.TotalCount,
		ContributedTo: user.RepositoriesContributedTo.TotalCount,
	}
	if user.Name != nil && *user.Name != "" {
		stats.Name = *user.Name
	}

	bar := c.newSpinner("Counting stars")
	defer bar.Finish()
	bar.Add(len(user.Repositories.Nodes))

	page := user.Repositories.PageInfo
	for fetched := 1; c.morePages(page, fetched); fetched++ {
		var more moreStarsResponse
		err := c.Query(ctx, moreStarsQuery, map[string]interface{}{
			"username": username,
			"cursor":   *page.EndCursor,
			"perPage":  c.perPage(),
		}, &more)
		if err != nil {
			return nil, fmt.Errorf("error fetching repositories page %d: %w", fetched+1, err)
		}
		if more.User == nil {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}

		stats.TotalStars += more.User.Repositories.stars()
		bar.Add(len(more.User.Repositories.Nodes))
		page = more.User.Repositories.PageInfo
	}

	return stats, nil
}
