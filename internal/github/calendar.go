package github

import (
	"context"
	"fmt"

	"github.com/gnomegl/gitcards/internal/models"
)

const calendarQuery = `
query($username: String!) {
  user(login: $username) {
    contributionsCollection {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            contributionCount
            date
          }
        }
      }
    }
  }
}`

type calendarResponse struct {
	User *struct {
		ContributionsCollection struct {
			ContributionCalendar models.ContributionCalendar `json:"contributionCalendar"`
		} `json:"contributionsCollection"`
	} `json:"user"`
}

// FetchContributionCalendar returns the trailing-year calendar as GitHub
// reports it; ordering and validation are left to the streak package.
func (c *Client) FetchContributionCalendar(ctx context.Context, username string) (models.ContributionCalendar, error) {
	var data calendarResponse
	if err := c.Query(ctx, calendarQuery, map[string]interface{}{"username": username}, &data); err != nil {
		return models.ContributionCalendar{}, err
	}
	if data.User == nil {
		return models.ContributionCalendar{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return data.User.ContributionsCollection.ContributionCalendar, nil
}
