package github

import (
	"context"
	"fmt"
	"sort"

	"github.com/gnomegl/gitcards/internal/models"
)

const (
	defaultLanguageColor = "#858585"
	maxLanguages         = 10
)

// Both pages use the same ordering so the cursor stays meaningful.
const languagesQuery = `
query($username: String!, $cursor: String, $perPage: Int!) {
  user(login: $username) {
    repositories(first: $perPage, ownerAffiliations: OWNER, isFork: false, after: $cursor, orderBy: {direction: DESC, field: PUSHED_AT}) {
      nodes {
        languages(first: 10, orderBy: {direction: DESC, field: SIZE}) {
          edges {
            size
            node {
              name
              color
            }
          }
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}`

type languagesResponse struct {
	User *struct {
		Repositories struct {
			Nodes []struct {
				Languages struct {
					Edges []struct {
						Size int64 `json:"size"`
						Node struct {
							Name  string  `json:"name"`
							Color *string `json:"color"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"languages"`
			} `json:"nodes"`
			PageInfo pageInfo `json:"pageInfo"`
		} `json:"repositories"`
	} `json:"user"`
}

// FetchLanguageStats aggregates language sizes over all non-fork owned
// repositories and returns the top ten with their share of the total.
func (c *Client) FetchLanguageStats(ctx context.Context, username string) ([]models.LanguageStat, error) {
	sizes := make(map[string]*models.LanguageStat)

	bar := c.newSpinner("Aggregating languages")
	defer bar.Finish()

	var cursor *string
	for fetched := 0; ; {
		var data languagesResponse
		err := c.Query(ctx, languagesQuery, map[string]interface{}{
			"username": username,
			"cursor":   cursor,
			"perPage":  c.perPage(),
		}, &data)
		if err != nil {
			if fetched > 0 {
				return nil, fmt.Errorf("error fetching repositories page %d: %w", fetched+1, err)
			}
			return nil, err
		}
		if data.User == nil {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		fetched++

		for _, repo := range data.User.Repositories.Nodes {
			for _, edge := range repo.Languages.Edges {
				name := edge.Node.Name
				if existing, ok := sizes[name]; ok {
					existing.Size += edge.Size
					continue
				}
				color := defaultLanguageColor
				if edge.Node.Color != nil && *edge.Node.Color != "" {
					color = *edge.Node.Color
				}
				sizes[name] = &models.LanguageStat{Name: name, Size: edge.Size, Color: color}
			}
		}
		bar.Add(len(data.User.Repositories.Nodes))

		page := data.User.Repositories.PageInfo
		if !c.morePages(page, fetched) {
			break
		}
		cursor = page.EndCursor
	}

	return rankLanguages(sizes), nil
}

func rankLanguages(sizes map[string]*models.LanguageStat) []models.LanguageStat {
	var total int64
	langs := make([]models.LanguageStat, 0, len(sizes))
	for _, l := range sizes {
		total += l.Size
		langs = append(langs, *l)
	}

	for i := range langs {
		if total > 0 {
			langs[i].Percentage = float64(langs[i].Size) / float64(total) * 100
		}
	}

	sort.Slice(langs, func(i, j int) bool {
		if langs[i].Size != langs[j].Size {
			return langs[i].Size > langs[j].Size
		}
		return langs[i].Name < langs[j].Name
	})

	if len(langs) > maxLanguages {
		langs = langs[:maxLanguages]
	}
	return langs
}
