package card

import "github.com/gnomegl/gitcards/internal/models"

type Rank struct {
	Level      string
	Percentile int
}

var rankThresholds = []struct {
	score int
	rank  Rank
}{
	{10000, Rank{"S+", 1}},
	{5000, Rank{"S", 5}},
	{2500, Rank{"A++", 10}},
	{1000, Rank{"A+", 15}},
	{500, Rank{"A", 25}},
	{250, Rank{"B+", 35}},
	{100, Rank{"B", 50}},
	{50, Rank{"C+", 65}},
	{25, Rank{"C", 80}},
}

// Score weights stars and contributed-to by two and pull requests by three.
func Score(stats *models.UserStats) int {
	return stats.TotalStars*2 +
		stats.TotalCommits +
		stats.TotalPRs*3 +
		stats.TotalIssues +
		stats.ContributedTo*2
}

func CalculateRank(stats *models.UserStats) Rank {
	score := Score(stats)
	for _, th := range rankThresholds {
		if score >= th.score {
			return th.rank
		}
	}
	return Rank{"D", 100}
}
