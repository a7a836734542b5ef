package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gnomegl/gitcards/internal/card"
	"github.com/gnomegl/gitcards/internal/models"
)

var (
	headerColor = color.New(color.Bold, color.FgCyan)
	labelColor  = color.New(color.FgWhite)
	valueColor  = color.New(color.FgGreen)
	rankColor   = color.New(color.Bold, color.FgMagenta)
)

func UserStats(w io.Writer, stats *models.UserStats) {
	if stats == nil {
		return
	}

	fmt.Fprintln(w)
	headerColor.Fprintf(w, "USER: %s\n", stats.Username)
	printField(w, "Name", stats.Name)
	printField(w, "Avatar", stats.AvatarURL)
	fmt.Fprintln(w, strings.Repeat("-", 40))

	rows := []struct {
		label string
		value int
	}{
		{"Total Stars Earned", stats.TotalStars},
		{"Total Commits (last year)", stats.TotalCommits},
		{"Total PRs", stats.TotalPRs},
		{"Total Issues", stats.TotalIssues},
		{"Total Repos", stats.TotalRepos},
		{"Contributed To", stats.ContributedTo},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprintf("%-27s", r.label+":"), valueColor.Sprint(card.FormatThousands(r.value)))
	}

	rank := card.CalculateRank(stats)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s (top %d%%, score %s)\n",
		labelColor.Sprint("Rank:"), rankColor.Sprint(rank.Level), rank.Percentile, card.FormatThousands(card.Score(stats)))
	fmt.Fprintln(w)
}

func printField(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint(label+":"), value)
}
