package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/gnomegl/gitcards/internal/card"
	"github.com/gnomegl/gitcards/internal/models"
)

var fireColor = rankColor

func Streak(w io.Writer, username string, res models.StreakResult) {
	fmt.Fprintln(w)
	headerColor.Fprintf(w, "CONTRIBUTION STREAK: %s\n", username)
	fmt.Fprintln(w, strings.Repeat("-", 40))

	fmt.Fprintf(w, "%s %s\n", labelColor.Sprintf("%-22s", "Total (last year):"), valueColor.Sprint(card.FormatThousands(res.TotalContributions)))

	current := fmt.Sprint(res.CurrentStreak)
	if res.CurrentStreak > 0 {
		current = fireColor.Sprint(current + " 🔥")
	}
	fmt.Fprintf(w, "%s %s  %s\n", labelColor.Sprintf("%-22s", "Current streak:"), current,
		card.FormatDateRange(res.CurrentStreakStart, res.CurrentStreakEnd))
	fmt.Fprintf(w, "%s %s  %s\n", labelColor.Sprintf("%-22s", "Longest streak:"), valueColor.Sprint(res.LongestStreak),
		card.FormatDateRange(res.LongestStreakStart, res.LongestStreakEnd))
	fmt.Fprintln(w)
}
