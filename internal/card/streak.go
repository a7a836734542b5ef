package card

import (
	"fmt"
	"strings"

	"github.com/gnomegl/gitcards/internal/models"
)

type StreakOptions struct {
	HideBorder bool
	HideTitle  bool
}

const fireIcon = `      <svg x="25" y="8" width="20" height="20" viewBox="0 0 24 24" fill="%s">
        <path d="M12 23a7.5 7.5 0 0 1-5.138-12.963C8.204 8.774 11.5 6.5 11 1.5c6 4 9 8 3 14 1 0 2.5 0 5-2.47.27.773.5 1.604.5 2.47A7.5 7.5 0 0 1 12 23z"/>
      </svg>
`

// StreakCard lays out three columns: total contributions, current streak
// and longest streak.
func StreakCard(res models.StreakResult, theme Theme, opts StreakOptions) string {
	width := 495
	height := 175
	startY := 55
	if opts.HideTitle {
		height = 150
		startY = 30
	}
	colWidth := float64(width) / 3

	var b strings.Builder
	openSVG(&b, width, height, fmt.Sprintf(`    .title { font: 600 18px %[1]s; fill: %[2]s; }
    .stat-value { font: 700 28px %[1]s; fill: %[3]s; }
    .streak-value { font: 700 32px %[1]s; fill: %[4]s; }
    .stat-label { font: 600 14px %[1]s; fill: %[3]s; }
    .date-label { font: 400 11px %[1]s; fill: %[5]s; }
`, fontFamily, theme.Title, theme.Text, theme.Ring, theme.Icon), theme)
	border(&b, theme, width, height, opts.HideBorder)

	if !opts.HideTitle {
		fmt.Fprintf(&b, `  <text x="%s" y="30" class="title" text-anchor="middle">GitHub Contribution Streak</text>`+"\n", num(float64(width)/2))
	}

	for i := 1; i <= 2; i++ {
		x := num(colWidth * float64(i))
		fmt.Fprintf(&b, `  <line x1="%s" y1="%d" x2="%s" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			x, startY, x, startY+80, theme.Border)
	}

	column := func(center float64, valueClass, value, label, dates, icon string) {
		fmt.Fprintf(&b, "  <g transform=\"translate(%s, %d)\">\n", num(colWidth*center), startY)
		b.WriteString(icon)
		fmt.Fprintf(&b, `    <text class="%s" x="0" y="30" text-anchor="middle">%s</text>`+"\n", valueClass, value)
		fmt.Fprintf(&b, `    <text class="stat-label" x="0" y="50" text-anchor="middle">%s</text>`+"\n", label)
		fmt.Fprintf(&b, `    <text class="date-label" x="0" y="70" text-anchor="middle">%s</text>`+"\n", dates)
		b.WriteString("  </g>\n")
	}

	column(0.5, "stat-value", FormatThousands(res.TotalContributions), "Total Contributions", "Last year", "")

	icon := ""
	if res.CurrentStreak > 0 {
		icon = fmt.Sprintf(fireIcon, theme.Ring)
	}
	column(1.5, "streak-value", fmt.Sprint(res.CurrentStreak), "Current Streak",
		FormatDateRange(res.CurrentStreakStart, res.CurrentStreakEnd), icon)

	column(2.5, "stat-value", fmt.Sprint(res.LongestStreak), "Longest Streak",
		FormatDateRange(res.LongestStreakStart, res.LongestStreakEnd), "")

	return closeSVG(&b)
}
