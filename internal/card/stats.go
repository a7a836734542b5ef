package card

import (
	"fmt"
	"strings"

	"github.com/gnomegl/gitcards/internal/models"
)

type StatsOptions struct {
	HideBorder bool
	HideTitle  bool
	HideRank   bool
	ShowIcons  bool
	LineHeight int
}

const rankCircumference = 251.2

var statIcons = map[string]string{
	"star":    `<path fill-rule="evenodd" d="M8 .25a.75.75 0 01.673.418l1.882 3.815 4.21.612a.75.75 0 01.416 1.279l-3.046 2.97.719 4.192a.75.75 0 01-1.088.791L8 12.347l-3.766 1.98a.75.75 0 01-1.088-.79l.72-4.194L.818 6.374a.75.75 0 01.416-1.28l4.21-.611L7.327.668A.75.75 0 018 .25z"/>`,
	"commit":  `<path fill-rule="evenodd" d="M1.643 3.143L.427 1.927A.25.25 0 000 2.104V5.75c0 .138.112.25.25.25h3.646a.25.25 0 00.177-.427L2.715 4.215a6.5 6.5 0 11-1.18 4.458.75.75 0 10-1.493.154 8.001 8.001 0 101.6-5.684zM7.75 4a.75.75 0 01.75.75v2.992l2.028.812a.75.75 0 01-.557 1.392l-2.5-1A.75.75 0 017 8.25v-3.5A.75.75 0 017.75 4z"/>`,
	"pr":      `<path fill-rule="evenodd" d="M7.177 3.073L9.573.677A.25.25 0 0110 .854v4.792a.25.25 0 01-.427.177L7.177 3.427a.25.25 0 010-.354zM3.75 2.5a.75.75 0 100 1.5.75.75 0 000-1.5zm-2.25.75a2.25 2.25 0 113 2.122v5.256a2.251 2.251 0 11-1.5 0V5.372A2.25 2.25 0 011.5 3.25zM11 2.5h-1V4h1a1 1 0 011 1v5.628a2.251 2.251 0 101.5 0V5A2.5 2.5 0 0011 2.5zm1 10.25a.75.75 0 111.5 0 .75.75 0 01-1.5 0zM3.75 12a.75.75 0 100 1.5.75.75 0 000-1.5z"/>`,
	"issue":   `<path d="M8 9.5a1.5 1.5 0 100-3 1.5 1.5 0 000 3z"/><path fill-rule="evenodd" d="M8 0a8 8 0 100 16A8 8 0 008 0zM1.5 8a6.5 6.5 0 1113 0 6.5 6.5 0 01-13 0z"/>`,
	"repo":    `<path fill-rule="evenodd" d="M2 2.5A2.5 2.5 0 014.5 0h8.75a.75.75 0 01.75.75v12.5a.75.75 0 01-.75.75h-2.5a.75.75 0 110-1.5h1.75v-2h-8a1 1 0 00-.714 1.7.75.75 0 01-1.072 1.05A2.495 2.495 0 012 11.5v-9zm10.5-1V9h-8c-.356 0-.694.074-1 .208V2.5a1 1 0 011-1h8zM5 12.25v3.25a.25.25 0 00.4.2l1.45-1.087a.25.25 0 01.3 0L8.6 15.7a.25.25 0 00.4-.2v-3.25a.25.25 0 00-.25-.25h-3.5a.25.25 0 00-.25.25z"/>`,
	"contrib": `<path fill-rule="evenodd" d="M2 2.5A2.5 2.5 0 014.5 0h8.75a.75.75 0 01.75.75v12.5a.75.75 0 01-.75.75h-2.5a.75.75 0 110-1.5h1.75v-2h-8a1 1 0 00-.714 1.7.75.75 0 01-1.072 1.05A2.495 2.495 0 012 11.5v-9zm10.5-1V9h-8c-.356 0-.694.074-1 .208V2.5a1 1 0 011-1h8zM5 12.25v3.25a.25.25 0 00.4.2l1.45-1.087a.25.25 0 01.3 0L8.6 15.7a.25.25 0 00.4-.2v-3.25a.25.25 0 00-.25-.25h-3.5a.25.25 0 00-.25.25z"/>`,
}

type statItem struct {
	icon  string
	label string
	value int
}

func StatsCard(stats *models.UserStats, theme Theme, opts StatsOptions) string {
	width := 495
	height := 195
	if opts.HideTitle {
		height = 170
	}
	rank := CalculateRank(stats)

	items := []statItem{
		{"star", "Total Stars Earned", stats.TotalStars},
		{"commit", "Total Commits (last year)", stats.TotalCommits},
		{"pr", "Total PRs", stats.TotalPRs},
		{"issue", "Total Issues", stats.TotalIssues},
		{"repo", "Total Repos", stats.TotalRepos},
		{"contrib", "Contributed To", stats.ContributedTo},
	}

	var b strings.Builder
	openSVG(&b, width, height, fmt.Sprintf(`    .title { font: 600 18px %[1]s; fill: %[2]s; }
    .stat-label { font: 400 14px %[1]s; fill: %[3]s; }
    .stat-value { font: 600 14px %[1]s; fill: %[3]s; }
    .rank-text { font: 800 24px %[1]s; fill: %[4]s; }
    .rank-percentile { font: 400 10px %[1]s; fill: %[5]s; }
`, fontFamily, theme.Title, theme.Text, theme.RankText, theme.Icon), theme)
	border(&b, theme, width, height, opts.HideBorder)

	if !opts.HideTitle {
		fmt.Fprintf(&b, `  <text x="25" y="35" class="title">%s's GitHub Stats</text>`+"\n", EscapeXML(stats.Name))
	}

	statY := 55
	if opts.HideTitle {
		statY = 25
	}
	textX := 25
	if opts.ShowIcons {
		textX = 48
	}

	for i, item := range items {
		y := statY + i*opts.LineHeight
		b.WriteString("  <g transform=\"translate(0, 0)\">\n")
		if opts.ShowIcons {
			fmt.Fprintf(&b, `    <svg x="25" y="%d" width="16" height="16" viewBox="0 0 16 16" fill="%s">%s</svg>`+"\n",
				y-12, theme.Icon, statIcons[item.icon])
		}
		fmt.Fprintf(&b, `    <text x="%d" y="%d" class="stat-label">%s:</text>`+"\n", textX, y, EscapeXML(item.label))
		fmt.Fprintf(&b, `    <text x="220" y="%d" class="stat-value">%s</text>`+"\n", y, FormatNumber(item.value))
		b.WriteString("  </g>\n")
	}

	if !opts.HideRank {
		fmt.Fprintf(&b, `  <g transform="translate(400, %s)">`+"\n", num(float64(height)/2))
		fmt.Fprintf(&b, `    <circle r="40" fill="none" stroke="%s" stroke-width="5" stroke-dasharray="%s" stroke-dashoffset="%s" transform="rotate(-90)"/>`+"\n",
			theme.Ring, num(rankCircumference), num(rankCircumference*float64(rank.Percentile)/100))
		fmt.Fprintf(&b, `    <text class="rank-text" x="0" y="0" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n", rank.Level)
		fmt.Fprintf(&b, `    <text class="rank-percentile" x="0" y="20" text-anchor="middle">Top %d%%</text>`+"\n", rank.Percentile)
		b.WriteString("  </g>\n")
	}

	return closeSVG(&b)
}
