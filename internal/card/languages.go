package card

import (
	"fmt"
	"math"
	"strings"

	"github.com/gnomegl/gitcards/internal/models"
)

type Layout string

const (
	LayoutNormal  Layout = "normal"
	LayoutCompact Layout = "compact"
	LayoutDonut   Layout = "donut"
	LayoutPie     Layout = "pie"
)

// ParseLayout maps unknown values to the normal layout.
func ParseLayout(s string) Layout {
	switch l := Layout(strings.ToLower(s)); l {
	case LayoutCompact, LayoutDonut, LayoutPie:
		return l
	}
	return LayoutNormal
}

type LanguagesOptions struct {
	HideBorder bool
	HideTitle  bool
	Layout     Layout
	LangsCount int
}

const (
	languagesWidth = 300
	barWidth       = 250.0
	languagesTitle = `  <text x="25" y="35" class="title">Most Used Languages</text>` + "\n"
)

func LanguagesCard(langs []models.LanguageStat, theme Theme, opts LanguagesOptions) string {
	if opts.LangsCount > 0 && len(langs) > opts.LangsCount {
		langs = langs[:opts.LangsCount]
	}

	switch opts.Layout {
	case LayoutCompact:
		return compactCard(langs, theme, opts)
	case LayoutDonut, LayoutPie:
		return donutCard(langs, theme, opts)
	}
	return normalCard(langs, theme, opts)
}

func normalCard(langs []models.LanguageStat, theme Theme, opts LanguagesOptions) string {
	height := 70 + len(langs)*40
	startY := 55
	if opts.HideTitle {
		height = 45 + len(langs)*40
		startY = 25
	}

	var b strings.Builder
	openSVG(&b, languagesWidth, height, fmt.Sprintf(`    .title { font: 600 18px %[1]s; fill: %[2]s; }
    .lang-name { font: 400 14px %[1]s; fill: %[3]s; }
    .lang-percent { font: 600 14px %[1]s; fill: %[3]s; }
`, fontFamily, theme.Title, theme.Text), theme)
	border(&b, theme, languagesWidth, height, opts.HideBorder)
	if !opts.HideTitle {
		b.WriteString(languagesTitle)
	}

	for i, lang := range langs {
		y := startY + i*40
		fmt.Fprintf(&b, "  <g transform=\"translate(25, %d)\">\n", y)
		fmt.Fprintf(&b, `    <circle cx="6" cy="6" r="6" fill="%s"/>`+"\n", lang.Color)
		fmt.Fprintf(&b, `    <text x="20" y="10" class="lang-name">%s</text>`+"\n", EscapeXML(lang.Name))
		fmt.Fprintf(&b, `    <text x="250" y="10" class="lang-percent" text-anchor="end">%.2f%%</text>`+"\n", lang.Percentage)
		fmt.Fprintf(&b, `    <rect x="0" y="18" width="250" height="8" rx="4" fill="%s"/>`+"\n", theme.ProgressBarBg)
		fmt.Fprintf(&b, `    <rect x="0" y="18" width="%s" height="8" rx="4" fill="%s"/>`+"\n", num(lang.Percentage/100*barWidth), lang.Color)
		b.WriteString("  </g>\n")
	}

	return closeSVG(&b)
}

func compactCard(langs []models.LanguageStat, theme Theme, opts LanguagesOptions) string {
	height := 125
	startY := 55
	if opts.HideTitle {
		height = 100
		startY = 25
	}

	var b strings.Builder
	openSVG(&b, languagesWidth, height, fmt.Sprintf(`    .title { font: 600 18px %[1]s; fill: %[2]s; }
    .legend-text { font: 400 11px %[1]s; fill: %[3]s; }
`, fontFamily, theme.Title, theme.Text), theme)
	border(&b, theme, languagesWidth, height, opts.HideBorder)
	if !opts.HideTitle {
		b.WriteString(languagesTitle)
	}

	fmt.Fprintf(&b, `  <rect x="25" y="%d" width="250" height="8" rx="4" fill="%s"/>`+"\n", startY, theme.ProgressBarBg)

	offset := 0.0
	for _, lang := range langs {
		w := lang.Percentage / 100 * barWidth
		rx := 0
		if offset == 0 {
			rx = 4
		}
		fmt.Fprintf(&b, `  <rect x="%s" y="%d" width="%s" height="8" fill="%s" rx="%d"/>`+"\n",
			num(25+offset), startY, num(w), lang.Color, rx)
		offset += w
	}

	const cols = 2
	for i, lang := range langs {
		x := 25 + (i%cols)*130
		y := startY + 25 + (i/cols)*20
		fmt.Fprintf(&b, "  <g transform=\"translate(%d, %d)\">\n", x, y)
		fmt.Fprintf(&b, `    <circle cx="6" cy="6" r="5" fill="%s"/>`+"\n", lang.Color)
		fmt.Fprintf(&b, `    <text x="16" y="10" class="legend-text">%s %.1f%%</text>`+"\n", EscapeXML(lang.Name), lang.Percentage)
		b.WriteString("  </g>\n")
	}

	return closeSVG(&b)
}

func donutCard(langs []models.LanguageStat, theme Theme, opts LanguagesOptions) string {
	height := 195
	centerY := 110.0
	legendY := 50
	if opts.HideTitle {
		height = 170
		centerY = 85
		legendY = 25
	}
	const (
		centerX = 85.0
		radius  = 50.0
	)
	innerRadius := 0.0
	if opts.Layout == LayoutDonut {
		innerRadius = 30
	}

	var b strings.Builder
	openSVG(&b, languagesWidth, height, fmt.Sprintf(`    .title { font: 600 18px %[1]s; fill: %[2]s; }
    .legend-text { font: 400 12px %[1]s; fill: %[3]s; }
    .legend-percent { font: 600 12px %[1]s; fill: %[3]s; }
`, fontFamily, theme.Title, theme.Text), theme)
	border(&b, theme, languagesWidth, height, opts.HideBorder)
	if !opts.HideTitle {
		b.WriteString(languagesTitle)
	}

	b.WriteString("  <g>\n")
	angle := -90.0
	for _, lang := range langs {
		slice := lang.Percentage / 100 * 360
		// an arc whose endpoints coincide draws nothing
		if slice >= 360-1e-6 {
			if opts.Layout == LayoutDonut {
				fmt.Fprintf(&b, `    <circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
					num(centerX), num(centerY), num((radius+innerRadius)/2), lang.Color, num(radius-innerRadius))
			} else {
				fmt.Fprintf(&b, `    <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
					num(centerX), num(centerY), num(radius), lang.Color)
			}
			angle += slice
			continue
		}
		startRad := angle * math.Pi / 180
		endRad := (angle + slice) * math.Pi / 180

		x1, y1 := centerX+radius*math.Cos(startRad), centerY+radius*math.Sin(startRad)
		x2, y2 := centerX+radius*math.Cos(endRad), centerY+radius*math.Sin(endRad)
		largeArc := 0
		if slice > 180 {
			largeArc = 1
		}

		if opts.Layout == LayoutDonut {
			ix1, iy1 := centerX+innerRadius*math.Cos(startRad), centerY+innerRadius*math.Sin(startRad)
			ix2, iy2 := centerX+innerRadius*math.Cos(endRad), centerY+innerRadius*math.Sin(endRad)
			fmt.Fprintf(&b, `    <path d="M %s %s A %s %s 0 %d 1 %s %s L %s %s A %s %s 0 %d 0 %s %s Z" fill="%s"/>`+"\n",
				num(x1), num(y1), num(radius), num(radius), largeArc, num(x2), num(y2),
				num(ix2), num(iy2), num(innerRadius), num(innerRadius), largeArc, num(ix1), num(iy1), lang.Color)
		} else {
			fmt.Fprintf(&b, `    <path d="M %s %s L %s %s A %s %s 0 %d 1 %s %s Z" fill="%s"/>`+"\n",
				num(centerX), num(centerY), num(x1), num(y1), num(radius), num(radius), largeArc, num(x2), num(y2), lang.Color)
		}
		angle += slice
	}
	b.WriteString("  </g>\n")

	for i, lang := range langs {
		if i == 6 {
			break
		}
		fmt.Fprintf(&b, "  <g transform=\"translate(160, %d)\">\n", legendY+i*22)
		fmt.Fprintf(&b, `    <circle cx="6" cy="6" r="5" fill="%s"/>`+"\n", lang.Color)
		fmt.Fprintf(&b, `    <text x="16" y="10" class="legend-text">%s</text>`+"\n", EscapeXML(lang.Name))
		fmt.Fprintf(&b, `    <text x="130" y="10" class="legend-percent" text-anchor="end">%.1f%%</text>`+"\n", lang.Percentage)
		b.WriteString("  </g>\n")
	}

	return closeSVG(&b)
}
