package card

import (
	"strings"
	"testing"
	"time"

	"github.com/gnomegl/gitcards/internal/models"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFormatDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end *time.Time
		want       string
	}{
		{"missing start", nil, date(2024, 1, 2), "N/A"},
		{"missing end", date(2024, 1, 2), nil, "N/A"},
		{"single day", date(2024, 1, 2), date(2024, 1, 2), "Jan 2"},
		{"same month", date(2024, 1, 2), date(2024, 1, 9), "Jan 2 - 9"},
		{"same year", date(2024, 1, 2), date(2024, 2, 3), "Jan 2 - Feb 3"},
		{"across years", date(2023, 12, 30), date(2024, 1, 2), "Dec 30, 2023 - Jan 2, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateRange(tt.start, tt.end))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1.0k", FormatNumber(1000))
	assert.Equal(t, "12.3k", FormatNumber(12345))
	assert.Equal(t, "2.5M", FormatNumber(2500000))
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "7", FormatThousands(7))
	assert.Equal(t, "1,234", FormatThousands(1234))
	assert.Equal(t, "1,234,567", FormatThousands(1234567))
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "&lt;b&gt; &amp; &quot;q&quot; &#39;s&#39;", EscapeXML(`<b> & "q" 's'`))
}

func TestCalculateRank(t *testing.T) {
	tests := []struct {
		stats models.UserStats
		want  string
	}{
		{models.UserStats{}, "D"},
		{models.UserStats{TotalCommits: 25}, "C"},
		{models.UserStats{TotalStars: 50}, "B"},
		{models.UserStats{TotalPRs: 100, TotalCommits: 200}, "A"},
		{models.UserStats{TotalStars: 1250}, "A++"},
		{models.UserStats{TotalStars: 2500}, "S"},
		{models.UserStats{TotalStars: 5000}, "S+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateRank(&tt.stats).Level, "score %d", Score(&tt.stats))
	}
	assert.Equal(t, 100, CalculateRank(&models.UserStats{}).Percentile)
}

func TestGetTheme(t *testing.T) {
	assert.Equal(t, themes["light"], GetTheme("Light"))
	assert.Equal(t, themes[DefaultTheme], GetTheme("no-such-theme"))
	assert.Equal(t, themes[DefaultTheme], GetTheme(""))
	assert.True(t, HasTheme("dracula"))
	assert.False(t, HasTheme("solarized"))
}

func TestParseLayout(t *testing.T) {
	assert.Equal(t, LayoutCompact, ParseLayout("compact"))
	assert.Equal(t, LayoutDonut, ParseLayout("DONUT"))
	assert.Equal(t, LayoutPie, ParseLayout("pie"))
	assert.Equal(t, LayoutNormal, ParseLayout("bogus"))
	assert.Equal(t, LayoutNormal, ParseLayout(""))
}

func TestStatsCard(t *testing.T) {
	stats := &models.UserStats{Name: "Tom & Jerry", TotalStars: 1500, TotalCommits: 42}
	theme := GetTheme("dark")

	svg := StatsCard(stats, theme, StatsOptions{ShowIcons: true, LineHeight: 25})
	assert.True(t, strings.HasPrefix(svg, `<svg width="495" height="195"`))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, "Tom &amp; Jerry's GitHub Stats")
	assert.Contains(t, svg, ">1.5k<")
	assert.Contains(t, svg, "Total Commits (last year):")
	assert.Contains(t, svg, `class="rank-text"`)
	assert.Contains(t, svg, theme.Border)

	bare := StatsCard(stats, theme, StatsOptions{HideTitle: true, HideRank: true, HideBorder: true, LineHeight: 25})
	assert.True(t, strings.HasPrefix(bare, `<svg width="495" height="170"`))
	assert.NotContains(t, bare, "GitHub Stats")
	assert.NotContains(t, bare, `class="rank-text"`)
	assert.NotContains(t, bare, `stroke="`+theme.Border+`"`)
	assert.NotContains(t, bare, `viewBox="0 0 16 16"`)
}

func TestLanguagesCard(t *testing.T) {
	langs := []models.LanguageStat{
		{Name: "Go", Color: "#00ADD8", Percentage: 60},
		{Name: "C++", Color: "#f34b7d", Percentage: 30},
		{Name: "Shell", Color: "#89e051", Percentage: 10},
	}
	theme := GetTheme("light")

	t.Run("normal", func(t *testing.T) {
		svg := LanguagesCard(langs, theme, LanguagesOptions{Layout: LayoutNormal})
		assert.True(t, strings.HasPrefix(svg, `<svg width="300" height="190"`))
		assert.Contains(t, svg, "Most Used Languages")
		assert.Contains(t, svg, "60.00%")
		assert.Contains(t, svg, `width="150" height="8"`)
	})

	t.Run("langs count", func(t *testing.T) {
		svg := LanguagesCard(langs, theme, LanguagesOptions{Layout: LayoutNormal, LangsCount: 1, HideTitle: true})
		assert.True(t, strings.HasPrefix(svg, `<svg width="300" height="85"`))
		assert.NotContains(t, svg, "Shell")
		assert.NotContains(t, svg, "Most Used Languages")
	})

	t.Run("compact", func(t *testing.T) {
		svg := LanguagesCard(langs, theme, LanguagesOptions{Layout: LayoutCompact})
		assert.True(t, strings.HasPrefix(svg, `<svg width="300" height="125"`))
		assert.Contains(t, svg, "Go 60.0%")
		assert.Contains(t, svg, `x="175" y="55" width="75"`)
	})

	t.Run("donut", func(t *testing.T) {
		svg := LanguagesCard(langs, theme, LanguagesOptions{Layout: LayoutDonut})
		assert.True(t, strings.HasPrefix(svg, `<svg width="300" height="195"`))
		assert.Equal(t, 3, strings.Count(svg, "<path "))
		assert.Contains(t, svg, "A 30 30")
	})

	t.Run("pie", func(t *testing.T) {
		svg := LanguagesCard(langs, theme, LanguagesOptions{Layout: LayoutPie})
		assert.NotContains(t, svg, "A 30 30")
		assert.Contains(t, svg, "M 85 110 L")
	})

	t.Run("single language fills the circle", func(t *testing.T) {
		only := []models.LanguageStat{{Name: "Go", Color: "#00ADD8", Percentage: 100}}

		pie := LanguagesCard(only, theme, LanguagesOptions{Layout: LayoutPie})
		assert.NotContains(t, pie, "<path ")
		assert.Contains(t, pie, `<circle cx="85" cy="110" r="50" fill="#00ADD8"/>`)

		donut := LanguagesCard(only, theme, LanguagesOptions{Layout: LayoutDonut, HideTitle: true})
		assert.NotContains(t, donut, "<path ")
		assert.Contains(t, donut, `<circle cx="85" cy="85" r="40" fill="none" stroke="#00ADD8" stroke-width="20"/>`)
	})
}

func TestStreakCard(t *testing.T) {
	theme := GetTheme("dark")
	res := models.StreakResult{
		CurrentStreak:      3,
		LongestStreak:      10,
		TotalContributions: 1234,
		CurrentStreakStart: date(2024, 1, 4),
		CurrentStreakEnd:   date(2024, 1, 6),
		LongestStreakStart: date(2023, 12, 28),
		LongestStreakEnd:   date(2024, 1, 6),
	}

	svg := StreakCard(res, theme, StreakOptions{})
	assert.True(t, strings.HasPrefix(svg, `<svg width="495" height="175"`))
	assert.Contains(t, svg, "GitHub Contribution Streak")
	assert.Contains(t, svg, ">1,234<")
	assert.Contains(t, svg, "Jan 4 - 6")
	assert.Contains(t, svg, "Dec 28, 2023 - Jan 6, 2024")
	assert.Contains(t, svg, "M12 23a7.5")

	idle := StreakCard(models.StreakResult{}, theme, StreakOptions{HideTitle: true})
	assert.True(t, strings.HasPrefix(idle, `<svg width="495" height="150"`))
	assert.NotContains(t, idle, "M12 23a7.5")
	assert.Equal(t, 2, strings.Count(idle, "N/A"))
}

func TestErrorCard(t *testing.T) {
	svg := ErrorCard("user <ghost> not found")
	assert.Contains(t, svg, `width="400" height="100"`)
	assert.Contains(t, svg, "user &lt;ghost&gt; not found")

	long := ErrorCard(strings.Repeat("x", 100))
	assert.Contains(t, long, ">"+strings.Repeat("x", MaxErrorLength)+"<")
	assert.NotContains(t, long, strings.Repeat("x", MaxErrorLength+1))
}
