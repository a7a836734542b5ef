package display

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gnomegl/gitcards/internal/models"
	"github.com/gnomegl/gitcards/internal/streak"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (use text, json or csv)", s)
}

func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func StatsCSV(w io.Writer, stats *models.UserStats) error {
	return writeCSV(w,
		[]string{"username", "name", "stars", "commits", "prs", "issues", "repos", "contributed_to"},
		[][]string{{
			stats.Username,
			stats.Name,
			strconv.Itoa(stats.TotalStars),
			strconv.Itoa(stats.TotalCommits),
			strconv.Itoa(stats.TotalPRs),
			strconv.Itoa(stats.TotalIssues),
			strconv.Itoa(stats.TotalRepos),
			strconv.Itoa(stats.ContributedTo),
		}})
}

func LanguagesCSV(w io.Writer, langs []models.LanguageStat) error {
	rows := make([][]string, 0, len(langs))
	for _, l := range langs {
		rows = append(rows, []string{
			l.Name,
			strconv.FormatInt(l.Size, 10),
			l.Color,
			strconv.FormatFloat(l.Percentage, 'f', 2, 64),
		})
	}
	return writeCSV(w, []string{"language", "size", "color", "percentage"}, rows)
}

func StreakCSV(w io.Writer, res models.StreakResult) error {
	return writeCSV(w,
		[]string{"total", "current", "current_start", "current_end", "longest", "longest_start", "longest_end"},
		[][]string{{
			strconv.Itoa(res.TotalContributions),
			strconv.Itoa(res.CurrentStreak),
			formatDay(res.CurrentStreakStart),
			formatDay(res.CurrentStreakEnd),
			strconv.Itoa(res.LongestStreak),
			formatDay(res.LongestStreakStart),
			formatDay(res.LongestStreakEnd),
		}})
}

func formatDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(streak.DateLayout)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("error writing CSV rows: %w", err)
	}
	return nil
}
