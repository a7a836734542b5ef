package streak

import (
	"sort"
	"time"

	"github.com/gnomegl/gitcards/internal/models"
)

// Compute normalizes the calendar and scans it. TotalContributions is passed
// through from the source as-is.
func Compute(cal models.ContributionCalendar, today time.Time) (models.StreakResult, error) {
	days, err := Normalize(cal.Weeks)
	if err != nil {
		return models.StreakResult{}, err
	}

	res, err := Scan(days, today)
	if err != nil {
		return models.StreakResult{}, err
	}
	res.TotalContributions = cal.TotalContributions
	return res, nil
}

// Scan computes the longest and current streaks in one forward pass.
//
// The longest streak counts positive days and resets only on a zero day.
// The current streak is the run of positive, date-contiguous days ending at a
// day dated today or yesterday; a zero day or a missing date breaks it. When
// both today and yesterday qualify the longer run wins, ties keep the first.
// Yesterday only counts as a grace day while today has no zero entry: a
// calendar that already records today at zero has no current streak.
//
// days need not be sorted; an unsorted slice is copied and sorted first.
// Negative counts and repeated dates are rejected as in Normalize.
func Scan(days []Day, today time.Time) (models.StreakResult, error) {
	if !sort.SliceIsSorted(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) }) {
		sorted := make([]Day, len(days))
		copy(sorted, days)
		sortDays(sorted)
		days = sorted
	}
	if err := checkDays(days); err != nil {
		return models.StreakResult{}, err
	}

	today = Midnight(today)
	yesterday := today.AddDate(0, 0, -1)

	var (
		res       models.StreakResult
		tempCount int
		tempStart time.Time
		runCount  int
		runStart  time.Time
	)

	for i, day := range days {
		if day.Count <= 0 {
			tempCount = 0
			runCount = 0
			// a recorded zero for today ends the run anchored at yesterday
			if day.Date.Equal(today) {
				res.CurrentStreak = 0
				res.CurrentStreakStart = nil
				res.CurrentStreakEnd = nil
			}
			continue
		}

		if tempCount == 0 {
			tempStart = day.Date
		}
		tempCount++
		if tempCount > res.LongestStreak {
			res.LongestStreak = tempCount
			res.LongestStreakStart = datePtr(tempStart)
			res.LongestStreakEnd = datePtr(day.Date)
		}

		// runCount > 0 means days[i-1] was positive
		if runCount == 0 || !days[i-1].Date.AddDate(0, 0, 1).Equal(day.Date) {
			runCount = 0
			runStart = day.Date
		}
		runCount++

		anchored := day.Date.Equal(today) || day.Date.Equal(yesterday)
		if anchored && runCount > res.CurrentStreak {
			res.CurrentStreak = runCount
			res.CurrentStreakStart = datePtr(runStart)
			res.CurrentStreakEnd = datePtr(day.Date)
		}
	}

	return res, nil
}

func datePtr(t time.Time) *time.Time {
	return &t
}
