package streak

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gnomegl/gitcards/internal/models"
)

// DateLayout is the day format used by the contribution calendar.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate   = errors.New("invalid contribution date")
	ErrNegativeCount = errors.New("negative contribution count")
	ErrDuplicateDate = errors.New("duplicate contribution date")
)

// Day is a single calendar date with its contribution count. Date is always
// midnight UTC so days compare with Equal and step with AddDate.
type Day struct {
	Date  time.Time
	Count int
}

// Normalize flattens the week/day structure into one ascending sequence.
// Upstream ordering is never trusted.
func Normalize(weeks []models.ContributionWeek) ([]Day, error) {
	days := make([]Day, 0, len(weeks)*7)
	for _, week := range weeks {
		for _, cd := range week.ContributionDays {
			date, err := ParseDate(cd.Date)
			if err != nil {
				return nil, err
			}
			if cd.ContributionCount < 0 {
				return nil, fmt.Errorf("%w: %d on %s", ErrNegativeCount, cd.ContributionCount, date.Format(DateLayout))
			}
			days = append(days, Day{Date: date, Count: cd.ContributionCount})
		}
	}

	sortDays(days)

	if err := checkDays(days); err != nil {
		return nil, err
	}
	return days, nil
}

// checkDays rejects negative counts and repeated dates. days must be sorted.
func checkDays(days []Day) error {
	for i, d := range days {
		if d.Count < 0 {
			return fmt.Errorf("%w: %d on %s", ErrNegativeCount, d.Count, d.Date.Format(DateLayout))
		}
		if i > 0 && d.Date.Equal(days[i-1].Date) {
			return fmt.Errorf("%w: %s", ErrDuplicateDate, d.Date.Format(DateLayout))
		}
	}
	return nil
}

// ParseDate accepts a plain calendar date or an RFC3339 timestamp. Time of
// day is dropped; the calendar day is the one written in the timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: missing date", ErrInvalidDate)
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Midnight(t), nil
}

// Midnight returns the calendar day of t (in t's own location) as midnight UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sortDays(days []Day) {
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
}
