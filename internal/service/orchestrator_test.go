package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gnomegl/gitcards/internal/models"
	"github.com/gnomegl/gitcards/internal/streak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	stats    *models.UserStats
	langs    []models.LanguageStat
	calendar models.ContributionCalendar
	err      error

	calls []string
}

func (f *fakeSource) FetchUserStats(_ context.Context, username string, _ time.Time) (*models.UserStats, error) {
	f.calls = append(f.calls, "stats:"+username)
	return f.stats, f.err
}

func (f *fakeSource) FetchLanguageStats(_ context.Context, username string) ([]models.LanguageStat, error) {
	f.calls = append(f.calls, "languages:"+username)
	return f.langs, f.err
}

func (f *fakeSource) FetchContributionCalendar(_ context.Context, username string) (models.ContributionCalendar, error) {
	f.calls = append(f.calls, "calendar:"+username)
	return f.calendar, f.err
}

func week(start string, counts ...int) models.ContributionWeek {
	d, _ := time.Parse(streak.DateLayout, start)
	var w models.ContributionWeek
	for i, c := range counts {
		w.ContributionDays = append(w.ContributionDays, models.ContributionDay{
			Date:              d.AddDate(0, 0, i).Format(streak.DateLayout),
			ContributionCount: c,
		})
	}
	return w
}

func TestOrchestrator_Streak(t *testing.T) {
	src := &fakeSource{calendar: models.ContributionCalendar{
		TotalContributions: 9,
		Weeks:              []models.ContributionWeek{week("2024-01-01", 1, 0, 2, 3, 3)},
	}}
	o := NewOrchestrator(src, "octocat", nil)

	res, err := o.Streak(context.Background(), time.Date(2024, 1, 6, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, []string{"calendar:octocat"}, src.calls)
	assert.Equal(t, 3, res.CurrentStreak)
	assert.Equal(t, 3, res.LongestStreak)
	assert.Equal(t, 9, res.TotalContributions)
	require.NotNil(t, res.CurrentStreakStart)
	assert.Equal(t, "2024-01-03", res.CurrentStreakStart.Format(streak.DateLayout))
}

func TestOrchestrator_StreakInvalidCalendar(t *testing.T) {
	src := &fakeSource{calendar: models.ContributionCalendar{
		Weeks: []models.ContributionWeek{{ContributionDays: []models.ContributionDay{{Date: "yesterday", ContributionCount: 1}}}},
	}}
	o := NewOrchestrator(src, "octocat", nil)

	_, err := o.Streak(context.Background(), time.Now())
	assert.ErrorIs(t, err, streak.ErrInvalidDate)
}

func TestOrchestrator_WrapsSourceErrors(t *testing.T) {
	boom := errors.New("boom")
	o := NewOrchestrator(&fakeSource{err: boom}, "octocat", nil)

	_, err := o.Stats(context.Background(), time.Now())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "octocat")

	_, err = o.Languages(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = o.Streak(context.Background(), time.Now())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "fetching contributions for octocat: boom", err.Error())

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "fetching contributions", opErr.Op)
	assert.Equal(t, "octocat", opErr.Username)
	assert.Equal(t, boom, opErr.Err)
}

func TestOrchestrator_RequiresUsername(t *testing.T) {
	src := &fakeSource{}
	o := NewOrchestrator(src, "", nil)

	_, err := o.Stats(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrNoUsername)
	_, err = o.Languages(context.Background())
	assert.ErrorIs(t, err, ErrNoUsername)
	_, err = o.Streak(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrNoUsername)
	assert.Empty(t, src.calls)
}

func TestOrchestrator_PassesThrough(t *testing.T) {
	src := &fakeSource{
		stats: &models.UserStats{Username: "octocat", TotalStars: 5},
		langs: []models.LanguageStat{{Name: "Go", Percentage: 100}},
	}
	o := NewOrchestrator(src, "octocat", nil)

	stats, err := o.Stats(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalStars)

	langs, err := o.Languages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, src.langs, langs)
	assert.Equal(t, "octocat", o.Username())
}
