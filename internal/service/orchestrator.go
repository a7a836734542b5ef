package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnomegl/gitcards/internal/metrics"
	"github.com/gnomegl/gitcards/internal/models"
	"github.com/gnomegl/gitcards/internal/streak"
)

var ErrNoUsername = errors.New("GitHub username is not configured")

// OpError records which step failed for which user. Err is the source error.
type OpError struct {
	Op       string
	Username string
	Err      error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s for %s: %v", e.Op, e.Username, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func (o *Orchestrator) opError(op string, err error) error {
	return &OpError{Op: op, Username: o.username, Err: err}
}

// DataSource is the GitHub side of every card. *github.Client satisfies it.
type DataSource interface {
	FetchUserStats(ctx context.Context, username string, now time.Time) (*models.UserStats, error)
	FetchLanguageStats(ctx context.Context, username string) ([]models.LanguageStat, error)
	FetchContributionCalendar(ctx context.Context, username string) (models.ContributionCalendar, error)
}

type Orchestrator struct {
	source   DataSource
	username string
	logger   *slog.Logger
}

func NewOrchestrator(source DataSource, username string, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		source:   source,
		username: username,
		logger:   logger,
	}
}

func (o *Orchestrator) Username() string {
	return o.username
}

func (o *Orchestrator) ready() error {
	if o.source == nil {
		return errors.New("GitHub client is not configured")
	}
	if o.username == "" {
		return ErrNoUsername
	}
	return nil
}

func (o *Orchestrator) Stats(ctx context.Context, now time.Time) (*models.UserStats, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}

	stats, err := o.source.FetchUserStats(ctx, o.username, now)
	if err != nil {
		return nil, o.opError("fetching stats", err)
	}
	o.logger.Debug("fetched user stats", "user", o.username, "stars", stats.TotalStars, "commits", stats.TotalCommits)
	return stats, nil
}

func (o *Orchestrator) Languages(ctx context.Context) ([]models.LanguageStat, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}

	langs, err := o.source.FetchLanguageStats(ctx, o.username)
	if err != nil {
		return nil, o.opError("fetching languages", err)
	}
	o.logger.Debug("fetched language stats", "user", o.username, "languages", len(langs))
	return langs, nil
}

// Streak fetches the whole contribution calendar before computing streaks
// relative to today.
func (o *Orchestrator) Streak(ctx context.Context, today time.Time) (models.StreakResult, error) {
	if err := o.ready(); err != nil {
		return models.StreakResult{}, err
	}

	cal, err := o.source.FetchContributionCalendar(ctx, o.username)
	if err != nil {
		return models.StreakResult{}, o.opError("fetching contributions", err)
	}

	res, err := streak.Compute(cal, today)
	if err != nil {
		return models.StreakResult{}, o.opError("computing streak", err)
	}

	metrics.StreakDays.WithLabelValues("current").Set(float64(res.CurrentStreak))
	metrics.StreakDays.WithLabelValues("longest").Set(float64(res.LongestStreak))
	metrics.ContributionsTotal.Set(float64(res.TotalContributions))

	o.logger.Debug("computed streak", "user", o.username,
		"current", res.CurrentStreak, "longest", res.LongestStreak, "total", res.TotalContributions)
	return res, nil
}
