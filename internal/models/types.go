package models

import "time"

// ContributionDay mirrors one entry of the GraphQL contribution calendar.
// Date is kept as the raw wire string and parsed by the streak package.
type ContributionDay struct {
	ContributionCount int    `json:"contributionCount"`
	Date              string `json:"date"`
}

type ContributionWeek struct {
	ContributionDays []ContributionDay `json:"contributionDays"`
}

type ContributionCalendar struct {
	TotalContributions int                `json:"totalContributions"`
	Weeks              []ContributionWeek `json:"weeks"`
}

// StreakResult bounds are nil whenever the matching streak is zero.
type StreakResult struct {
	CurrentStreak      int        `json:"current_streak"`
	LongestStreak      int        `json:"longest_streak"`
	TotalContributions int        `json:"total_contributions"`
	CurrentStreakStart *time.Time `json:"current_streak_start,omitempty"`
	CurrentStreakEnd   *time.Time `json:"current_streak_end,omitempty"`
	LongestStreakStart *time.Time `json:"longest_streak_start,omitempty"`
	LongestStreakEnd   *time.Time `json:"longest_streak_end,omitempty"`
}

type UserStats struct {
	Username      string `json:"username"`
	Name          string `json:"name"`
	AvatarURL     string `json:"avatar_url"`
	TotalStars    int    `json:"total_stars"`
	TotalCommits  int    `json:"total_commits"`
	TotalPRs      int    `json:"total_prs"`
	TotalIssues   int    `json:"total_issues"`
	TotalRepos    int    `json:"total_repos"`
	ContributedTo int    `json:"contributed_to"`
}

type LanguageStat struct {
	Name       string  `json:"name"`
	Size       int64   `json:"size"`
	Color      string  `json:"color"`
	Percentage float64 `json:"percentage"`
}
