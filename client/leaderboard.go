package client

import (
	"context"
	"net/url"
	"strconv"
)

// Leaderboard operations - all methods operate directly on Client

// LeaderboardParams filters the live leaderboard.
type LeaderboardParams struct {
	Limit      int
	CourseName string
}

// GetLeaderboard returns the live top-creators leaderboard, refreshed daily
// by the backend.
func (c *Client) GetLeaderboard(ctx context.Context, params LeaderboardParams) ([]LeaderboardEntry, error) {
	q := url.Values{}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.CourseName != "" {
		q.Set("course_name", params.CourseName)
	}
	var entries []LeaderboardEntry
	if err := c.get(ctx, "/leaderboard/", q, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetWeeklyLeaderboard returns the frozen snapshot for the week starting at
// weekStart (Monday, YYYY-MM-DD). Empty weekStart selects the current week.
func (c *Client) GetWeeklyLeaderboard(ctx context.Context, weekStart string) (*WeeklyLeaderboard, error) {
	q := url.Values{}
	if weekStart != "" {
		q.Set("week_start", weekStart)
	}
	var wl WeeklyLeaderboard
	if err := c.get(ctx, "/leaderboard/weekly/", q, &wl); err != nil {
		return nil, err
	}
	return &wl, nil
}

// GetLearnerStats returns one learner's aggregate stats with rank.
func (c *Client) GetLearnerStats(ctx context.Context, learnerUID string) (*LeaderboardEntry, error) {
	if learnerUID == "" {
		return nil, validationError("learner uid is required")
	}
	var entry LeaderboardEntry
	if err := c.get(ctx, "/leaderboard/"+learnerUID+"/", nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
