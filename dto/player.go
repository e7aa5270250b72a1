package dto

import (
	"time"

	"github.com/playgrove-labs/grove_api/model"
)

type PlayerStatsResponse struct {
	UserID        string              `json:"user_id"`
	TotalPoints   int                 `json:"total_points"`
	TotalSessions int                 `json:"total_sessions"`
	TotalPlayTime int                 `json:"total_play_time"` // seconds
	TreeSeeds     int                 `json:"tree_seeds"`
	Level         model.PlayerLevel   `json:"level"`
	PointsToNext  int                 `json:"points_to_next_level"`
	DailyStreak   model.Streak        `json:"daily_streak"`
	Achievements  []model.Achievement `json:"achievements"`
	Milestones    []model.Milestone   `json:"milestones"`
}

type MultiplayerStatsResponse struct {
	UserID        string       `json:"user_id"`
	MatchesPlayed int          `json:"matches_played"`
	Wins          int          `json:"wins"`
	Losses        int          `json:"losses"`
	Draws         int          `json:"draws"`
	WinStreak     model.Streak `json:"win_streak"`
}

type CheckinResponse struct {
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	PointsEarned  int       `json:"points_earned"`
	TotalPoints   int       `json:"total_points"`
	CheckedInAt   time.Time `json:"checked_in_at"`
	AlreadyToday  bool      `json:"already_today"`
}

type LeaderboardEntry struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Points   int    `json:"points"`
	Rank     int    `json:"rank"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int                `json:"total"`
}

type ShareRequest struct {
	Type string `json:"type" validate:"required,oneof=achievement level_up tree_growth general" example:"level_up"`
}

func (r ShareRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ShareResponse struct {
	ShareURL   string   `json:"share_url"`
	ShareImage string   `json:"share_image"`
	ShareText  string   `json:"share_text"`
	Platforms  []string `json:"platforms"`
}
