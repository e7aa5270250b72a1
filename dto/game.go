package dto

import (
	"time"

	"github.com/playgrove-labs/grove_api/model"
)

type CompleteGameRequest struct {
	Score         int    `json:"score" validate:"gte=0" example:"100"`
	Duration      int    `json:"duration" validate:"gte=0" example:"40"` // seconds
	IsMultiplayer bool   `json:"is_multiplayer" example:"false"`
	Result        string `json:"result" validate:"session_result" example:"win"`
}

func (r CompleteGameRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CompleteGameResponse struct {
	Session              model.GameSession `json:"session"`
	TotalPoints          int               `json:"total_points"`
	Level                int               `json:"level"`
	LeveledUp            bool              `json:"leveled_up"`
	DailyStreak          int               `json:"daily_streak"`
	UnlockedAchievements []string          `json:"unlocked_achievements"`
	UnlockedMilestones   []string          `json:"unlocked_milestones"`
}

type PlayGameResponse struct {
	GameID      string     `json:"game_id"`
	TimesPlayed int        `json:"times_played"`
	StartedAt   time.Time  `json:"started_at"`
	LastPlayed  *time.Time `json:"last_played,omitempty"`
}

type GameStatsResponse struct {
	Game  model.GameDefinition `json:"game"`
	Stats model.GameStats      `json:"stats"`
}

type GameListResponse struct {
	Games    []model.GameDefinition `json:"games"`
	Unlocked []string               `json:"unlocked"`
}
