package model

import "time"

// GameDefinition is an immutable catalog entry. The engine never mutates
// these; unlock state lives on the player.
type GameDefinition struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	StreakMultiplier    float64 `json:"streak_multiplier"`
	SupportsMultiplayer bool    `json:"supports_multiplayer"`
	MultiplayerBonus    int     `json:"multiplayer_bonus"`
	UnlockedByDefault   bool    `json:"unlocked_by_default"`
	UnlockRequirement   string  `json:"unlock_requirement,omitempty"`
}

// GameSession is one completed play, append-only once recorded.
type GameSession struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	GameID        string    `json:"game_id"`
	Score         int       `json:"score"`
	Duration      int       `json:"duration"` // seconds
	IsMultiplayer bool      `json:"is_multiplayer"`
	Result        string    `json:"result"`
	PointsEarned  int       `json:"points_earned"`
	PlayedAt      time.Time `json:"played_at"`
}

// GameStats is the per-game running aggregate for one player.
type GameStats struct {
	GameID       string     `json:"game_id"`
	TimesPlayed  int        `json:"times_played"`
	BestScore    int        `json:"best_score"`
	TotalPoints  int        `json:"total_points"`
	LastPlayedAt *time.Time `json:"last_played_at,omitempty"`
}
