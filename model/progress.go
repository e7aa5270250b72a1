package model

import "time"

// Streak counts consecutive qualifying days or events of one type.
// CurrentStreak may reset; LongestStreak only grows.
type Streak struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastActivity  *time.Time `json:"last_activity,omitempty"`
	Multiplier    float64    `json:"multiplier"`
}

// LevelTier is one row of the fixed level lookup table.
type LevelTier struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// PlayerLevel tracks the single monotonically advancing level.
type PlayerLevel struct {
	Level           int      `json:"level"`
	Title           string   `json:"title"`
	Icon            string   `json:"icon"`
	PointsRequired  int      `json:"points_required"`
	UnlockedGames   []string `json:"unlocked_games"`
	UnlockedBonuses []string `json:"unlocked_bonuses"`
}

// PlayerProgress is the full in-memory progression state for one player.
// Owned exclusively by the progression service; callers only see copies.
type PlayerProgress struct {
	UserID        string                  `json:"user_id"`
	TotalPoints   int                     `json:"total_points"`
	TotalPlayTime int                     `json:"total_play_time"` // seconds
	TreeSeeds     int                     `json:"tree_seeds"`
	Level         PlayerLevel             `json:"level"`
	Sessions      []GameSession           `json:"-"`
	GameStats     map[string]*GameStats   `json:"-"`
	Streaks       map[string]*Streak      `json:"-"`
	Achievements  map[string]*Achievement `json:"-"`
	Milestones    map[string]*Milestone   `json:"-"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}
