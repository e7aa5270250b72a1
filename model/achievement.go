package model

import "time"

const ScopeAllGames = "all"

// AchievementRequirement is one condition, e.g. play_count >= 10.
type AchievementRequirement struct {
	Type   string `json:"type"`
	Target int    `json:"target"`
}

// Achievement is a per-player instance of a catalog definition. Progress is
// recomputed from the session ledger on every completed session; unlocking
// is a one-way transition.
type Achievement struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Description  string                   `json:"description"`
	Scope        string                   `json:"scope"` // game id or ScopeAllGames
	Requirements []AchievementRequirement `json:"requirements"`
	PointReward  int                      `json:"point_reward"`
	Progress     int                      `json:"progress"`
	MaxProgress  int                      `json:"max_progress"`
	UnlockedAt   *time.Time               `json:"unlocked_at,omitempty"`
}

func (a *Achievement) Unlocked() bool {
	return a.UnlockedAt != nil
}

// MilestoneReward is one grant applied when a milestone unlocks.
type MilestoneReward struct {
	Type   string `json:"type"`
	Points int    `json:"points,omitempty"`
	GameID string `json:"game_id,omitempty"`
	Seeds  int    `json:"seeds,omitempty"`
}

// Milestone is an account-wide progression gate. Requirements source from
// aggregates (total points, sessions, streak, wins, play time) rather than
// per-game ledgers.
type Milestone struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	RequirementType string            `json:"requirement_type"`
	Target          int               `json:"target"`
	Rewards         []MilestoneReward `json:"rewards"`
	Progress        int               `json:"progress"`
	Unlocked        bool              `json:"unlocked"`
	UnlockedAt      *time.Time        `json:"unlocked_at,omitempty"`
}
