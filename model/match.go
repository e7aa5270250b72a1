package model

import "time"

// MatchPlayerResult is a ranked per-player outcome of a completed match.
type MatchPlayerResult struct {
	UserID   string `json:"user_id"`
	Score    int    `json:"score"`
	Points   int    `json:"points"`
	Position int    `json:"position"`
}

// MultiplayerMatch is a two-player match keyed by a short room code.
// Lifecycle: waiting -> in_progress -> completed | cancelled.
type MultiplayerMatch struct {
	ID          string              `json:"id"`
	GameID      string              `json:"game_id"`
	RoomCode    string              `json:"room_code"`
	Players     []string            `json:"players"`
	Status      string              `json:"status"`
	BonusPoints int                 `json:"bonus_points"` // catalog snapshot at creation
	Scores      map[string]int      `json:"scores,omitempty"`
	Results     []MatchPlayerResult `json:"results,omitempty"`
	Winner      string              `json:"winner,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	StartedAt   *time.Time          `json:"started_at,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
}

func (m *MultiplayerMatch) Active() bool {
	return m.Status == "waiting" || m.Status == "in_progress"
}
