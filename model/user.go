package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID          string `gorm:"primaryKey"`
	Email       string `gorm:"unique"`
	Username    string `gorm:"unique;not null"`
	Password    string
	Role        string `gorm:"default:user"`
	IsActive    bool   `gorm:"default:true"`
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SessionRecord is the append-only Postgres copy of a completed game
// session, written for leaderboard/analytics surfaces only. The engine
// never reads it back.
type SessionRecord struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"index;not null"`
	GameID        string    `json:"game_id" gorm:"index;not null"`
	Score         int       `json:"score" gorm:"not null"`
	Duration      int       `json:"duration" gorm:"not null"` // seconds
	IsMultiplayer bool      `json:"is_multiplayer" gorm:"not null"`
	Result        string    `json:"result"`
	PointsEarned  int       `json:"points_earned" gorm:"not null"`
	PlayedAt      time.Time `json:"played_at" gorm:"index;not null"`
	CreatedAt     time.Time `json:"created_at"`
}
