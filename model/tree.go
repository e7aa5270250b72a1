package model

import "time"

// TreeUnlockRequirement gates planting a tree. The tree engine does not
// re-validate it on unlock; callers check it first.
type TreeUnlockRequirement struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// TreeDefinition is the immutable catalog entry for a tree species.
type TreeDefinition struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	Type              string                 `json:"type"`
	Rarity            string                 `json:"rarity"`
	MaxHealth         int                    `json:"max_health"`
	MaxDailyWater     int                    `json:"max_daily_water"`
	UnlockedByDefault bool                   `json:"unlocked_by_default"`
	UnlockRequirement *TreeUnlockRequirement `json:"unlock_requirement,omitempty"`
	// LevelRewards maps tree level to a one-time point grant.
	LevelRewards map[int]int `json:"level_rewards,omitempty"`
}

// TreeContributor is the per-(tree, user) watering ledger entry. Upserted,
// never duplicated.
type TreeContributor struct {
	UserID         string    `json:"user_id"`
	WaterGiven     int       `json:"water_given"`
	PointsEarned   int       `json:"points_earned"`
	LastContribute time.Time `json:"last_contribute"`
}

// CommunityTree is the cooperative growth state. Stage, level and total
// water only move forward once the tree is unlocked.
type CommunityTree struct {
	ID             string             `json:"id"`
	DefinitionID   string             `json:"definition_id"`
	Level          int                `json:"level"`
	Health         int                `json:"health"`
	GrowthStage    string             `json:"growth_stage"`
	TotalWater     int                `json:"total_water"`
	WaterToday     int                `json:"water_today"`
	DailyWaterUsed int                `json:"daily_water_used"`
	Unlocked       bool               `json:"unlocked"`
	PlantedAt      *time.Time         `json:"planted_at,omitempty"`
	LastWateredAt  *time.Time         `json:"last_watered_at,omitempty"`
	Contributors   []*TreeContributor `json:"contributors"`
	// granted levels guard the reward table against double grants
	GrantedLevels map[int]bool `json:"-"`
}
