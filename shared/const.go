package shared

const (
	UserID = "user_id"

	// Session results
	ResultWin  = "win"
	ResultLose = "lose"
	ResultDraw = "draw"
	ResultNone = "none"

	// Streak types
	StreakDaily           = "daily_play"
	StreakMultiplayerWins = "multiplayer_wins"

	// Achievement / milestone requirement types
	RequirementPlayCount       = "play_count"
	RequirementHighScore       = "high_score"
	RequirementMultiplayerWins = "multiplayer_wins"
	RequirementPerfectScore    = "perfect_score"
	RequirementWinStreak       = "win_streak"
	RequirementTotalPoints     = "total_points"
	RequirementTotalSessions   = "total_sessions"
	RequirementDailyStreak     = "daily_streak"
	RequirementPlayTime        = "play_time"

	// Milestone reward types
	RewardPoints     = "points"
	RewardGameUnlock = "game_unlock"
	RewardTreeSeeds  = "tree_seeds"

	// Match lifecycle
	MatchWaiting    = "waiting"
	MatchInProgress = "in_progress"
	MatchCompleted  = "completed"
	MatchCancelled  = "cancelled"

	// Tree growth stages, ordered
	StageSeed    = "seed"
	StageSprout  = "sprout"
	StageSapling = "sapling"
	StageYoung   = "young"
	StageMature  = "mature"
	StageAncient = "ancient"

	// Tree unlock requirement kinds
	TreeUnlockLevel            = "level"
	TreeUnlockMultiplayerWins  = "multiplayer_wins"
	TreeUnlockAchievementCount = "achievement_count"
)
