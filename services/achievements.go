package services

import (
	"sort"
	"time"

	"github.com/playgrove-labs/grove_api/model"
	"github.com/playgrove-labs/grove_api/shared"
)

// Achievement and milestone definitions. Each player gets their own
// instances; progress is always recomputed from the full session ledger so
// evaluation never mutates what it is still reading.

func defaultAchievements() []model.Achievement {
	return []model.Achievement{
		{
			ID: "memory-novice", Name: "Memory Novice",
			Description: "Complete 5 rounds of Memory Match",
			Scope:       "memory-game",
			Requirements: []model.AchievementRequirement{
				{Type: shared.RequirementPlayCount, Target: 5},
			},
			PointReward: 50,
		},
		{
			ID: "memory-master", Name: "Memory Master",
			Description: "Score 200 or more in a Memory Match round",
			Scope:       "memory-game",
			Requirements: []model.AchievementRequirement{
				{Type: shared.RequirementHighScore, Target: 200},
			},
			PointReward: 100,
		},
		{
			ID: "quiz-whiz", Name: "Quiz Whiz",
			Description: "Complete 10 Math Quiz rounds",
			Scope:       "math-quiz",
			Requirements: []model.AchievementRequirement{
				{Type: shared.RequirementPlayCount, Target: 10},
			},
			PointReward: 75,
		},
		{
			ID: "perfectionist", Name: "Perfectionist",
			Description: "Finish 3 Math Quiz rounds with a perfect score",
			Scope:       "math-quiz",
			Requirements: []model.AchievementRequirement{
				{Type: shared.RequirementPerfectScore, Target: 3},
			},
			PointReward: 150,
		},
		{
			ID: "first-steps", Name: "First Steps",
			Description: "Complete your first game",
			Scope:       model.ScopeAllGames,
			Requirements: []model.AchievementRequirement{
				{Type: shared.RequirementPlayCount, Target: 1},
			},
			PointReward: 25,
		},
		{
			ID: "dedicated-player", Name: "Dedicated Player",
			Description: "Complete 50 games of any kind",
			Scope:       model.ScopeAllGames,
			Requirements: []model.AchievementRequirement{
				{Type: shared.RequirementPlayCount, Target: 50},
			},
			PointReward: 200,
		},
		{
			ID: "duelist", Name: "Duelist",
			Description: "Win 5 multiplayer games",
			Scope:       model.ScopeAllGames,
			Requirements: []model.AchievementRequirement{
				{Type: shared.RequirementMultiplayerWins, Target: 5},
			},
			PointReward: 100,
		},
		{
			ID: "unstoppable", Name: "Unstoppable",
			Description: "Win 5 multiplayer games in a row",
			Scope:       model.ScopeAllGames,
			Requirements: []model.AchievementRequirement{
				{Type: shared.RequirementWinStreak, Target: 5},
			},
			PointReward: 250,
		},
	}
}

func defaultMilestones() []model.Milestone {
	return []model.Milestone{
		{
			ID: "points-500", Name: "Point Collector",
			Description:     "Earn 500 points in total",
			RequirementType: shared.RequirementTotalPoints, Target: 500,
			Rewards: []model.MilestoneReward{
				{Type: shared.RewardPoints, Points: 50},
			},
		},
		{
			ID: "points-5000", Name: "Point Hoarder",
			Description:     "Earn 5000 points in total",
			RequirementType: shared.RequirementTotalPoints, Target: 5000,
			Rewards: []model.MilestoneReward{
				{Type: shared.RewardPoints, Points: 250},
				{Type: shared.RewardTreeSeeds, Seeds: 3},
			},
		},
		{
			ID: "sessions-25", Name: "Regular",
			Description:     "Complete 25 game sessions",
			RequirementType: shared.RequirementTotalSessions, Target: 25,
			Rewards: []model.MilestoneReward{
				{Type: shared.RewardPoints, Points: 100},
				{Type: shared.RewardGameUnlock, GameID: "color-match"},
			},
		},
		{
			ID: "streak-7", Name: "One Week Strong",
			Description:     "Keep a 7 day play streak",
			RequirementType: shared.RequirementDailyStreak, Target: 7,
			Rewards: []model.MilestoneReward{
				{Type: shared.RewardPoints, Points: 150},
				{Type: shared.RewardTreeSeeds, Seeds: 1},
			},
		},
		{
			ID: "mp-wins-10", Name: "Arena Veteran",
			Description:     "Win 10 multiplayer matches",
			RequirementType: shared.RequirementMultiplayerWins, Target: 10,
			Rewards: []model.MilestoneReward{
				{Type: shared.RewardPoints, Points: 200},
				{Type: shared.RewardGameUnlock, GameID: "speed-tap"},
			},
		},
		{
			ID: "playtime-10h", Name: "Time Well Spent",
			Description:     "Play for 10 hours in total",
			RequirementType: shared.RequirementPlayTime, Target: 36000,
			Rewards: []model.MilestoneReward{
				{Type: shared.RewardPoints, Points: 300},
			},
		},
	}
}

// ==================== ACHIEVEMENT EVALUATION ====================

// achievementProgress derives progress for one requirement from the entire
// ledger. The triggering session only matters for high_score, which per the
// reference reflects the score just posted.
func achievementProgress(p *model.PlayerProgress, scope string, req model.AchievementRequirement, session *model.GameSession) int {
	switch req.Type {
	case shared.RequirementPlayCount:
		return countSessions(p, scope)
	case shared.RequirementHighScore:
		if session != nil {
			return session.Score
		}
		return 0
	case shared.RequirementMultiplayerWins:
		return countMultiplayerWins(p)
	case shared.RequirementPerfectScore:
		return countPerfectScores(p, scope)
	case shared.RequirementWinStreak:
		if s, ok := p.Streaks[shared.StreakMultiplayerWins]; ok {
			return s.LongestStreak
		}
		return 0
	}
	return 0
}

func countSessions(p *model.PlayerProgress, scope string) int {
	if scope == model.ScopeAllGames {
		return len(p.Sessions)
	}
	n := 0
	for i := range p.Sessions {
		if p.Sessions[i].GameID == scope {
			n++
		}
	}
	return n
}

func countMultiplayerWins(p *model.PlayerProgress) int {
	n := 0
	for i := range p.Sessions {
		if p.Sessions[i].IsMultiplayer && p.Sessions[i].Result == shared.ResultWin {
			n++
		}
	}
	return n
}

const perfectScore = 100

func countPerfectScores(p *model.PlayerProgress, scope string) int {
	n := 0
	for i := range p.Sessions {
		if scope != model.ScopeAllGames && p.Sessions[i].GameID != scope {
			continue
		}
		if p.Sessions[i].Score >= perfectScore {
			n++
		}
	}
	return n
}

// evaluateAchievements recomputes every achievement in scope of the session
// and unlocks those whose requirements are all met. Returns newly unlocked
// ids; re-evaluating an unlocked achievement is a no-op.
func evaluateAchievements(p *model.PlayerProgress, session *model.GameSession, now time.Time) []string {
	var unlocked []string

	for _, a := range p.Achievements {
		if a.Unlocked() {
			continue
		}
		if a.Scope != model.ScopeAllGames && a.Scope != session.GameID {
			continue
		}

		met := true
		for i, req := range a.Requirements {
			progress := achievementProgress(p, a.Scope, req, session)
			if progress < req.Target {
				met = false
			}
			if i == 0 {
				if progress > a.MaxProgress {
					progress = a.MaxProgress
				}
				if progress > a.Progress {
					a.Progress = progress
				}
			}
		}

		if met {
			ts := now
			a.UnlockedAt = &ts
			a.Progress = a.MaxProgress
			p.TotalPoints += a.PointReward
			unlocked = append(unlocked, a.ID)
		}
	}

	return unlocked
}

// ==================== MILESTONE EVALUATION ====================

func milestoneProgress(p *model.PlayerProgress, requirementType string) int {
	switch requirementType {
	case shared.RequirementTotalPoints:
		return p.TotalPoints
	case shared.RequirementTotalSessions:
		return len(p.Sessions)
	case shared.RequirementDailyStreak:
		if s, ok := p.Streaks[shared.StreakDaily]; ok {
			return s.CurrentStreak
		}
		return 0
	case shared.RequirementMultiplayerWins:
		return countMultiplayerWins(p)
	case shared.RequirementPlayTime:
		return p.TotalPlayTime
	}
	return 0
}

// evaluateMilestones refreshes progress on all milestones and applies
// compound rewards for those crossing their target. Progress is persisted
// even when not unlocked so the UI can show "X/Y". Milestones are walked in
// id order and re-walked until no more unlock, so a point reward that
// pushes the total over a later threshold always cascades in the same call.
func evaluateMilestones(p *model.PlayerProgress, now time.Time) []string {
	ids := make([]string, 0, len(p.Milestones))
	for id := range p.Milestones {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var unlocked []string
	for {
		crossed := false
		for _, id := range ids {
			m := p.Milestones[id]

			progress := milestoneProgress(p, m.RequirementType)
			if progress > m.Target {
				progress = m.Target
			}
			if progress > m.Progress {
				m.Progress = progress
			}

			if m.Unlocked || m.Progress < m.Target {
				continue
			}

			ts := now
			m.Unlocked = true
			m.UnlockedAt = &ts
			unlocked = append(unlocked, m.ID)
			crossed = true

			for _, reward := range m.Rewards {
				switch reward.Type {
				case shared.RewardPoints:
					p.TotalPoints += reward.Points
				case shared.RewardGameUnlock:
					if !containsString(p.Level.UnlockedGames, reward.GameID) {
						p.Level.UnlockedGames = append(p.Level.UnlockedGames, reward.GameID)
					}
				case shared.RewardTreeSeeds:
					p.TreeSeeds += reward.Seeds
				}
			}
		}
		if !crossed {
			break
		}
	}

	return unlocked
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
