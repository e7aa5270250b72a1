package services

import (
	"math"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/playgrove-labs/grove_api/dto"
	"github.com/playgrove-labs/grove_api/model"
	"github.com/playgrove-labs/grove_api/shared"
	log "github.com/sirupsen/logrus"
)

// ProgressionService owns the session ledger and everything derived from
// it: points, streaks, achievements, milestones and the player level.
// Every command is one atomic transition under the service mutex; state
// lives in process memory for the lifetime of the process only.
type ProgressionService struct {
	context.DefaultService

	catalogSvc *CatalogService
	sqlSvc     *PostgresService
	redisSvc   *RedisService

	mu      sync.Mutex
	players map[string]*model.PlayerProgress
}

const PROGRESSION_SVC = "progression_svc"

// Points threshold rule: level n requires n * 500 points to advance.
const pointsPerLevel = 500

const checkinBasePoints = 10

func (svc ProgressionService) Id() string {
	return PROGRESSION_SVC
}

func (svc *ProgressionService) Configure(ctx *context.Context) error {
	svc.players = make(map[string]*model.PlayerProgress)
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressionService) Start() error {
	svc.catalogSvc = svc.Service(CATALOG_SVC).(*CatalogService)
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// ensurePlayer returns the live progress record, creating it on first use.
// Callers must hold svc.mu.
func (svc *ProgressionService) ensurePlayer(userID string) *model.PlayerProgress {
	if p, ok := svc.players[userID]; ok {
		return p
	}

	now := time.Now()
	tier := svc.catalogSvc.LevelTier(1)

	p := &model.PlayerProgress{
		UserID: userID,
		Level: model.PlayerLevel{
			Level:           1,
			Title:           tier.Title,
			Icon:            tier.Icon,
			PointsRequired:  pointsPerLevel,
			UnlockedGames:   []string{},
			UnlockedBonuses: []string{},
		},
		GameStats:    make(map[string]*model.GameStats),
		Streaks:      make(map[string]*model.Streak),
		Achievements: make(map[string]*model.Achievement),
		Milestones:   make(map[string]*model.Milestone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	p.Streaks[shared.StreakDaily] = &model.Streak{
		ID:         uuid.New().String(),
		Type:       shared.StreakDaily,
		Multiplier: 1.0,
	}
	p.Streaks[shared.StreakMultiplayerWins] = &model.Streak{
		ID:         uuid.New().String(),
		Type:       shared.StreakMultiplayerWins,
		Multiplier: 1.0,
	}

	for _, def := range defaultAchievements() {
		a := def
		if len(a.Requirements) > 0 {
			a.MaxProgress = a.Requirements[0].Target
		}
		p.Achievements[a.ID] = &a
	}
	for _, def := range defaultMilestones() {
		m := def
		p.Milestones[m.ID] = &m
	}

	svc.players[userID] = p
	return p
}

// ==================== SESSION LEDGER & REWARDS ====================

// CompleteGame records a finished play and runs the full evaluation
// cascade against the updated ledger. Unknown game ids are a no-op.
func (svc *ProgressionService) CompleteGame(userID, gameID string, req dto.CompleteGameRequest) (*dto.CompleteGameResponse, bool) {
	game := svc.catalogSvc.GetGame(gameID)
	if game == nil {
		log.WithField("game_id", gameID).Debug("Ignoring completion for unknown game")
		recordCommand("complete_game", false)
		return nil, false
	}
	recordCommand("complete_game", true)

	svc.mu.Lock()
	defer svc.mu.Unlock()

	p := svc.ensurePlayer(userID)
	now := time.Now()

	points := int(math.Floor(float64(req.Score) * game.StreakMultiplier))
	result := req.Result
	if result == "" {
		result = shared.ResultNone
	}
	if req.IsMultiplayer && result == shared.ResultWin {
		points += game.MultiplayerBonus
	}

	sessionID, _ := uuid.NewV7()
	session := model.GameSession{
		ID:            sessionID.String(),
		UserID:        userID,
		GameID:        gameID,
		Score:         req.Score,
		Duration:      req.Duration,
		IsMultiplayer: req.IsMultiplayer,
		Result:        result,
		PointsEarned:  points,
		PlayedAt:      now,
	}
	p.Sessions = append(p.Sessions, session)

	stats := svc.gameStats(p, gameID)
	stats.TimesPlayed++
	if req.Score > stats.BestScore {
		stats.BestScore = req.Score
	}
	stats.TotalPoints += points
	stats.LastPlayedAt = &now

	p.TotalPoints += points
	p.TotalPlayTime += req.Duration
	pointsAwardedTotal.Add(float64(points))

	// Evaluation order follows the reference: achievements, milestones,
	// level, then streaks, all against the updated ledger.
	unlockedAchievements := evaluateAchievements(p, &session, now)
	unlockedMilestones := evaluateMilestones(p, now)
	leveledUp := svc.advanceLevel(p)
	svc.touchDailyStreak(p, now)
	if req.IsMultiplayer {
		svc.recordMultiplayerResult(p, result, now)
	}
	p.UpdatedAt = now

	svc.publishSession(&session, p.TotalPoints)

	return &dto.CompleteGameResponse{
		Session:              session,
		TotalPoints:          p.TotalPoints,
		Level:                p.Level.Level,
		LeveledUp:            leveledUp,
		DailyStreak:          p.Streaks[shared.StreakDaily].CurrentStreak,
		UnlockedAchievements: unlockedAchievements,
		UnlockedMilestones:   unlockedMilestones,
	}, true
}

// publishSession mirrors the completed session into the archive and the
// leaderboard. Both are best effort; the engine state is already final.
func (svc *ProgressionService) publishSession(session *model.GameSession, totalPoints int) {
	if svc.sqlSvc != nil {
		if err := svc.sqlSvc.CreateSessionRecord(session); err != nil {
			log.WithError(err).WithField("session_id", session.ID).Error("Failed to archive session")
		}
	}
	if svc.redisSvc != nil {
		if err := svc.redisSvc.SetLeaderboardScore(session.UserID, totalPoints); err != nil {
			log.WithError(err).WithField("user_id", session.UserID).Warn("Failed to update leaderboard")
		}
	}
}

func (svc *ProgressionService) gameStats(p *model.PlayerProgress, gameID string) *model.GameStats {
	if s, ok := p.GameStats[gameID]; ok {
		return s
	}
	s := &model.GameStats{GameID: gameID}
	p.GameStats[gameID] = s
	return s
}

// PlayGame marks the start of a play. The session itself is only recorded
// on completion.
func (svc *ProgressionService) PlayGame(userID, gameID string) (*dto.PlayGameResponse, bool) {
	game := svc.catalogSvc.GetGame(gameID)
	if game == nil {
		return nil, false
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	p := svc.ensurePlayer(userID)
	if !game.UnlockedByDefault && !containsString(p.Level.UnlockedGames, gameID) {
		return nil, false
	}

	stats := svc.gameStats(p, gameID)
	return &dto.PlayGameResponse{
		GameID:      gameID,
		TimesPlayed: stats.TimesPlayed,
		StartedAt:   time.Now(),
		LastPlayed:  stats.LastPlayedAt,
	}, true
}

// UnlockGame flips a game into the player's unlocked set. The caller is
// responsible for having verified the unlock requirement.
func (svc *ProgressionService) UnlockGame(userID, gameID string) bool {
	if svc.catalogSvc.GetGame(gameID) == nil {
		return false
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	p := svc.ensurePlayer(userID)
	if !containsString(p.Level.UnlockedGames, gameID) {
		p.Level.UnlockedGames = append(p.Level.UnlockedGames, gameID)
		p.UpdatedAt = time.Now()
	}
	return true
}

// AwardPoints adds points earned outside the session ledger (tree watering,
// check-in) and re-runs the aggregate evaluators.
func (svc *ProgressionService) AwardPoints(userID string, points int, reason string) int {
	if points <= 0 {
		return svc.TotalPoints(userID)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	p := svc.ensurePlayer(userID)
	now := time.Now()
	p.TotalPoints += points
	pointsAwardedTotal.Add(float64(points))
	evaluateMilestones(p, now)
	svc.advanceLevel(p)
	p.UpdatedAt = now

	log.WithFields(log.Fields{
		"user_id": userID,
		"points":  points,
		"reason":  reason,
	}).Debug("Points awarded")

	if svc.redisSvc != nil {
		if err := svc.redisSvc.SetLeaderboardScore(userID, p.TotalPoints); err != nil {
			log.WithError(err).Warn("Failed to update leaderboard")
		}
	}

	return p.TotalPoints
}

func (svc *ProgressionService) TotalPoints(userID string) int {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.ensurePlayer(userID).TotalPoints
}

// ==================== LEVEL PROGRESSION ====================

// advanceLevel loops across every threshold the point total supports, so a
// large single grant cannot strand the player below their earned level.
func (svc *ProgressionService) advanceLevel(p *model.PlayerProgress) bool {
	advanced := false
	for p.TotalPoints >= p.Level.PointsRequired {
		p.Level.Level++
		p.Level.PointsRequired = p.Level.Level * pointsPerLevel
		tier := svc.catalogSvc.LevelTier(p.Level.Level)
		p.Level.Title = tier.Title
		p.Level.Icon = tier.Icon
		advanced = true

		log.WithFields(log.Fields{
			"user_id": p.UserID,
			"level":   p.Level.Level,
			"title":   p.Level.Title,
		}).Info("Player leveled up")
	}
	return advanced
}

// ==================== STREAK TRACKING ====================

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// touchDailyStreak applies the calendar continuation rules: yesterday
// continues, today is already credited, anything older resets to 1.
// Returns false when the streak was already credited today.
func (svc *ProgressionService) touchDailyStreak(p *model.PlayerProgress, now time.Time) bool {
	streak := p.Streaks[shared.StreakDaily]
	today := dayOf(now)

	credited := true
	if streak.LastActivity == nil {
		streak.CurrentStreak = 1
	} else {
		// Compare midnight dates rather than elapsed hours; a DST day is
		// not 24 hours long.
		last := dayOf(*streak.LastActivity)
		switch {
		case today.Equal(last):
			credited = false
		case today.Equal(last.AddDate(0, 0, 1)):
			streak.CurrentStreak++
		default:
			streak.CurrentStreak = 1
		}
	}

	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	if credited {
		// Streak bonus grows with consistency, capped at 2x.
		streak.Multiplier = 1.0 + 0.1*float64(streak.CurrentStreak-1)
		if streak.Multiplier > 2.0 {
			streak.Multiplier = 2.0
		}
	}
	ts := now
	streak.LastActivity = &ts
	return credited
}

// recordMultiplayerResult updates the win streak: consecutive wins count
// regardless of calendar date, any non-win resets to zero.
func (svc *ProgressionService) recordMultiplayerResult(p *model.PlayerProgress, result string, now time.Time) {
	streak := p.Streaks[shared.StreakMultiplayerWins]
	if result == shared.ResultWin {
		streak.CurrentStreak++
	} else {
		streak.CurrentStreak = 0
	}
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	ts := now
	streak.LastActivity = &ts
}

// Checkin is the shop-side daily check-in. It shares the daily streak with
// game play; checking in twice the same day earns nothing extra.
func (svc *ProgressionService) Checkin(userID string) *dto.CheckinResponse {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	p := svc.ensurePlayer(userID)
	now := time.Now()
	streak := p.Streaks[shared.StreakDaily]

	credited := svc.touchDailyStreak(p, now)
	points := 0
	if credited {
		points = int(float64(checkinBasePoints) * streak.Multiplier)
		p.TotalPoints += points
		evaluateMilestones(p, now)
		svc.advanceLevel(p)
		p.UpdatedAt = now

		if svc.redisSvc != nil {
			if err := svc.redisSvc.SetLeaderboardScore(userID, p.TotalPoints); err != nil {
				log.WithError(err).Warn("Failed to update leaderboard")
			}
		}
	}

	return &dto.CheckinResponse{
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
		PointsEarned:  points,
		TotalPoints:   p.TotalPoints,
		CheckedInAt:   now,
		AlreadyToday:  !credited,
	}
}

// ==================== QUERIES ====================

func (svc *ProgressionService) GetGameStats(userID, gameID string) (*dto.GameStatsResponse, bool) {
	game := svc.catalogSvc.GetGame(gameID)
	if game == nil {
		return nil, false
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	p := svc.ensurePlayer(userID)
	stats := svc.gameStats(p, gameID)
	return &dto.GameStatsResponse{Game: *game, Stats: *stats}, true
}

func (svc *ProgressionService) GetPlayerStats(userID string) *dto.PlayerStatsResponse {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	p := svc.ensurePlayer(userID)

	achievements := make([]model.Achievement, 0, len(p.Achievements))
	for _, a := range p.Achievements {
		achievements = append(achievements, *a)
	}
	milestones := make([]model.Milestone, 0, len(p.Milestones))
	for _, m := range p.Milestones {
		milestones = append(milestones, *m)
	}

	pointsToNext := p.Level.PointsRequired - p.TotalPoints
	if pointsToNext < 0 {
		pointsToNext = 0
	}

	return &dto.PlayerStatsResponse{
		UserID:        userID,
		TotalPoints:   p.TotalPoints,
		TotalSessions: len(p.Sessions),
		TotalPlayTime: p.TotalPlayTime,
		TreeSeeds:     p.TreeSeeds,
		Level:         cloneLevel(p.Level),
		PointsToNext:  pointsToNext,
		DailyStreak:   *p.Streaks[shared.StreakDaily],
		Achievements:  achievements,
		Milestones:    milestones,
	}
}

func (svc *ProgressionService) GetMultiplayerStats(userID string) *dto.MultiplayerStatsResponse {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	p := svc.ensurePlayer(userID)

	resp := &dto.MultiplayerStatsResponse{
		UserID:    userID,
		WinStreak: *p.Streaks[shared.StreakMultiplayerWins],
	}
	for i := range p.Sessions {
		if !p.Sessions[i].IsMultiplayer {
			continue
		}
		resp.MatchesPlayed++
		switch p.Sessions[i].Result {
		case shared.ResultWin:
			resp.Wins++
		case shared.ResultLose:
			resp.Losses++
		case shared.ResultDraw:
			resp.Draws++
		}
	}
	return resp
}

// ListGames returns the catalog plus the player's unlocked set.
func (svc *ProgressionService) ListGames(userID string) *dto.GameListResponse {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	p := svc.ensurePlayer(userID)
	games := svc.catalogSvc.Games()

	unlocked := make([]string, 0, len(games))
	for _, g := range games {
		if g.UnlockedByDefault || containsString(p.Level.UnlockedGames, g.ID) {
			unlocked = append(unlocked, g.ID)
		}
	}

	return &dto.GameListResponse{Games: games, Unlocked: unlocked}
}

// PlayerLevel returns a copy of the level block, used for tree unlock checks.
func (svc *ProgressionService) PlayerLevel(userID string) model.PlayerLevel {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return cloneLevel(svc.ensurePlayer(userID).Level)
}

// cloneLevel detaches the unlock slices so the copy cannot alias the live
// record once the service mutex is released.
func cloneLevel(l model.PlayerLevel) model.PlayerLevel {
	l.UnlockedGames = append([]string{}, l.UnlockedGames...)
	l.UnlockedBonuses = append([]string{}, l.UnlockedBonuses...)
	return l
}

// MultiplayerWinCount is the ledger-derived win total for one player.
func (svc *ProgressionService) MultiplayerWinCount(userID string) int {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return countMultiplayerWins(svc.ensurePlayer(userID))
}

// UnlockedAchievementCount counts unlocked achievements, used for tree
// unlock requirement checks.
func (svc *ProgressionService) UnlockedAchievementCount(userID string) int {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	n := 0
	for _, a := range svc.ensurePlayer(userID).Achievements {
		if a.Unlocked() {
			n++
		}
	}
	return n
}
