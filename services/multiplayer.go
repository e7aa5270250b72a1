package services

import (
	"math/rand"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/playgrove-labs/grove_api/dto"
	"github.com/playgrove-labs/grove_api/model"
	"github.com/playgrove-labs/grove_api/shared"
	log "github.com/sirupsen/logrus"
)

// MultiplayerService coordinates the two-player match lifecycle:
// waiting -> in_progress -> completed | cancelled. It is the authoritative
// copy of match state; clients only issue commands against it.
type MultiplayerService struct {
	context.DefaultService

	catalogSvc *CatalogService

	mu      sync.Mutex
	matches map[string]*model.MultiplayerMatch
	byCode  map[string]*model.MultiplayerMatch

	staleAfter time.Duration
	closed     chan struct{}
}

const MULTIPLAYER_SVC = "multiplayer_svc"

const maxMatchPlayers = 2

// Fixed per-player match scoring multiplier.
const matchPointsPerScore = 10

// Room codes skip lookalike characters (0/O, 1/I).
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const roomCodeLength = 6

func (svc MultiplayerService) Id() string {
	return MULTIPLAYER_SVC
}

func (svc *MultiplayerService) Configure(ctx *context.Context) error {
	svc.matches = make(map[string]*model.MultiplayerMatch)
	svc.byCode = make(map[string]*model.MultiplayerMatch)
	svc.closed = make(chan struct{})

	svc.staleAfter = time.Hour
	if v := os.Getenv("MATCH_STALE_MINUTES"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil && mins > 0 {
			svc.staleAfter = time.Duration(mins) * time.Minute
		}
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MultiplayerService) Start() error {
	svc.catalogSvc = svc.Service(CATALOG_SVC).(*CatalogService)
	go svc.startCleanupJob()
	return nil
}

func (svc *MultiplayerService) Shutdown() {
	close(svc.closed)
}

// ==================== LIFECYCLE COMMANDS ====================

// CreateMatch opens a room for a multiplayer-capable game. The bonus
// points field snapshots the catalog value at creation time.
func (svc *MultiplayerService) CreateMatch(userID, gameID string) (*model.MultiplayerMatch, bool) {
	game := svc.catalogSvc.GetGame(gameID)
	if game == nil || !game.SupportsMultiplayer {
		return nil, false
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	matchID, _ := uuid.NewV7()
	match := &model.MultiplayerMatch{
		ID:          matchID.String(),
		GameID:      gameID,
		RoomCode:    svc.generateRoomCode(),
		Players:     []string{userID},
		Status:      shared.MatchWaiting,
		BonusPoints: game.MultiplayerBonus,
		CreatedAt:   time.Now(),
	}

	svc.matches[match.ID] = match
	svc.byCode[match.RoomCode] = match

	log.WithFields(log.Fields{
		"match_id":  match.ID,
		"room_code": match.RoomCode,
		"game_id":   gameID,
	}).Info("Match created")

	out := *match
	return &out, true
}

// generateRoomCode returns a code unique among active matches. Callers
// must hold svc.mu.
func (svc *MultiplayerService) generateRoomCode() string {
	buf := make([]byte, roomCodeLength)
	for {
		for i := range buf {
			buf[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
		}
		code := string(buf)
		if existing, ok := svc.byCode[code]; !ok || !existing.Active() {
			return code
		}
	}
}

// JoinMatch adds the second player and moves the match in progress. Fails
// for unknown, full or non-waiting codes and for the creator rejoining.
func (svc *MultiplayerService) JoinMatch(userID, roomCode string) (*model.MultiplayerMatch, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	match, ok := svc.byCode[roomCode]
	if !ok || match.Status != shared.MatchWaiting || len(match.Players) >= maxMatchPlayers {
		return nil, false
	}
	for _, p := range match.Players {
		if p == userID {
			return nil, false
		}
	}

	match.Players = append(match.Players, userID)
	match.Status = shared.MatchInProgress
	now := time.Now()
	match.StartedAt = &now

	out := *match
	return &out, true
}

// CompleteMatch settles an in-progress match. The winner is the strictly
// highest score; an exact tie at the top is a draw with no winner.
func (svc *MultiplayerService) CompleteMatch(matchID string, scores []dto.PlayerScore) (*model.MultiplayerMatch, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	match, ok := svc.matches[matchID]
	if !ok || match.Status != shared.MatchInProgress {
		return nil, false
	}

	ranked := make([]dto.PlayerScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	match.Scores = make(map[string]int, len(ranked))
	match.Results = make([]model.MatchPlayerResult, len(ranked))
	for i, ps := range ranked {
		position := i + 1
		if i > 0 && ps.Score == ranked[i-1].Score {
			position = match.Results[i-1].Position
		}
		match.Results[i] = model.MatchPlayerResult{
			UserID:   ps.UserID,
			Score:    ps.Score,
			Points:   ps.Score * matchPointsPerScore,
			Position: position,
		}
		match.Scores[ps.UserID] = ps.Score
	}

	if len(ranked) > 0 && (len(ranked) == 1 || ranked[0].Score > ranked[1].Score) {
		match.Winner = ranked[0].UserID
	}

	match.Status = shared.MatchCompleted
	now := time.Now()
	match.CompletedAt = &now

	out := *match
	return &out, true
}

// CancelMatch aborts an active match. Only a participant can cancel.
func (svc *MultiplayerService) CancelMatch(matchID, userID string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	match, ok := svc.matches[matchID]
	if !ok || !match.Active() {
		return false
	}
	if !containsString(match.Players, userID) {
		return false
	}

	match.Status = shared.MatchCancelled
	return true
}

// GetMatch returns a copy of the match.
func (svc *MultiplayerService) GetMatch(matchID string) (*model.MultiplayerMatch, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	match, ok := svc.matches[matchID]
	if !ok {
		return nil, false
	}
	out := *match
	return &out, true
}

// ActiveMatchCount reports matches currently waiting or in progress.
func (svc *MultiplayerService) ActiveMatchCount() int {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	n := 0
	for _, m := range svc.matches {
		if m.Active() {
			n++
		}
	}
	return n
}

// ==================== CLEANUP ====================

// startCleanupJob cancels matches left waiting or in progress past the
// stale window, so abandoned rooms do not hold their codes forever.
func (svc *MultiplayerService) startCleanupJob() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-svc.closed:
			return
		case <-ticker.C:
			svc.cancelStaleMatches()
		}
	}
}

func (svc *MultiplayerService) cancelStaleMatches() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	cutoff := time.Now().Add(-svc.staleAfter)
	for _, m := range svc.matches {
		if m.Active() && m.CreatedAt.Before(cutoff) {
			m.Status = shared.MatchCancelled
			log.WithFields(log.Fields{
				"match_id":  m.ID,
				"room_code": m.RoomCode,
			}).Info("Cancelled stale match")
		}
	}
}
