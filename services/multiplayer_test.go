package services

import (
	"strings"
	"testing"

	"github.com/playgrove-labs/grove_api/dto"
	"github.com/playgrove-labs/grove_api/shared"
)

func TestCreateMatch_RequiresMultiplayerSupport(t *testing.T) {
	svc := newTestMultiplayer()

	if _, ok := svc.CreateMatch("alice", "word-puzzle"); ok {
		t.Error("word-puzzle does not support multiplayer")
	}
	if _, ok := svc.CreateMatch("alice", "no-such-game"); ok {
		t.Error("unknown game should not create a match")
	}
}

func TestCreateMatch_StartsWaitingWithRoomCode(t *testing.T) {
	svc := newTestMultiplayer()

	match, ok := svc.CreateMatch("alice", "memory-game")
	if !ok {
		t.Fatal("expected match creation to succeed")
	}

	if match.Status != shared.MatchWaiting {
		t.Errorf("status = %q, want %q", match.Status, shared.MatchWaiting)
	}
	if len(match.RoomCode) != roomCodeLength {
		t.Errorf("room code %q, want length %d", match.RoomCode, roomCodeLength)
	}
	for _, ch := range match.RoomCode {
		if !strings.ContainsRune(roomCodeAlphabet, ch) {
			t.Errorf("room code %q contains %q outside the alphabet", match.RoomCode, ch)
		}
	}
	if len(match.Players) != 1 || match.Players[0] != "alice" {
		t.Errorf("players = %v, want [alice]", match.Players)
	}
	if match.BonusPoints != 50 {
		t.Errorf("bonus points = %d, want the memory-game catalog value 50", match.BonusPoints)
	}
}

func TestJoinMatch_MovesInProgress(t *testing.T) {
	svc := newTestMultiplayer()
	created, _ := svc.CreateMatch("alice", "memory-game")

	match, ok := svc.JoinMatch("bob", created.RoomCode)
	if !ok {
		t.Fatal("expected join to succeed")
	}
	if match.Status != shared.MatchInProgress {
		t.Errorf("status = %q, want %q", match.Status, shared.MatchInProgress)
	}
	if match.StartedAt == nil {
		t.Error("started timestamp should be set")
	}
	if len(match.Players) != 2 {
		t.Errorf("players = %v, want two", match.Players)
	}
}

func TestJoinMatch_Rejections(t *testing.T) {
	svc := newTestMultiplayer()
	created, _ := svc.CreateMatch("alice", "memory-game")

	if _, ok := svc.JoinMatch("bob", "ZZZZZZ"); ok {
		t.Error("unknown room code should fail")
	}
	if _, ok := svc.JoinMatch("alice", created.RoomCode); ok {
		t.Error("the creator cannot join their own room")
	}

	svc.JoinMatch("bob", created.RoomCode)
	if _, ok := svc.JoinMatch("carol", created.RoomCode); ok {
		t.Error("a full match should reject further joins")
	}
}

func TestCompleteMatch_OnlyInProgress(t *testing.T) {
	svc := newTestMultiplayer()
	created, _ := svc.CreateMatch("alice", "memory-game")

	scores := []dto.PlayerScore{{UserID: "alice", Score: 10}}
	if _, ok := svc.CompleteMatch(created.ID, scores); ok {
		t.Error("a waiting match cannot be completed")
	}
}

func TestCompleteMatch_WinnerAndPositions(t *testing.T) {
	svc := newTestMultiplayer()
	created, _ := svc.CreateMatch("alice", "memory-game")
	svc.JoinMatch("bob", created.RoomCode)

	match, ok := svc.CompleteMatch(created.ID, []dto.PlayerScore{
		{UserID: "alice", Score: 30},
		{UserID: "bob", Score: 80},
	})
	if !ok {
		t.Fatal("expected completion to succeed")
	}

	if match.Winner != "bob" {
		t.Errorf("winner = %q, want bob", match.Winner)
	}
	if match.Status != shared.MatchCompleted {
		t.Errorf("status = %q, want %q", match.Status, shared.MatchCompleted)
	}

	if match.Results[0].UserID != "bob" || match.Results[0].Position != 1 {
		t.Errorf("first result = %+v, want bob at position 1", match.Results[0])
	}
	if match.Results[1].UserID != "alice" || match.Results[1].Position != 2 {
		t.Errorf("second result = %+v, want alice at position 2", match.Results[1])
	}
	if match.Results[0].Points != 800 {
		t.Errorf("points = %d, want 800 (80 x 10)", match.Results[0].Points)
	}
}

func TestCompleteMatch_TieIsDraw(t *testing.T) {
	svc := newTestMultiplayer()
	created, _ := svc.CreateMatch("alice", "memory-game")
	svc.JoinMatch("bob", created.RoomCode)

	match, _ := svc.CompleteMatch(created.ID, []dto.PlayerScore{
		{UserID: "alice", Score: 50},
		{UserID: "bob", Score: 50},
	})

	if match.Winner != "" {
		t.Errorf("winner = %q, want none on a tie", match.Winner)
	}
	if match.Results[0].Position != 1 || match.Results[1].Position != 1 {
		t.Errorf("positions = %d and %d, want shared position 1",
			match.Results[0].Position, match.Results[1].Position)
	}
}

func TestCompleteMatch_TwiceFails(t *testing.T) {
	svc := newTestMultiplayer()
	created, _ := svc.CreateMatch("alice", "memory-game")
	svc.JoinMatch("bob", created.RoomCode)

	scores := []dto.PlayerScore{{UserID: "alice", Score: 1}, {UserID: "bob", Score: 2}}
	svc.CompleteMatch(created.ID, scores)
	if _, ok := svc.CompleteMatch(created.ID, scores); ok {
		t.Error("a completed match cannot be completed again")
	}
}

func TestCancelMatch_ParticipantsOnly(t *testing.T) {
	svc := newTestMultiplayer()
	created, _ := svc.CreateMatch("alice", "memory-game")

	if svc.CancelMatch(created.ID, "mallory") {
		t.Error("a non-participant cannot cancel")
	}
	if !svc.CancelMatch(created.ID, "alice") {
		t.Error("the creator should be able to cancel")
	}

	match, _ := svc.GetMatch(created.ID)
	if match.Status != shared.MatchCancelled {
		t.Errorf("status = %q, want %q", match.Status, shared.MatchCancelled)
	}
	if _, ok := svc.JoinMatch("bob", created.RoomCode); ok {
		t.Error("a cancelled room should not be joinable")
	}
}

func TestRoomCode_ReusableAfterMatchEnds(t *testing.T) {
	svc := newTestMultiplayer()
	created, _ := svc.CreateMatch("alice", "memory-game")
	svc.CancelMatch(created.ID, "alice")

	// The code of an inactive match no longer blocks generation; a new
	// match may receive any code, including the old one.
	next, ok := svc.CreateMatch("alice", "memory-game")
	if !ok {
		t.Fatal("expected second match creation to succeed")
	}
	if next.Status != shared.MatchWaiting {
		t.Errorf("status = %q, want %q", next.Status, shared.MatchWaiting)
	}
}

func TestCancelStaleMatches(t *testing.T) {
	svc := newTestMultiplayer()
	created, _ := svc.CreateMatch("alice", "memory-game")

	svc.mu.Lock()
	svc.matches[created.ID].CreatedAt = svc.matches[created.ID].CreatedAt.Add(-2 * svc.staleAfter)
	svc.mu.Unlock()

	svc.cancelStaleMatches()

	match, _ := svc.GetMatch(created.ID)
	if match.Status != shared.MatchCancelled {
		t.Errorf("status = %q, want stale match cancelled", match.Status)
	}
	if svc.ActiveMatchCount() != 0 {
		t.Errorf("active matches = %d, want 0", svc.ActiveMatchCount())
	}
}
