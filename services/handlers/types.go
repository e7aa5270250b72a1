package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/playgrove-labs/grove_api/dto"
	"github.com/playgrove-labs/grove_api/model"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	RequiredAuth() fiber.Handler
}

type JWTServiceInterface interface {
	ExtractTokenFromHeader(authHeader string) (string, error)
	VerifyJWTToken(token string) (string, error)
}

type ProgressionServiceInterface interface {
	ListGames(userID string) *dto.GameListResponse
	PlayGame(userID, gameID string) (*dto.PlayGameResponse, bool)
	CompleteGame(userID, gameID string, req dto.CompleteGameRequest) (*dto.CompleteGameResponse, bool)
	UnlockGame(userID, gameID string) bool
	GetGameStats(userID, gameID string) (*dto.GameStatsResponse, bool)
	GetPlayerStats(userID string) *dto.PlayerStatsResponse
	GetMultiplayerStats(userID string) *dto.MultiplayerStatsResponse
	Checkin(userID string) *dto.CheckinResponse
	AwardPoints(userID string, points int, reason string) int
}

type MultiplayerServiceInterface interface {
	CreateMatch(userID, gameID string) (*model.MultiplayerMatch, bool)
	JoinMatch(userID, roomCode string) (*model.MultiplayerMatch, bool)
	CompleteMatch(matchID string, scores []dto.PlayerScore) (*model.MultiplayerMatch, bool)
	CancelMatch(matchID, userID string) bool
	GetMatch(matchID string) (*model.MultiplayerMatch, bool)
}

type TreeServiceInterface interface {
	ListTrees() *dto.TreeListResponse
	GetTreeStats(treeID string) (*dto.TreeStatsResponse, bool)
	WaterTree(userID, treeID string, amount int) (*dto.WaterTreeResponse, bool)
	CanUnlockTree(userID, treeID string) bool
	UnlockTree(treeID string) bool
}

type ShareServiceInterface interface {
	CreateShareContent(userID string, req dto.ShareRequest) (*dto.ShareResponse, error)
}

type LeaderboardProviderInterface interface {
	GetLeaderboard(limit int) ([]dto.LeaderboardEntry, error)
}
