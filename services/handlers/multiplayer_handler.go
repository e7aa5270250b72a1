package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/playgrove-labs/grove_api/dto"
	"github.com/playgrove-labs/grove_api/shared"
)

type MultiplayerHandler struct {
	multiplayerSvc MultiplayerServiceInterface
	progressionSvc ProgressionServiceInterface
}

func NewMultiplayerHandler(multiplayerSvc MultiplayerServiceInterface, progressionSvc ProgressionServiceInterface) *MultiplayerHandler {
	return &MultiplayerHandler{
		multiplayerSvc: multiplayerSvc,
		progressionSvc: progressionSvc,
	}
}

// @Summary Create a match
// @Description Open a room for a multiplayer-capable game and return its room code
// @Tags multiplayer
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param createRequest body dto.CreateMatchRequest true "Game to play"
// @Success 201 {object} shared.Response{data=dto.MatchResponse}
// @Router /api/v1/matches [post]
func (h *MultiplayerHandler) CreateMatch(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CreateMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	match, ok := h.multiplayerSvc.CreateMatch(userID, req.GameID)
	if !ok {
		return shared.NewNotFoundError(nil, "Game not found or does not support multiplayer")
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Match created", &dto.MatchResponse{Match: *match})
}

// @Summary Join a match
// @Description Join a waiting room by code, moving the match in progress
// @Tags multiplayer
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param joinRequest body dto.JoinMatchRequest true "Room code"
// @Success 200 {object} shared.Response{data=dto.MatchResponse}
// @Router /api/v1/matches/join [post]
func (h *MultiplayerHandler) JoinMatch(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.JoinMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	match, ok := h.multiplayerSvc.JoinMatch(userID, req.RoomCode)
	if !ok {
		return shared.NewNotFoundError(nil, "Room not found or not joinable")
	}

	return shared.ResponseJSON(c, http.StatusOK, "Joined match", &dto.MatchResponse{Match: *match})
}

// @Summary Complete a match
// @Description Settle an in-progress match with final scores and credit match points
// @Tags multiplayer
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param matchId path string true "Match ID"
// @Param completeRequest body dto.CompleteMatchRequest true "Final scores"
// @Success 200 {object} shared.Response{data=dto.MatchResponse}
// @Router /api/v1/matches/{matchId}/complete [post]
func (h *MultiplayerHandler) CompleteMatch(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	matchID := c.Params("matchId")

	var req dto.CompleteMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	existing, ok := h.multiplayerSvc.GetMatch(matchID)
	if !ok {
		return shared.NewNotFoundError(nil, "Match not found")
	}
	if !participant(existing.Players, userID) {
		return shared.NewForbiddenError(nil, "Only match players can complete a match")
	}

	match, ok := h.multiplayerSvc.CompleteMatch(matchID, req.Scores)
	if !ok {
		return shared.NewBadRequestError(nil, "Match is not in progress")
	}

	for _, result := range match.Results {
		h.progressionSvc.AwardPoints(result.UserID, result.Points, "match_result")
	}

	return shared.ResponseJSON(c, http.StatusOK, "Match completed", &dto.MatchResponse{Match: *match})
}

// @Summary Cancel a match
// @Description Abort a waiting or in-progress match
// @Tags multiplayer
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param matchId path string true "Match ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/matches/{matchId}/cancel [post]
func (h *MultiplayerHandler) CancelMatch(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	matchID := c.Params("matchId")

	if !h.multiplayerSvc.CancelMatch(matchID, userID) {
		return shared.NewNotFoundError(nil, "Match not found or not cancellable")
	}

	return shared.ResponseJSON(c, http.StatusOK, "Match cancelled", nil)
}

func participant(players []string, userID string) bool {
	for _, p := range players {
		if p == userID {
			return true
		}
	}
	return false
}
