package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/playgrove-labs/grove_api/dto"
	"github.com/playgrove-labs/grove_api/shared"
)

type GameHandler struct {
	progressionSvc ProgressionServiceInterface
}

func NewGameHandler(progressionSvc ProgressionServiceInterface) *GameHandler {
	return &GameHandler{
		progressionSvc: progressionSvc,
	}
}

// @Summary List games
// @Description List the game catalog with the caller's unlocked set
// @Tags games
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.GameListResponse}
// @Router /api/v1/games [get]
func (h *GameHandler) ListGames(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	return shared.ResponseJSON(c, http.StatusOK, "Success", h.progressionSvc.ListGames(userID))
}

// @Summary Start a game
// @Description Mark the start of a play for an unlocked game
// @Tags games
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param gameId path string true "Game ID"
// @Success 200 {object} shared.Response{data=dto.PlayGameResponse}
// @Router /api/v1/games/{gameId}/play [post]
func (h *GameHandler) PlayGame(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	gameID := c.Params("gameId")

	resp, ok := h.progressionSvc.PlayGame(userID, gameID)
	if !ok {
		return shared.NewNotFoundError(nil, "Game not found or locked")
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Complete a game session
// @Description Record a finished session and apply points, streaks, achievements and level progression
// @Tags games
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param gameId path string true "Game ID"
// @Param completeRequest body dto.CompleteGameRequest true "Session result"
// @Success 200 {object} shared.Response{data=dto.CompleteGameResponse}
// @Router /api/v1/games/{gameId}/complete [post]
func (h *GameHandler) CompleteGame(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	gameID := c.Params("gameId")

	var req dto.CompleteGameRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, ok := h.progressionSvc.CompleteGame(userID, gameID, req)
	if !ok {
		return shared.NewNotFoundError(nil, "Game not found")
	}

	return shared.ResponseJSON(c, http.StatusOK, "Session recorded", resp)
}

// @Summary Unlock a game
// @Description Add a game to the caller's unlocked set
// @Tags games
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param gameId path string true "Game ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/games/{gameId}/unlock [post]
func (h *GameHandler) UnlockGame(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	gameID := c.Params("gameId")

	if !h.progressionSvc.UnlockGame(userID, gameID) {
		return shared.NewNotFoundError(nil, "Game not found")
	}

	return shared.ResponseJSON(c, http.StatusOK, "Game unlocked", nil)
}

// @Summary Get game stats
// @Description Per-game aggregates for the caller
// @Tags games
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param gameId path string true "Game ID"
// @Success 200 {object} shared.Response{data=dto.GameStatsResponse}
// @Router /api/v1/games/{gameId}/stats [get]
func (h *GameHandler) GetGameStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	gameID := c.Params("gameId")

	resp, ok := h.progressionSvc.GetGameStats(userID, gameID)
	if !ok {
		return shared.NewNotFoundError(nil, "Game not found")
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
