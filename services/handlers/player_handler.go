package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/playgrove-labs/grove_api/dto"
	"github.com/playgrove-labs/grove_api/shared"
)

const defaultLeaderboardLimit = 20

type PlayerHandler struct {
	progressionSvc ProgressionServiceInterface
	shareSvc       ShareServiceInterface
	leaderboard    LeaderboardProviderInterface
	fallback       LeaderboardProviderInterface
}

func NewPlayerHandler(progressionSvc ProgressionServiceInterface, shareSvc ShareServiceInterface, leaderboard, fallback LeaderboardProviderInterface) *PlayerHandler {
	return &PlayerHandler{
		progressionSvc: progressionSvc,
		shareSvc:       shareSvc,
		leaderboard:    leaderboard,
		fallback:       fallback,
	}
}

// @Summary Get player stats
// @Description Point total, level, streak, achievement and milestone state for the caller
// @Tags player
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.PlayerStatsResponse}
// @Router /api/v1/player/stats [get]
func (h *PlayerHandler) GetPlayerStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	return shared.ResponseJSON(c, http.StatusOK, "Success", h.progressionSvc.GetPlayerStats(userID))
}

// @Summary Get multiplayer stats
// @Description Match record and win streak for the caller
// @Tags player
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.MultiplayerStatsResponse}
// @Router /api/v1/player/multiplayer/stats [get]
func (h *PlayerHandler) GetMultiplayerStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	return shared.ResponseJSON(c, http.StatusOK, "Success", h.progressionSvc.GetMultiplayerStats(userID))
}

// @Summary Daily check-in
// @Description Credit the daily streak and award check-in points, once per calendar day
// @Tags player
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.CheckinResponse}
// @Router /api/v1/checkin [post]
func (h *PlayerHandler) Checkin(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	return shared.ResponseJSON(c, http.StatusOK, "Success", h.progressionSvc.Checkin(userID))
}

// @Summary Create share content
// @Description Build share text, image and links for social platforms
// @Tags player
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param shareRequest body dto.ShareRequest true "Share type"
// @Success 200 {object} shared.Response{data=dto.ShareResponse}
// @Router /api/v1/share [post]
func (h *PlayerHandler) CreateShareContent(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.ShareRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.shareSvc.CreateShareContent(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get leaderboard
// @Description Top players by total points
// @Tags player
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param limit query int false "Max entries" default(20)
// @Success 200 {object} shared.Response{data=dto.LeaderboardResponse}
// @Router /api/v1/leaderboard [get]
func (h *PlayerHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > 100 {
		limit = 100
	}

	entries, err := h.leaderboard.GetLeaderboard(limit)
	if err != nil && h.fallback != nil {
		entries, err = h.fallback.GetLeaderboard(limit)
	}
	if err != nil {
		return shared.NewInternalError(err, "Leaderboard unavailable")
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", &dto.LeaderboardResponse{
		Entries: entries,
		Total:   len(entries),
	})
}
