package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/playgrove-labs/grove_api/dto"
	"github.com/playgrove-labs/grove_api/shared"
)

type TreeHandler struct {
	treeSvc TreeServiceInterface
}

func NewTreeHandler(treeSvc TreeServiceInterface) *TreeHandler {
	return &TreeHandler{
		treeSvc: treeSvc,
	}
}

// @Summary List community trees
// @Description All planted trees with their growth state
// @Tags trees
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.TreeListResponse}
// @Router /api/v1/trees [get]
func (h *TreeHandler) ListTrees(c *fiber.Ctx) error {
	return shared.ResponseJSON(c, http.StatusOK, "Success", h.treeSvc.ListTrees())
}

// @Summary Get tree stats
// @Description Growth state, contributors and water needed for the next stage
// @Tags trees
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param treeId path string true "Tree ID"
// @Success 200 {object} shared.Response{data=dto.TreeStatsResponse}
// @Router /api/v1/trees/{treeId}/stats [get]
func (h *TreeHandler) GetTreeStats(c *fiber.Ctx) error {
	treeID := c.Params("treeId")

	resp, ok := h.treeSvc.GetTreeStats(treeID)
	if !ok {
		return shared.NewNotFoundError(nil, "Tree not found")
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Water a tree
// @Description Apply water to an unlocked tree, earning points and growing the tree
// @Tags trees
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param treeId path string true "Tree ID"
// @Param waterRequest body dto.WaterTreeRequest true "Water amount"
// @Success 200 {object} shared.Response{data=dto.WaterTreeResponse}
// @Router /api/v1/trees/{treeId}/water [post]
func (h *TreeHandler) WaterTree(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	treeID := c.Params("treeId")

	var req dto.WaterTreeRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, ok := h.treeSvc.WaterTree(userID, treeID, req.Amount)
	if !ok {
		return shared.NewBadRequestError(nil, "Tree not found, locked or daily water used up")
	}

	return shared.ResponseJSON(c, http.StatusOK, "Tree watered", resp)
}

// @Summary Unlock a tree
// @Description Unlock a tree once the caller meets its requirement
// @Tags trees
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param treeId path string true "Tree ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/trees/{treeId}/unlock [post]
func (h *TreeHandler) UnlockTree(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	treeID := c.Params("treeId")

	if _, ok := h.treeSvc.GetTreeStats(treeID); !ok {
		return shared.NewNotFoundError(nil, "Tree not found")
	}
	if !h.treeSvc.CanUnlockTree(userID, treeID) {
		return shared.NewForbiddenError(nil, "Unlock requirement not met")
	}
	h.treeSvc.UnlockTree(treeID)

	return shared.ResponseJSON(c, http.StatusOK, "Tree unlocked", nil)
}
