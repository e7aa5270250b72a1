package dto

import "github.com/playgrove-labs/grove_api/model"

type WaterTreeRequest struct {
	Amount int `json:"amount" validate:"required,gte=1" example:"5"`
}

func (r WaterTreeRequest) Validate() error {
	return GetValidator().Struct(r)
}

type WaterTreeResponse struct {
	Tree         model.CommunityTree `json:"tree"`
	PointsEarned int                 `json:"points_earned"`
	StageChanged bool                `json:"stage_changed"`
}

type TreeStatsResponse struct {
	Definition   model.TreeDefinition     `json:"definition"`
	Tree         model.CommunityTree      `json:"tree"`
	Contributors []*model.TreeContributor `json:"contributors"`
	NextStage    string                   `json:"next_stage,omitempty"`
	WaterToNext  int                      `json:"water_to_next_stage,omitempty"`
}

type TreeListResponse struct {
	Trees []model.CommunityTree `json:"trees"`
}
