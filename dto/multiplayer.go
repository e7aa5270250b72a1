package dto

import "github.com/playgrove-labs/grove_api/model"

type CreateMatchRequest struct {
	GameID string `json:"game_id" validate:"required" example:"math-quiz"`
}

func (r CreateMatchRequest) Validate() error {
	return GetValidator().Struct(r)
}

type JoinMatchRequest struct {
	RoomCode string `json:"room_code" validate:"required,len=6" example:"X4K9PQ"`
}

func (r JoinMatchRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CompleteMatchRequest struct {
	Scores []PlayerScore `json:"scores" validate:"required,min=1,dive"`
}

type PlayerScore struct {
	UserID string `json:"user_id" validate:"required"`
	Score  int    `json:"score" validate:"gte=0"`
}

func (r CompleteMatchRequest) Validate() error {
	return GetValidator().Struct(r)
}

type MatchResponse struct {
	Match model.MultiplayerMatch `json:"match"`
}
