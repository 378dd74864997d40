package dto

type UserSettings struct {
	UserID     uint     `json:"user_id"`
	Tags       []string `json:"tags"`
	Strategies []string `json:"strategies"`
}

type SaveSettingsRequest struct {
	Tags       []string `json:"tags" validate:"dive,required,max=50"`
	Strategies []string `json:"strategies" validate:"dive,required,max=50"`
}
