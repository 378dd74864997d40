package model

import (
	"time"

	"gorm.io/datatypes"
)

// UserSetting holds the tag and strategy vocabularies a user picks from when journaling.
type UserSetting struct {
	UserID     uint                        `gorm:"primaryKey" json:"user_id"`
	Tags       datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	Strategies datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"strategies"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserSetting) TableName() string {
	return "user_settings"
}
