package model

import "time"

type Account struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Name           string    `gorm:"not null" json:"name"`
	Currency       string    `gorm:"type:varchar(3);not null;default:USD" json:"currency"`
	InitialBalance float64   `gorm:"not null" json:"initial_balance"`
	Balance        float64   `gorm:"not null" json:"balance"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}
