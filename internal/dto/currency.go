package dto

// ConvertedAmount is an amount expressed in the reporting currency. While the rate is
// still being resolved Pending is set and Display holds a placeholder.
type ConvertedAmount struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
	Pending  bool    `json:"pending"`
	Display  string  `json:"display"`
}

const PendingPlaceholder = "--"

type ConvertQuery struct {
	Amount   float64 `query:"amount"`
	Currency string  `query:"currency" validate:"required,len=3"`
}
