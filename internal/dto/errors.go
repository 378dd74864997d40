package dto

import "errors"

var (
	ErrTradeNotFound   = errors.New("trade not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrTradeClosed     = errors.New("trade already closed")
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	ErrTradeChanged    = errors.New("trade changed since editing started")
)
