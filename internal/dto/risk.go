package dto

type DistanceSet struct {
	Points float64 `json:"points"`
	Pips   float64 `json:"pips"`
	Ticks  float64 `json:"ticks"`
}

type DerivedMetrics struct {
	Direction       Direction   `json:"direction"`
	OrderType       OrderType   `json:"order_type"`
	RiskAmount      float64     `json:"risk_amount"`
	LotRiskAmount   float64     `json:"lot_risk_amount"`
	PotentialProfit float64     `json:"potential_profit"`
	RewardToRisk    float64     `json:"reward_to_risk"`
	RequiredMargin  float64     `json:"required_margin"`
	TP              DistanceSet `json:"tp"`
	SL              DistanceSet `json:"sl"`
}

type RiskCalculateRequest struct {
	Draft   TradeDraft   `json:"draft"`
	Driving DrivingField `json:"driving" validate:"omitempty,oneof=quantity risk_percentage"`
}

type RiskCalculateResponse struct {
	Available        bool            `json:"available"`
	CalculatorActive bool            `json:"calculator_active"`
	Draft            TradeDraft      `json:"draft"`
	Metrics          *DerivedMetrics `json:"metrics"`
}

type SolveResponse struct {
	Available bool     `json:"available"`
	Value     *float64 `json:"value"`
}
