package dto

type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

type OrderType string

const (
	OrderTypeNone       OrderType = "NONE"
	OrderTypeBuyLimit   OrderType = "BUY_LIMIT"
	OrderTypeBuyStop    OrderType = "BUY_STOP"
	OrderTypeMarketBuy  OrderType = "MARKET_BUY"
	OrderTypeSellLimit  OrderType = "SELL_LIMIT"
	OrderTypeSellStop   OrderType = "SELL_STOP"
	OrderTypeMarketSell OrderType = "MARKET_SELL"
)

// DrivingField names the draft field the user edited last; its counterpart is recomputed.
type DrivingField string

const (
	DrivingNone           DrivingField = ""
	DrivingQuantity       DrivingField = "quantity"
	DrivingRiskPercentage DrivingField = "risk_percentage"
)

type Dimension string

const (
	DimensionSetup   Dimension = "setup"
	DimensionSymbol  Dimension = "symbol"
	DimensionType    Dimension = "type"
	DimensionWeekday Dimension = "weekday"
	DimensionTag     Dimension = "tag"
)

const (
	// ProfitFactorSentinel is reported when there are winning trades but no losses.
	ProfitFactorSentinel = 999.0

	// RiskReconcileTolerance is the relative gap under which a lot-derived risk amount
	// is displayed as the percentage-derived amount instead.
	RiskReconcileTolerance = 0.05

	DefaultSetupKey = "No Setup"
	DefaultTagKey   = "Untagged"

	DefaultReportingCurrency = "USD"
)
