package common

// In-memory cache keys.
const (
	KEY_FX_RATE       = "fx_rate:%s"
	KEY_USER_SETTINGS = "settings:%d"
)
