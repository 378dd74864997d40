package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetFromCache(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	c.Set("rate:EUR", 1.08, NoExpiration)
	c.Set("name", "journal", DefaultExpiration)

	rate, ok := GetFromCache[float64](c, "rate:EUR")
	assert.True(t, ok)
	assert.Equal(t, 1.08, rate)

	_, ok = GetFromCache[float64](c, "name")
	assert.False(t, ok, "wrong type must report a miss")

	_, ok = GetFromCache[float64](c, "missing")
	assert.False(t, ok)

	c.Delete("rate:EUR")
	_, ok = GetFromCache[float64](c, "rate:EUR")
	assert.False(t, ok)
}

func TestNewCache_IndependentInstances(t *testing.T) {
	a := NewCache(time.Minute, time.Minute)
	b := NewCache(time.Minute, time.Minute)
	a.Set("k", 1, NoExpiration)

	_, ok := b.Get("k")
	assert.False(t, ok)

	a.Flush()
	_, ok = a.Get("k")
	assert.False(t, ok)
}
