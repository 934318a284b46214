package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenCacheRoundTrip(t *testing.T) {
	c := &TokenCache{}

	_, ok := c.Get()
	assert.False(t, ok, "empty cache has no token")

	c.Set("abc", time.Hour)
	token, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
}

func TestTokenCacheExpiry(t *testing.T) {
	c := &TokenCache{}
	c.Set("abc", -time.Second)

	_, ok := c.Get()
	assert.False(t, ok, "expired token is not served")
}
