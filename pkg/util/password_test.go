package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := GeneratePasswordHash("password123")
	assert.Nil(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPasswordHash(hash, "password123"))
	assert.False(t, CheckPasswordHash(hash, "password124"))
	assert.False(t, CheckPasswordHash("not-a-hash", "password123"))
}

func TestGetRandomString(t *testing.T) {
	a := GetRandomString(32)
	b := GetRandomString(32)

	assert.Len(t, a, 32)
	assert.Len(t, b, 32)
	assert.NotEqual(t, a, b)
}
