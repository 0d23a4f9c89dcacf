package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 0, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 250, EstimateTokens(strings.Repeat("a", 1000)))
}

func TestEstimateMessageTokens(t *testing.T) {
	// 8 chars + 12 chars = 20 chars -> 5 tokens
	assert.Equal(t, 5, EstimateMessageTokens("12345678", "123456789012"))

	assert.Equal(t, 0, EstimateMessageTokens())
}
