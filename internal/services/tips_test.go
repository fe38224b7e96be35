package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomTips(t *testing.T) {
	tips := RandomTips(3)
	require.Len(t, tips, 3)

	// Distinct titles within one draw.
	seen := make(map[string]bool)
	for _, tip := range tips {
		assert.NotEmpty(t, tip.Title)
		assert.NotEmpty(t, tip.Description)
		assert.False(t, seen[tip.Title], "duplicate tip %q", tip.Title)
		seen[tip.Title] = true
	}

	// Requests beyond the pool size are clamped, not padded.
	assert.Len(t, RandomTips(1000), len(codingTips))
	assert.Nil(t, RandomTips(0))
	assert.Nil(t, RandomTips(-1))
}
