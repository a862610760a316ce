package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromInt(t *testing.T) {
	assert.Equal(t, LevelEasy, LevelFromInt(1))
	assert.Equal(t, LevelIntimate, LevelFromInt(4))

	// Out-of-range falls back to the everyday-conversation tier.
	assert.Equal(t, LevelNormal, LevelFromInt(0))
	assert.Equal(t, LevelNormal, LevelFromInt(5))
	assert.Equal(t, LevelNormal, LevelFromInt(-3))
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, LevelDeep, LevelFromString("3"))

	// Unparseable input falls back to the easiest tier.
	assert.Equal(t, LevelEasy, LevelFromString("deep"))
	assert.Equal(t, LevelEasy, LevelFromString(""))

	// Parseable but out of range clamps like LevelFromInt.
	assert.Equal(t, LevelNormal, LevelFromString("9"))
}
