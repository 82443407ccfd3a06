package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatters(t *testing.T) {
	assert.Equal(t, "✓ Pushed to origin", Success("Pushed to origin"))
	assert.Equal(t, "✗ boom", Error("boom"))
	assert.Equal(t, "ℹ hello", Info("hello"))
	assert.Equal(t, "⟳ Fetching from origin...", Progress("Fetching from origin"))
	assert.Equal(t, "⟳ Fetching from origin...", Progress("Fetching from origin..."))
}

func TestHasSymbol(t *testing.T) {
	assert.True(t, HasSymbol(Success("x")))
	assert.True(t, HasSymbol(Progress("x")))
	assert.False(t, HasSymbol("plain"))
	assert.False(t, HasSymbol(""))
}
