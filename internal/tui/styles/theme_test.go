package styles

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func plainTheme(dark bool) Theme {
	return NewTheme(dark, WithRenderer(lipgloss.NewRenderer(&bytes.Buffer{})), WithNoColor())
}

func TestNewTheme_Palettes(t *testing.T) {
	dark := plainTheme(true)
	light := plainTheme(false)

	assert.True(t, dark.Dark)
	assert.False(t, light.Dark)
	assert.Equal(t, DarkPalette(), dark.Palette)
	assert.Equal(t, LightPalette(), light.Palette)
	assert.NotEqual(t, dark.Palette.Strategy, light.Palette.Strategy)
	assert.Equal(t, "notty", dark.GlamourStyle())

	r := lipgloss.NewRenderer(&bytes.Buffer{})
	assert.Equal(t, "dark", NewTheme(true, WithRenderer(r)).GlamourStyle())
	assert.Equal(t, "light", NewTheme(false, WithRenderer(r)).GlamourStyle())
}

func TestTheme_NoColorRendersPlainText(t *testing.T) {
	th := plainTheme(true)
	assert.Equal(t, "hello", th.Accent("hello"))
	assert.Equal(t, "● PASS", th.StatusBadge("pass"))
	assert.Equal(t, "● WARN", th.StatusBadge("warn"))
	assert.Equal(t, "● FAIL", th.StatusBadge("fail"))
	assert.Equal(t, "───", th.Divider(3))
	assert.Empty(t, th.Divider(0))
}

func TestSparkline(t *testing.T) {
	assert.Empty(t, sparkline(nil, 10))
	assert.Empty(t, sparkline([]float64{1}, 0))

	s := sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	assert.Equal(t, "⡀⡄⡆⡇⣇⣧⣷⣿", s)

	flat := sparkline([]float64{3, 3, 3}, 5)
	assert.Equal(t, 5, utf8.RuneCountInString(flat))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", TruncateWithEllipsis("short", 10))
	assert.Equal(t, "alp...", TruncateWithEllipsis("alpha-decay", 6))
	assert.Equal(t, "alp", TruncateWithEllipsis("alpha", 3))
}
