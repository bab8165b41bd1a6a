package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"catppuccin", "gruvbox", "tokyo-night"}, ThemeNames())
}

func TestSetTheme(t *testing.T) {
	p, ok := GetPalette("gruvbox")
	require.True(t, ok)

	SetTheme(p)
	t.Cleanup(func() {
		def, _ := GetPalette(DefaultTheme)
		SetTheme(def)
	})

	assert.Equal(t, p, CurrentPalette)
	assert.Equal(t, p.Success, TextSuccess.GetForeground())
}

func TestGetPalette_Unknown(t *testing.T) {
	_, ok := GetPalette("nope")
	assert.False(t, ok)
}
