package term

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPaletteFor(t *testing.T) {
	dark := paletteFor(true)
	assert.Equal(t, color.FgHiRed, dark.error)
	assert.Equal(t, color.FgHiCyan, dark.link)

	light := paletteFor(false)
	assert.Equal(t, color.FgRed, light.error)
	assert.Equal(t, color.FgBlue, light.link)
	assert.NotEqual(t, light.prompt, light.heading)
}

func TestWrapTextIndentsEveryLine(t *testing.T) {
	out := WrapText(strings.Repeat("word ", 40), "    ")

	lines := strings.Split(out, "\n")
	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "    "), line)
		assert.LessOrEqual(t, len(line), maxTextWidth)
	}
}
