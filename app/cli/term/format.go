package term

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const maxTextWidth = 80

var IsDarkBg = termenv.HasDarkBackground()

// socialctl output colors, picked for the terminal background
var (
	ColorError   color.Attribute
	ColorPrompt  color.Attribute
	ColorHeading color.Attribute
	ColorLink    color.Attribute
)

type palette struct {
	error, prompt, heading, link color.Attribute
}

func paletteFor(darkBg bool) palette {
	if darkBg {
		return palette{color.FgHiRed, color.FgHiMagenta, color.FgHiGreen, color.FgHiCyan}
	}
	return palette{color.FgRed, color.FgMagenta, color.FgGreen, color.FgBlue}
}

func init() {
	p := paletteFor(IsDarkBg)
	ColorError, ColorPrompt, ColorHeading, ColorLink = p.error, p.prompt, p.heading, p.link
}

// GetPlain wraps text to the terminal width (capped at 80 columns), indents
// it by two spaces and dims it for the current background.
func GetPlain(input string) string {
	s := WrapText(input, "  ")

	c := "234"
	if IsDarkBg {
		c = "251"
	}

	return termenv.String(s).Foreground(termenv.ANSI256.Color(c)).String()
}

func WrapText(input, indent string) string {
	width := textWidth() - len(indent)
	if width < 20 {
		width = 20
	}

	s := wordwrap.String(input, width)

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}

func textWidth() int {
	width, err := getTerminalWidth()
	if err != nil || width <= 0 {
		return maxTextWidth
	}
	return min(width-2, maxTextWidth)
}

func getTerminalWidth() (int, error) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, err
	}
	return width, nil
}
