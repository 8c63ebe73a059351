package term

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const maxTextWidth = 80

// GetMarkdown renders markdown for the terminal in a style that fits the
// background.
func GetMarkdown(input string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(textWidth()),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return "", err
	}

	return r.Render(input)
}

// GetPlain wraps and indents text, dimmed slightly against the background.
func GetPlain(input string) string {
	s := wordwrap.String(input, textWidth()-2)

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = "  " + lines[i]
	}
	s = strings.Join(lines, "\n")

	c := "234"
	if IsDarkBg {
		c = "251"
	}

	return termenv.String(s).Foreground(termenv.ANSI256.Color(c)).String()
}

func textWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return maxTextWidth
	}
	return min(width, maxTextWidth)
}
