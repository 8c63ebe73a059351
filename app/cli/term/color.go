package term

import (
	shared "article-planner/app/shared"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
)

var IsDarkBg = termenv.HasDarkBackground()

var ColorHiGreen color.Attribute
var ColorHiMagenta color.Attribute
var ColorHiRed color.Attribute
var ColorHiYellow color.Attribute
var ColorHiCyan color.Attribute

func init() {
	if IsDarkBg {
		ColorHiGreen = color.FgHiGreen
		ColorHiMagenta = color.FgHiMagenta
		ColorHiRed = color.FgHiRed
		ColorHiYellow = color.FgHiYellow
		ColorHiCyan = color.FgHiCyan
	} else {
		ColorHiGreen = color.FgGreen
		ColorHiMagenta = color.FgMagenta
		ColorHiRed = color.FgRed
		ColorHiYellow = color.FgYellow
		ColorHiCyan = color.FgCyan
	}
}

func StatusLabel(status shared.ArticleStatus) string {
	switch status {
	case shared.ArticleStatusPublished:
		return color.New(ColorHiGreen, color.Bold).Sprint(string(status))
	default:
		return color.New(ColorHiYellow).Sprint(string(status))
	}
}

func LevelLabel(level shared.HeadingLevel) string {
	if level == shared.HeadingLevelMinor {
		return color.New(ColorHiCyan).Sprint("H3")
	}
	return color.New(ColorHiMagenta, color.Bold).Sprint("H2")
}
