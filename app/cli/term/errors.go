package term

import (
	"fmt"
	"os"
	"strings"

	shared "article-planner/app/shared"

	"github.com/fatih/color"
)

func OutputSimpleError(msg string, args ...interface{}) {
	msg = fmt.Sprintf(msg, args...)
	fmt.Fprintln(os.Stderr, color.New(ColorHiRed, color.Bold).Sprint("🚨 "+shared.Capitalize(msg)))
}

// OutputErrorAndExit prints a chain of "a: b: c" errors one cause per line.
func OutputErrorAndExit(msg string, args ...interface{}) {
	StopSpinner()

	msg = fmt.Sprintf(msg, args...)

	parts := strings.Split(msg, ": ")
	seen := map[string]bool{}

	displayMsg := ""
	i := 0
	for _, part := range parts {
		key := strings.ToLower(strings.TrimSpace(part))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		s := shared.Capitalize(part)
		if i == 0 {
			displayMsg = color.New(ColorHiRed, color.Bold).Sprint("🚨 " + s)
		} else {
			displayMsg += "\n" + strings.Repeat("  ", i) + "→ " + s
		}
		i++
	}

	fmt.Fprintln(os.Stderr, displayMsg)
	os.Exit(1)
}

func OutputApiErrorAndExit(context string, apiErr *shared.ApiError) {
	if apiErr.Detail != "" {
		OutputErrorAndExit("%s: %s: %s", context, apiErr.Message, apiErr.Detail)
	} else {
		OutputErrorAndExit("%s: %s", context, apiErr.Message)
	}
}
