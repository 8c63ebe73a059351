package fs

import (
	"os"
	"path/filepath"

	"article-planner/app/cli/term"
)

var HomeDir string
var HomePlannerDir string
var ConfigPath string
var LogPath string

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		term.OutputErrorAndExit("Couldn't find home dir: %v", err.Error())
	}
	HomeDir = home

	if os.Getenv("PLANNER_ENV") == "development" {
		HomePlannerDir = filepath.Join(home, ".article-planner-dev")
	} else {
		HomePlannerDir = filepath.Join(home, ".article-planner")
	}

	// Create the home planner directory if it doesn't exist
	err = os.MkdirAll(HomePlannerDir, os.ModePerm)
	if err != nil {
		term.OutputErrorAndExit(err.Error())
	}

	ConfigPath = filepath.Join(HomePlannerDir, "config.yaml")
	LogPath = filepath.Join(HomePlannerDir, "planner.log")
}
