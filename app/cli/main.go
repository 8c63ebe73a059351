package main

import (
	"log"

	"article-planner/app/cli/cmd"
	"article-planner/app/cli/fs"

	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	// the terminal belongs to the ui, so logs go to a rotated file
	log.SetOutput(&lumberjack.Logger{
		Filename:   fs.LogPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})
}

func main() {
	cmd.Execute()
}
