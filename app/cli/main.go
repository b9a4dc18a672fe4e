package main

import (
	"log"

	"socialmedia/app/cli/cmd"
	"socialmedia/app/cli/fs"

	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	log.SetOutput(&lumberjack.Logger{
		Filename:   fs.LogPath,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     14, // days
	})
}

func main() {
	cmd.Execute()
}
