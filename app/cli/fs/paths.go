package fs

import (
	"os"
	"path/filepath"

	"socialmedia/app/cli/term"
)

var HomeDir string
var HomeSocialDir string
var HomeAuthPath string
var LogPath string

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		term.OutputErrorAndExit("Couldn't find home dir: %v", err.Error())
	}
	HomeDir = home

	switch {
	case os.Getenv("SOCIALCTL_HOME") != "":
		HomeSocialDir = os.Getenv("SOCIALCTL_HOME")
	case os.Getenv("SOCIALCTL_ENV") == "development":
		HomeSocialDir = filepath.Join(home, ".socialctl-dev")
	default:
		HomeSocialDir = filepath.Join(home, ".socialctl")
	}

	err = os.MkdirAll(HomeSocialDir, 0700)
	if err != nil {
		term.OutputErrorAndExit("Error creating %s: %v", HomeSocialDir, err)
	}

	HomeAuthPath = filepath.Join(HomeSocialDir, "auth.json")
	LogPath = filepath.Join(HomeSocialDir, "socialctl.log")
}
