package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"socialmedia/app/cli/api"
	"socialmedia/app/cli/term"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload an image",
	Args:  cobra.ExactArgs(1),
	Run:   upload,
}

func init() {
	RootCmd.AddCommand(uploadCmd)
}

func upload(cmd *cobra.Command, args []string) {
	mustBeSignedIn()

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		term.OutputErrorAndExit("Error reading %s: %v", path, err)
	}
	if info.IsDir() {
		term.OutputErrorAndExit("%s is a directory", path)
	}

	term.StartSpinner(fmt.Sprintf("Uploading %s", filepath.Base(path)))
	res, apiErr := api.Client.Upload(path)
	term.StopSpinner()
	if apiErr != nil {
		term.HandleApiError(apiErr)
	}
	dump(res)

	fmt.Println("✅ " + res.Detail)
	fmt.Println(color.New(color.Bold, term.ColorLink).Sprint(res.FileUrl))
}
