package cmd

import (
	"fmt"
	"os"

	"socialmedia/app/cli/auth"
	"socialmedia/app/cli/term"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var debug bool

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   `socialctl [command] [flags]`,
	Short: "socialctl: a command-line client for the social media API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		err := auth.LoadCurrent()
		if err != nil {
			term.OutputErrorAndExit("Error loading session: %v", err)
		}
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Dump API responses")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		term.OutputErrorAndExit("Error executing root command: %v", err)
	}
}

func dump(v any) {
	if !debug {
		return
	}
	spew.Fdump(os.Stderr, v)
}

func mustBeSignedIn() {
	if auth.Current == nil || auth.Current.Token == "" {
		term.OutputSimpleError("Not signed in")
		fmt.Fprintln(os.Stderr)
		term.PrintCmds("", "sign-in", "register")
		os.Exit(1)
	}
}
