package cmd

import (
	"fmt"

	"socialmedia/app/cli/api"
	"socialmedia/app/cli/term"
	shared "socialmedia/app/shared"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var hostFlag string
var emailFlag string

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	Run:   register,
}

func init() {
	RootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&hostFlag, "host", "", "API host, defaults to "+api.DefaultApiHost)
	registerCmd.Flags().StringVar(&emailFlag, "email", "", "Account email")
}

func register(cmd *cobra.Command, args []string) {
	host := resolveHost()
	email := promptEmail()

	password, err := term.GetUserPasswordInput("Password:")
	if err != nil {
		term.OutputErrorAndExit("Error reading password: %v", err)
	}

	term.StartSpinner("")
	res, apiErr := api.Client.Register(host, shared.RegisterRequest{Email: email, Password: password})
	term.StopSpinner()
	if apiErr != nil {
		term.HandleApiError(apiErr)
	}
	dump(res)

	fmt.Println("✅ " + res.Detail)
	if res.ConfirmationUrl != "" {
		fmt.Println()
		fmt.Println("Confirmation link: " + color.New(color.Bold, term.ColorLink).Sprint(res.ConfirmationUrl))
	}
	fmt.Println()
	term.PrintCmds("", "confirm")
}

func resolveHost() string {
	if hostFlag != "" {
		return hostFlag
	}
	return api.GetApiHost()
}

func promptEmail() string {
	if emailFlag != "" {
		return emailFlag
	}
	email, err := term.GetRequiredUserStringInput("Email:")
	if err != nil {
		term.OutputErrorAndExit("Error reading email: %v", err)
	}
	return email
}
