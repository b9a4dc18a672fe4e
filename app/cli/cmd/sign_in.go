package cmd

import (
	"fmt"

	"socialmedia/app/cli/api"
	"socialmedia/app/cli/auth"
	"socialmedia/app/cli/term"
	shared "socialmedia/app/shared"

	"github.com/spf13/cobra"
)

var signInCmd = &cobra.Command{
	Use:   "sign-in",
	Short: "Sign in and store a session token",
	Args:  cobra.NoArgs,
	Run:   signIn,
}

var signOutCmd = &cobra.Command{
	Use:   "sign-out",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	Run:   signOut,
}

func init() {
	RootCmd.AddCommand(signInCmd)
	RootCmd.AddCommand(signOutCmd)
	signInCmd.Flags().StringVar(&hostFlag, "host", "", "API host, defaults to "+api.DefaultApiHost)
	signInCmd.Flags().StringVar(&emailFlag, "email", "", "Account email")
}

func signIn(cmd *cobra.Command, args []string) {
	host := resolveHost()
	email := promptEmail()

	password, err := term.GetUserPasswordInput("Password:")
	if err != nil {
		term.OutputErrorAndExit("Error reading password: %v", err)
	}

	term.StartSpinner("")
	res, apiErr := api.Client.SignIn(host, shared.TokenRequest{Email: email, Password: password})
	term.StopSpinner()
	if apiErr != nil {
		term.HandleApiError(apiErr)
	}
	dump(res)

	if normalized, ok := shared.NormalizeEmail(email); ok {
		email = normalized
	}

	err = auth.SetAuth(&shared.ClientAuth{
		Host:  host,
		Email: email,
		Token: res.AccessToken,
	})
	if err != nil {
		term.OutputErrorAndExit("Error storing session: %v", err)
	}

	fmt.Printf("✅ Signed in as %s\n", auth.Current.Email)
}

func signOut(cmd *cobra.Command, args []string) {
	if auth.Current == nil {
		fmt.Println("🤷‍♂️ Not signed in")
		return
	}

	email := auth.Current.Email
	err := auth.ClearAuth()
	if err != nil {
		term.OutputErrorAndExit("Error clearing session: %v", err)
	}

	fmt.Printf("✅ Signed out %s\n", email)
}
