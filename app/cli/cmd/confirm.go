package cmd

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"socialmedia/app/cli/api"
	"socialmedia/app/cli/term"

	"github.com/spf13/cobra"
)

var confirmCmd = &cobra.Command{
	Use:   "confirm [link-or-token]",
	Short: "Confirm your email",
	Args:  cobra.ExactArgs(1),
	Run:   confirm,
}

func init() {
	RootCmd.AddCommand(confirmCmd)
	confirmCmd.Flags().StringVar(&hostFlag, "host", "", "API host, ignored when a full link is given")
}

func confirm(cmd *cobra.Command, args []string) {
	host, token := parseConfirmation(args[0], resolveHost())

	term.StartSpinner("")
	res, apiErr := api.Client.Confirm(host, token)
	term.StopSpinner()
	if apiErr != nil {
		term.HandleApiError(apiErr)
	}
	dump(res)

	fmt.Println("✅ " + res.Detail)
	fmt.Println()
	term.PrintCmds("", "sign-in")
}

// parseConfirmation accepts either a bare token or the full link from the
// registration email, in which case the link's host wins.
func parseConfirmation(arg, defaultHost string) (string, string) {
	arg = strings.TrimSpace(arg)

	u, err := url.Parse(arg)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return defaultHost, arg
	}

	return u.Scheme + "://" + u.Host, path.Base(u.Path)
}
