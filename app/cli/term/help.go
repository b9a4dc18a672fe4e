package term

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var CmdDesc = map[string]string{
	"register": "create an account and get a confirmation link",
	"confirm":  "confirm your email with the link or token you received",
	"sign-in":  "sign in and store a session token",
	"sign-out": "forget the stored session",
	"post":     "create a post, optionally with a generated image",
	"posts":    "list posts",
	"show":     "show a post with its comments",
	"comment":  "comment on a post",
	"like":     "like a post",
	"upload":   "upload an image file",
}

func PrintCmds(prefix string, cmds ...string) {
	printCmds(os.Stderr, prefix, []color.Attribute{color.Bold, color.FgHiWhite, color.BgCyan}, cmds...)
}

func printCmds(w io.Writer, prefix string, colors []color.Attribute, cmds ...string) {
	for _, cmd := range cmds {
		desc, ok := CmdDesc[cmd]
		if !ok {
			continue
		}
		styled := color.New(colors...).Sprintf(" socialctl %s ", cmd)
		fmt.Fprintf(w, "%s%s 👉 %s\n", prefix, styled, desc)
	}
}
