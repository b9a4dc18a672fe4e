package cmd

import (
	"fmt"
	"strconv"

	"socialmedia/app/cli/api"
	"socialmedia/app/cli/term"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [post-id]",
	Short: "Show a post with its comments",
	Args:  cobra.ExactArgs(1),
	Run:   showPost,
}

func init() {
	RootCmd.AddCommand(showCmd)
}

func showPost(cmd *cobra.Command, args []string) {
	mustBeSignedIn()
	postId := mustParsePostId(args[0])

	term.StartSpinner("")
	res, apiErr := api.Client.GetPost(postId)
	term.StopSpinner()
	if apiErr != nil {
		term.HandleApiError(apiErr)
	}
	dump(res)

	post := res.Post
	color.New(color.Bold, term.ColorHeading).Printf("Post #%d", post.Id)
	fmt.Printf(" by user %d · %s · ❤️  %d\n\n", post.UserId, post.CreatedAt.Local().Format("2006-01-02 15:04"), post.Likes)
	fmt.Println(term.GetPlain(post.Body))
	if post.ImageUrl != nil {
		fmt.Println()
		fmt.Println("🖼️  " + color.New(term.ColorLink).Sprint(*post.ImageUrl))
	}
	fmt.Println()

	if len(res.Comments) == 0 {
		fmt.Println("No comments yet")
		return
	}

	color.New(color.Bold, term.ColorHeading).Printf("%d comment(s)\n\n", len(res.Comments))
	for _, comment := range res.Comments {
		fmt.Printf("  user %d · %s\n", comment.UserId, comment.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Println(term.WrapText(comment.Body, "    "))
		fmt.Println()
	}
}

func mustParsePostId(arg string) int64 {
	postId, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || postId <= 0 {
		term.OutputErrorAndExit("Invalid post id %q", arg)
	}
	return postId
}
