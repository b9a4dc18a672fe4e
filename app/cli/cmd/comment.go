package cmd

import (
	"fmt"
	"strings"

	"socialmedia/app/cli/api"
	"socialmedia/app/cli/term"
	shared "socialmedia/app/shared"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment [post-id] [body]",
	Short: "Comment on a post",
	Args:  cobra.MinimumNArgs(2),
	Run:   createComment,
}

var likeCmd = &cobra.Command{
	Use:   "like [post-id]",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	Run:   likePost,
}

func init() {
	RootCmd.AddCommand(commentCmd)
	RootCmd.AddCommand(likeCmd)
}

func createComment(cmd *cobra.Command, args []string) {
	mustBeSignedIn()
	postId := mustParsePostId(args[0])

	body := strings.TrimSpace(strings.Join(args[1:], " "))
	if body == "" {
		term.OutputErrorAndExit("Comment body can't be empty")
	}

	term.StartSpinner("")
	comment, apiErr := api.Client.CreateComment(shared.CreateCommentRequest{Body: body, PostId: postId})
	term.StopSpinner()
	if apiErr != nil {
		term.HandleApiError(apiErr)
	}
	dump(comment)

	fmt.Printf("✅ Commented on post %d\n", postId)
}

func likePost(cmd *cobra.Command, args []string) {
	mustBeSignedIn()
	postId := mustParsePostId(args[0])

	term.StartSpinner("")
	like, apiErr := api.Client.LikePost(shared.LikePostRequest{PostId: postId})
	term.StopSpinner()
	if apiErr != nil {
		if apiErr.Type == shared.ApiErrorTypeAlreadyExists {
			fmt.Printf("👍 You already like post %d\n", postId)
			return
		}
		term.HandleApiError(apiErr)
	}
	dump(like)

	fmt.Printf("❤️  Liked post %d\n", postId)
}
