package cmd

import (
	"fmt"
	"strings"

	"socialmedia/app/cli/api"
	"socialmedia/app/cli/term"
	shared "socialmedia/app/shared"

	"github.com/spf13/cobra"
)

var withImage bool
var imagePrompt string

var postCmd = &cobra.Command{
	Use:   "post [body]",
	Short: "Create a post",
	Long:  "Create a post. With --image or --prompt the server generates an image for it in the background.",
	Args:  cobra.MinimumNArgs(1),
	Run:   createPost,
}

func init() {
	RootCmd.AddCommand(postCmd)
	postCmd.Flags().BoolVar(&withImage, "image", false, "Generate an image using the server's default prompt")
	postCmd.Flags().StringVar(&imagePrompt, "prompt", "", "Generate an image from this prompt")
}

func createPost(cmd *cobra.Command, args []string) {
	mustBeSignedIn()

	body := strings.TrimSpace(strings.Join(args, " "))
	if body == "" {
		term.OutputErrorAndExit("Post body can't be empty")
	}

	var prompt *string
	if withImage || cmd.Flags().Changed("prompt") {
		prompt = &imagePrompt
	}

	term.StartSpinner("")
	post, apiErr := api.Client.CreatePost(shared.CreatePostRequest{Body: body}, prompt)
	term.StopSpinner()
	if apiErr != nil {
		term.HandleApiError(apiErr)
	}
	dump(post)

	fmt.Printf("✅ Created post %d\n", post.Id)
	if prompt != nil {
		fmt.Println("🖼️  The image is being generated and will be attached to the post shortly")
	}
}
