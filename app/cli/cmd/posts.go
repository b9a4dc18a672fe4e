package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"socialmedia/app/cli/api"
	"socialmedia/app/cli/term"
	shared "socialmedia/app/shared"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const previewLen = 40

var sortingFlag string

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List posts",
	Args:  cobra.NoArgs,
	Run:   listPosts,
}

func init() {
	RootCmd.AddCommand(postsCmd)

	var names []string
	for _, s := range shared.PostSortings {
		names = append(names, string(s))
	}
	postsCmd.Flags().StringVarP(&sortingFlag, "sort", "s", string(shared.PostSortingNew), "Sort order: "+strings.Join(names, ", "))
}

func listPosts(cmd *cobra.Command, args []string) {
	mustBeSignedIn()

	sorting, ok := shared.ParsePostSorting(sortingFlag)
	if !ok {
		term.OutputErrorAndExit("Invalid sort order %q", sortingFlag)
	}

	term.StartSpinner("")
	posts, apiErr := api.Client.ListPosts(sorting)
	term.StopSpinner()
	if apiErr != nil {
		term.HandleApiError(apiErr)
	}
	dump(posts)

	if len(posts) == 0 {
		fmt.Println("🤷‍♂️ No posts yet")
		fmt.Println()
		term.PrintCmds("", "post")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Post", "By", "Likes", "Image", "Created"})

	for _, post := range posts {
		image := ""
		if post.ImageUrl != nil {
			image = "✓"
		}
		table.Append([]string{
			strconv.FormatInt(post.Id, 10),
			preview(post.Body),
			strconv.FormatInt(post.UserId, 10),
			strconv.Itoa(post.Likes),
			image,
			post.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	table.Render()
	fmt.Println()
	term.PrintCmds("", "show")
}

func preview(body string) string {
	body = strings.Join(strings.Fields(body), " ")
	runes := []rune(body)
	if len(runes) <= previewLen {
		return body
	}
	return string(runes[:previewLen-1]) + "…"
}
