package term

import (
	"fmt"
	"os"
	"strings"

	shared "socialmedia/app/shared"

	"github.com/fatih/color"
)

func OutputSimpleError(msg string, args ...interface{}) {
	msg = fmt.Sprintf(msg, args...)
	fmt.Fprintln(os.Stderr, color.New(ColorError, color.Bold).Sprint("🚨 "+shared.Capitalize(msg)))
}

// OutputErrorAndExit prints a wrapped error chain ("a: b: c") as an indented
// list, skipping parts that repeat, then exits with status 1.
func OutputErrorAndExit(msg string, args ...interface{}) {
	StopSpinner()

	msg = fmt.Sprintf(msg, args...)

	errorParts := strings.Split(msg, ": ")
	if len(errorParts) == 1 {
		fmt.Fprintln(os.Stderr, color.New(ColorError, color.Bold).Sprint("🚨 "+shared.Capitalize(msg)))
		os.Exit(1)
	}

	displayMsg := ""
	addedErrors := map[string]bool{}
	i := 0
	for _, part := range errorParts {
		if addedErrors[strings.ToLower(part)] {
			continue
		}

		if i == 0 {
			displayMsg += color.New(ColorError, color.Bold).Sprint("🚨 " + shared.Capitalize(part))
		} else {
			displayMsg += "\n" + strings.Repeat("  ", i) + "→ " + shared.Capitalize(part)
		}

		addedErrors[strings.ToLower(part)] = true
		i++
	}

	fmt.Fprintln(os.Stderr, displayMsg)
	os.Exit(1)
}

func HandleApiError(apiError *shared.ApiError) {
	StopSpinner()

	switch apiError.Type {
	case shared.ApiErrorTypeInvalidToken:
		OutputSimpleError("%s", apiError.Msg)
		fmt.Fprintln(os.Stderr)
		PrintCmds("", "sign-in")
		os.Exit(1)
	case shared.ApiErrorTypeUnconfirmed:
		OutputSimpleError("%s", apiError.Msg)
		fmt.Fprintln(os.Stderr)
		PrintCmds("", "confirm")
		os.Exit(1)
	}

	if apiError.Status > 0 {
		OutputErrorAndExit("%s (status %d)", apiError.Msg, apiError.Status)
	}
	OutputErrorAndExit("%s", apiError.Msg)
}
