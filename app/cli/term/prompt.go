package term

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var stdinReader = bufio.NewReader(os.Stdin)

func GetRequiredUserStringInput(msg string) (string, error) {
	res, err := GetUserStringInput(msg)
	if err != nil {
		return "", fmt.Errorf("failed to get user input: %s", err)
	}

	if res == "" {
		color.New(color.Bold, ColorError).Println("🚨 This input is required")
		return GetRequiredUserStringInput(msg)
	}

	return res, nil
}

func GetUserStringInput(msg string) (string, error) {
	color.New(ColorPrompt, color.Bold).Print(msg + " ")

	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// GetUserPasswordInput reads without echo when stdin is a terminal and falls
// back to a plain line read when input is piped.
func GetUserPasswordInput(msg string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return GetUserStringInput(msg)
	}

	color.New(ColorPrompt, color.Bold).Print(msg + " ")
	res, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %s", err)
	}

	return string(res), nil
}
