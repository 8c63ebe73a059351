package term

import (
	"fmt"
	"os"
	"strings"

	"github.com/cqroot/prompt"
	"github.com/fatih/color"
)

func GetRequiredUserStringInput(msg string) (string, error) {
	res, err := GetUserStringInput(msg)
	if err != nil {
		return "", fmt.Errorf("failed to get user input: %s", err)
	}

	if strings.TrimSpace(res) == "" {
		color.New(color.Bold, ColorHiRed).Println("🚨 This input is required")
		return GetRequiredUserStringInput(msg)
	}

	return strings.TrimSpace(res), nil
}

func GetUserStringInput(msg string) (string, error) {
	res, err := prompt.New().Ask(msg).Input("")

	if err != nil && err.Error() == "user quit prompt" {
		os.Exit(0)
	}

	return res, err
}
