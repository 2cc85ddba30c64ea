package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

// PromptSelect displays numbered options and returns the selected index
// Returns -1 if cancelled (user enters "0" or empty)
func PromptSelect(message string, options []string) int {
	if len(options) == 0 {
		return -1
	}

	fmt.Println()
	fmt.Println(message)
	for i, opt := range options {
		fmt.Printf("  [%d] %s\n", i+1, opt)
	}
	fmt.Printf("  [0] Skip\n")
	fmt.Println()
	fmt.Print("? Select: ")

	input, err := stdin.ReadString('\n')
	if err != nil {
		return -1
	}

	return parseSelection(input, len(options))
}

// PromptInput asks for a line of text, returning def when the answer is empty
func PromptInput(message, def string) string {
	if def != "" {
		fmt.Printf("? %s [%s]: ", message, def)
	} else {
		fmt.Printf("? %s: ", message)
	}

	input, err := stdin.ReadString('\n')
	if err != nil {
		return def
	}
	if input = strings.TrimSpace(input); input == "" {
		return def
	}
	return input
}

// PromptConfirm asks a yes/no question. --yes answers yes, and a
// non-interactive session answers no.
func PromptConfirm(message string) bool {
	if IsYesMode() {
		return true
	}
	if !IsInteractive() {
		return false
	}

	fmt.Printf("? %s [y/N]: ", message)
	input, err := stdin.ReadString('\n')
	if err != nil {
		return false
	}
	return isYes(input)
}

// IsInteractive returns true if stdin is a terminal and --yes flag is not set
func IsInteractive() bool {
	if IsYesMode() {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// parseSelection returns the zero-based choice in input, or -1
func parseSelection(input string, n int) int {
	input = strings.TrimSpace(input)
	if input == "" || input == "0" {
		return -1
	}

	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > n {
		return -1
	}

	return choice - 1
}

func isYes(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
