package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/yoanbernabeu/localpages/internal/cmd"
)

const defaultOutputDir = "./docs/src/content/docs/commands"

func main() {
	outputDir := defaultOutputDir
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	rootCmd := cmd.GetRootCmd()
	rootCmd.DisableAutoGenTag = true
	summaries := commandSummaries(rootCmd)

	err := doc.GenMarkdownTreeCustom(rootCmd, outputDir, frontmatter(summaries), linkHandler)
	if err != nil {
		log.Fatalf("Failed to generate documentation: %v", err)
	}

	log.Printf("Documentation for %d commands generated in %s", len(summaries), outputDir)
}

// commandSummary is the frontmatter data for one generated page.
type commandSummary struct {
	title       string
	description string
	order       int
}

// commandSummaries indexes every documented command by the base name cobra
// gives its markdown file. Order follows a depth-first walk so subcommands sit
// under their parent in the sidebar.
func commandSummaries(root *cobra.Command) map[string]commandSummary {
	out := make(map[string]commandSummary)
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		if !c.IsAvailableCommand() && c != root {
			return
		}
		base := strings.ReplaceAll(c.CommandPath(), " ", "_")
		out[base] = commandSummary{
			title:       c.CommandPath(),
			description: c.Short,
			order:       len(out),
		}
		for _, child := range c.Commands() {
			walk(child)
		}
	}
	walk(root)
	return out
}

// frontmatter returns the Starlight frontmatter prepender for the docs site.
func frontmatter(summaries map[string]commandSummary) func(string) string {
	return func(filename string) string {
		base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		s, ok := summaries[base]
		if !ok {
			s = commandSummary{title: strings.ReplaceAll(base, "_", " "), order: len(summaries)}
		}

		var b strings.Builder
		b.WriteString("---\n")
		fmt.Fprintf(&b, "title: %s\n", strconv.Quote(s.title))
		if s.description != "" {
			fmt.Fprintf(&b, "description: %s\n", strconv.Quote(s.description))
		}
		fmt.Fprintf(&b, "sidebar:\n  order: %d\n", s.order)
		b.WriteString("---\n\n")
		return b.String()
	}
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/localpages/commands/" + strings.ToLower(base) + "/"
}
