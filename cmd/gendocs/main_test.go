package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

func newDocsTree() *cobra.Command {
	root := &cobra.Command{Use: "localpages", Short: "Generate local SEO landing pages"}
	build := &cobra.Command{Use: "build", Short: "Render every page", Run: func(*cobra.Command, []string) {}}
	hidden := &cobra.Command{Use: "debug", Hidden: true, Run: func(*cobra.Command, []string) {}}
	root.AddCommand(build, hidden)
	return root
}

func TestCommandSummaries(t *testing.T) {
	got := commandSummaries(newDocsTree())

	if _, ok := got["localpages_debug"]; ok {
		t.Error("hidden commands should not be documented")
	}
	if diff := cmp.Diff(commandSummary{title: "localpages build", description: "Render every page", order: 1}, got["localpages_build"], cmp.AllowUnexported(commandSummary{})); diff != "" {
		t.Errorf("build summary mismatch (-want +got):\n%s", diff)
	}
}

func TestFrontmatter(t *testing.T) {
	prepend := frontmatter(commandSummaries(newDocsTree()))

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "known command",
			filename: "docs/commands/localpages_build.md",
			want:     "---\ntitle: \"localpages build\"\ndescription: \"Render every page\"\nsidebar:\n  order: 1\n---\n\n",
		},
		{
			name:     "unknown file",
			filename: "docs/commands/localpages_other.md",
			want:     "---\ntitle: \"localpages other\"\nsidebar:\n  order: 2\n---\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prepend(tt.filename); got != tt.want {
				t.Errorf("frontmatter(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestLinkHandler(t *testing.T) {
	if got, want := linkHandler("localpages_Build.md"), "/localpages/commands/localpages_build/"; got != want {
		t.Errorf("linkHandler() = %q, want %q", got, want)
	}
}
