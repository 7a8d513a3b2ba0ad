package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/steviee/modseek/internal/browse"
)

// NewBrowseCommand creates the browse command
func NewBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactive full-screen search and download session",
		Long: `Launch an interactive session that walks from a search prompt through
paginated results, project details, release listings and file downloads.

Screens and inputs:
  search    Type a query and press enter. The query language supports
            +fabric / -forge loader filters, +v1.21.1 game versions,
            +tmagic tags, +mod item types, +client / -server sides and
            /downloads sorting rules.
  results   A row number opens that project. < and > turn pages, p3
            jumps to page 3, q returns to the search prompt.
  project   A row number opens that release. Page commands page through
            the listing locally. Typing v1.21.1 fabric downloads the
            best matching release directly.
  release   Enter downloads the primary file, all downloads every file,
            anything else returns to the release listing.

Ctrl+C quits from any screen.`,
		Example: `  # Start a session
  modseek browse

  # Alternative using alias
  modseek tui`,
		Aliases: []string{"tui"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context())
		},
	}

	return cmd
}

// runBrowse executes the browse command
func runBrowse(ctx context.Context) error {
	// Create browse model backed by the configured API client and downloader
	model := browse.NewModel(ctx, newAPIClient(), newDownloader())

	// Start bubbletea program
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run browse session: %w", err)
	}

	return nil
}
