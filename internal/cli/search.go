package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steviee/modseek/internal/modrinth"
	"github.com/steviee/modseek/internal/query"
)

var searchPage int

// searchOutput holds the output structure for JSON mode
type searchOutput struct {
	Status string     `json:"status"`
	Data   searchData `json:"data"`
}

type searchData struct {
	Query     string       `json:"query"`
	Page      int          `json:"page"`
	Pages     int          `json:"pages"`
	Total     int          `json:"total"`
	ElapsedMS int64        `json:"elapsed_ms"`
	Results   []searchItem `json:"results"`
}

type searchItem struct {
	ProjectID   string   `json:"project_id"`
	Slug        string   `json:"slug"`
	Type        string   `json:"project_type"`
	Name        string   `json:"name"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Downloads   int      `json:"downloads"`
	Follows     int      `json:"follows"`
	Loaders     []string `json:"loaders"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
}

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search Modrinth once and print the results",
		Long: `Search Modrinth with the same query language the interactive browser
uses: free text plus filters plus an optional sorting rule.

Filters:
  +fabric  -forge     require or exclude a loader
  +v1.21.1            require a game version
  +tworldgen  -ttech  require or exclude a topic tag
  +mod  +dp  -mp      require or exclude a project type
  +client  -server    keep items usable on that side

Sorting rules: /relevance (default), /downloads, /follows, /newest, /updated.`,
		Example: `  # Search for a mod
  modseek search sodium

  # Fabric mods for 1.21.1, most downloaded first
  modseek search sodium +fabric +v1.21.1 /downloads

  # Second results page
  modseek search sodium --page 2

  # Get JSON output for scripting
  modseek search sodium --json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}

	cmd.Flags().IntVarP(&searchPage, "page", "p", 1, "results page to fetch (1-based)")

	return cmd
}

// runSearch executes the search command
func runSearch(ctx context.Context, stdout io.Writer, raw string) error {
	if searchPage < 1 {
		return fmt.Errorf("page must be 1 or higher")
	}

	q, err := query.Compile(raw, searchPage-1)
	if err != nil {
		return err
	}

	client := newAPIClient()
	result, err := client.Search(ctx, q)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if IsJSONOutput() {
		return printSearchJSON(stdout, raw, result)
	}
	return printSearchTable(stdout, result)
}

// printSearchTable outputs results in table format
func printSearchTable(stdout io.Writer, result *modrinth.SearchResult) error {
	if len(result.Hits) == 0 {
		_, _ = fmt.Fprintln(stdout, "No results. Try a different query.")
		return nil
	}

	// Table header
	_, _ = fmt.Fprintf(stdout, "%-10s %-12s %-30s %-20s %10s  %s\n",
		"ID", "TYPE", "NAME", "AUTHOR", "DOWNLOADS", "DESCRIPTION")
	_, _ = fmt.Fprintf(stdout, "%s\n", strings.Repeat("-", 120))

	// Table rows
	for _, hit := range result.Hits {
		_, _ = fmt.Fprintf(stdout, "%-10s %-12s %-30s %-20s %10s  %s\n",
			truncateCell(hit.ProjectID, 10),
			truncateCell(hit.ProjectType, 12),
			truncateCell(hit.Title, 30),
			truncateCell(hit.Author, 20),
			formatDownloads(hit.Downloads),
			truncateCell(hit.Description, 40))
	}

	// Footer with paging info
	_, _ = fmt.Fprintf(stdout, "\nPage %d/%d - %d results - fetched in %dms\n",
		searchPage, result.PageCount(), result.TotalHits, result.Elapsed.Milliseconds())

	return nil
}

// printSearchJSON outputs results in JSON format
func printSearchJSON(stdout io.Writer, raw string, result *modrinth.SearchResult) error {
	items := make([]searchItem, len(result.Hits))
	for i, hit := range result.Hits {
		items[i] = searchItem{
			ProjectID:   hit.ProjectID,
			Slug:        hit.Slug,
			Type:        hit.ProjectType,
			Name:        hit.Title,
			Author:      hit.Author,
			Description: hit.Description,
			Downloads:   hit.Downloads,
			Follows:     hit.Follows,
			Loaders:     hit.Loaders(),
			Tags:        hit.Tags(),
			URL:         hit.URL(),
		}
	}

	output := searchOutput{
		Status: "success",
		Data: searchData{
			Query:     raw,
			Page:      searchPage,
			Pages:     result.PageCount(),
			Total:     result.TotalHits,
			ElapsedMS: result.Elapsed.Milliseconds(),
			Results:   items,
		},
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// truncateCell truncates a string to the specified maximum length
func truncateCell(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// formatDownloads formats download counts in human-readable format
func formatDownloads(n int) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
	if n >= 1000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}
