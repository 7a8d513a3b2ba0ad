package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/steviee/modseek/internal/download"
	"github.com/steviee/modseek/internal/manifest"
	"github.com/steviee/modseek/internal/modrinth"
	"github.com/steviee/modseek/internal/query"
)

var getAll bool

// getOutput holds the output structure for JSON mode
type getOutput struct {
	Status string  `json:"status"`
	Data   getData `json:"data"`
}

type getData struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	VersionID     string   `json:"version_id"`
	VersionNumber string   `json:"version_number"`
	VersionType   string   `json:"version_type"`
	GameVersions  []string `json:"game_versions"`
	Loaders       []string `json:"loaders"`
	Files         []string `json:"files"`
}

// NewGetCommand creates the get command
func NewGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <project> [v<game version>] [loader]",
		Short: "Download the best matching release of a project",
		Long: `Download a release of a project without browsing.

The project is addressed by its slug or ID. An optional game version
(prefixed with v) and an optional loader narrow the choice; among the
matching releases the most mature one wins, so a stable release beats a
beta and a beta beats an alpha. Without a selector the newest stable
release is taken.

Files land in a per-project directory below the configured download
directory, and every download is recorded in that directory's manifest.`,
		Example: `  # Newest stable release of sodium
  modseek get sodium

  # Best release for a game version and loader
  modseek get sodium v1.21.1 fabric

  # Every file of the chosen release
  modseek get sodium v1.21.1 fabric --all`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], args[1:])
		},
	}

	cmd.Flags().BoolVar(&getAll, "all", false, "download every file of the release, not just the primary one")

	return cmd
}

// runGet executes the get command
func runGet(ctx context.Context, stdout, stderr io.Writer, project string, selector []string) error {
	var gameVersion, loader string
	if len(selector) > 0 {
		var ok bool
		gameVersion, loader, ok = query.ParseQuickRequest(strings.Join(selector, " "))
		if !ok {
			return fmt.Errorf("invalid release selector %q: use v<game version> and/or a loader name", strings.Join(selector, " "))
		}
	}

	client := newAPIClient()

	details, err := client.GetProject(ctx, project)
	if err != nil {
		return fmt.Errorf("failed to look up project %q: %w", project, err)
	}

	listing, err := client.GetVersions(ctx, details.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch releases of %q: %w", details.Slug, err)
	}
	if len(listing.Versions) == 0 {
		return fmt.Errorf("%s has no releases", details.Slug)
	}

	version := modrinth.BestRelease(listing.Versions, gameVersion, loader)
	if version == nil {
		return fmt.Errorf("no release of %s matches %s", details.Slug, describeSelector(gameVersion, loader))
	}

	files := version.Files
	if !getAll {
		primary, err := modrinth.GetPrimaryFile(version)
		if err != nil {
			return err
		}
		files = []modrinth.File{*primary}
	}

	downloader := newDownloader()
	batch := download.Batch{Dir: details.Slug, Files: files}

	paths, err := downloader.Fetch(ctx, batch, consoleProgress(stderr))
	if err != nil {
		if len(paths) > 0 {
			slog.Warn("download aborted, finished files kept", "kept", len(paths))
		}
		return fmt.Errorf("download failed: %w", err)
	}

	entry := manifest.Entry{
		Slug:          details.Slug,
		Title:         details.Title,
		VersionID:     version.ID,
		VersionNumber: version.VersionNumber,
		GameVersions:  version.GameVersions,
		Loaders:       version.Loaders,
		Files:         paths,
	}
	if err := manifest.Record(downloader.Dir(details.Slug), entry); err != nil {
		slog.Warn("failed to record download in manifest", "dir", details.Slug, "error", err)
	}

	return printGetSuccess(stdout, details, version, paths)
}

// consoleProgress returns a progress callback rendering a live line on
// stderr, or nil when the output mode wants stderr clean. Each finished
// file leaves its final line in place.
func consoleProgress(stderr io.Writer) download.Progress {
	if IsQuiet() || IsJSONOutput() {
		return nil
	}

	return func(name string, received, total int64) {
		if total <= 0 {
			_, _ = fmt.Fprintf(stderr, "\r%s %s", name, units.HumanSize(float64(received)))
			return
		}

		percentage := float64(received) / float64(total) * 100
		_, _ = fmt.Fprintf(stderr, "\r%s %3.0f%% (%s / %s)",
			name, percentage,
			units.HumanSize(float64(received)), units.HumanSize(float64(total)))
		if received >= total {
			_, _ = fmt.Fprintln(stderr)
		}
	}
}

// printGetSuccess prints the downloaded files in the appropriate format
func printGetSuccess(stdout io.Writer, details *modrinth.ProjectDetails, version *modrinth.Version, paths []string) error {
	if IsJSONOutput() {
		output := getOutput{
			Status: "success",
			Data: getData{
				Slug:          details.Slug,
				Title:         details.Title,
				VersionID:     version.ID,
				VersionNumber: version.VersionNumber,
				VersionType:   version.VersionType,
				GameVersions:  version.GameVersions,
				Loaders:       version.Loaders,
				Files:         paths,
			},
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	_, _ = fmt.Fprintf(stdout, "Downloaded %s %s (%s):\n", details.Title, version.VersionNumber, version.VersionType)
	for _, p := range paths {
		_, _ = fmt.Fprintf(stdout, "  %s\n", p)
	}
	if deps := version.RequiredDependencies(); len(deps) > 0 {
		names := make([]string, 0, len(deps))
		for _, dep := range deps {
			switch {
			case dep.FileName != "":
				names = append(names, dep.FileName)
			case dep.ProjectID != "":
				names = append(names, dep.ProjectID)
			default:
				names = append(names, dep.VersionID)
			}
		}
		_, _ = fmt.Fprintf(stdout, "Requires: %s\n", strings.Join(names, ", "))
	}

	return nil
}

func describeSelector(gameVersion, loader string) string {
	switch {
	case gameVersion != "" && loader != "":
		return fmt.Sprintf("game version %s and loader %s", gameVersion, loader)
	case gameVersion != "":
		return "game version " + gameVersion
	case loader != "":
		return "loader " + loader
	}
	return "the selector"
}
