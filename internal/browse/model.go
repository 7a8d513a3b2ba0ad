// Package browse is the interactive search session. It is a bubbletea
// program built around a closed set of screens: query prompt, results page,
// item detail with its release listing, release detail, and transient
// error and message screens that return to where they came from. All input
// is a single typed line submitted with enter.
package browse

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/steviee/modseek/internal/download"
	"github.com/steviee/modseek/internal/manifest"
	"github.com/steviee/modseek/internal/modrinth"
	"github.com/steviee/modseek/internal/query"
)

// progressInterval is how often the progress bar redraws during a download.
const progressInterval = 100 * time.Millisecond

// Gateway is the slice of the Modrinth client the browser needs.
type Gateway interface {
	Search(ctx context.Context, q query.Query) (*modrinth.SearchResult, error)
	GetVersions(ctx context.Context, projectID string) (*modrinth.VersionList, error)
	GetProject(ctx context.Context, idOrSlug string) (*modrinth.ProjectDetails, error)
}

// Fetcher writes release files below the download root and reports
// progress while doing so.
type Fetcher interface {
	Fetch(ctx context.Context, batch download.Batch, progress download.Progress) ([]string, error)
	Dir(sub string) string
}

// downloadRequest is everything a download needs to run and to route its
// outcome: parent is the item screen a success message returns to, origin
// is the screen a download failure is attached to.
type downloadRequest struct {
	parent  itemScreen
	origin  screen
	version modrinth.Version
	files   []modrinth.File
}

// Model is the bubbletea model of the whole session.
type Model struct {
	ctx     context.Context
	gateway Gateway
	fetcher Fetcher

	screen screen
	input  string

	loading      bool
	loadingLabel string
	tracker      *progressTracker

	// depTitles caches project titles resolved for dependency listings,
	// keyed by project ID. Kept for the whole session; titles do not
	// change between releases of the same dependency.
	depTitles map[string]string

	width    int
	height   int
	quitting bool
}

// NewModel creates a session starting at the query prompt.
func NewModel(ctx context.Context, gateway Gateway, fetcher Fetcher) Model {
	return Model{
		ctx:       ctx,
		gateway:   gateway,
		fetcher:   fetcher,
		screen:    searchScreen{},
		depTitles: make(map[string]string),
	}
}

// Init implements tea.Model. The session starts idle at the prompt.
func (m Model) Init() tea.Cmd {
	return nil
}

// searchCmd compiles raw for the given page and runs the search. Compile
// errors travel the same path as request errors; origin decides which
// screen the error returns to.
func (m Model) searchCmd(raw string, page int, origin screen) tea.Cmd {
	return func() tea.Msg {
		q, err := query.Compile(raw, page)
		if err != nil {
			return searchDoneMsg{rawQuery: raw, page: page, origin: origin, err: err}
		}
		result, err := m.gateway.Search(m.ctx, q)
		return searchDoneMsg{rawQuery: raw, page: page, origin: origin, result: result, err: err}
	}
}

// versionsCmd fetches the full release listing of a hit.
func (m Model) versionsCmd(project modrinth.Project, parent resultsScreen) tea.Cmd {
	return func() tea.Msg {
		listing, err := m.gateway.GetVersions(m.ctx, project.ProjectID)
		return versionsDoneMsg{project: project, parent: parent, listing: listing, err: err}
	}
}

// resolveDepsCmd looks up the titles of the release's required
// dependencies so the completion message can name them. Titles already
// cached are not fetched again; the cache is copied because the command
// runs off the update goroutine.
func (m Model) resolveDepsCmd(req downloadRequest) tea.Cmd {
	known := make(map[string]string, len(m.depTitles))
	for id, title := range m.depTitles {
		known[id] = title
	}
	return func() tea.Msg {
		titles := make(map[string]string)
		for _, dep := range req.version.RequiredDependencies() {
			if dep.ProjectID == "" {
				continue
			}
			if title, ok := known[dep.ProjectID]; ok {
				titles[dep.ProjectID] = title
				continue
			}
			details, err := m.gateway.GetProject(m.ctx, dep.ProjectID)
			if err != nil {
				return depsDoneMsg{req: req, err: err}
			}
			titles[dep.ProjectID] = details.Title
		}
		return depsDoneMsg{req: req, titles: titles}
	}
}

// downloadCmd fetches the requested files and records them in the
// directory manifest. A manifest write failure does not fail the download;
// the files are already on disk.
func (m Model) downloadCmd(req downloadRequest) tea.Cmd {
	tracker := m.tracker
	return func() tea.Msg {
		slug := req.parent.project.Slug
		batch := download.Batch{Dir: slug, Files: req.files}
		files, err := m.fetcher.Fetch(m.ctx, batch, tracker.update)
		if err != nil {
			return downloadDoneMsg{req: req, files: files, err: err}
		}
		entry := manifest.Entry{
			Slug:          slug,
			Title:         req.parent.project.Title,
			VersionID:     req.version.ID,
			VersionNumber: req.version.VersionNumber,
			GameVersions:  req.version.GameVersions,
			Loaders:       req.version.Loaders,
			Files:         files,
		}
		if err := manifest.Record(m.fetcher.Dir(slug), entry); err != nil {
			slog.Warn("failed to record download in manifest", "dir", slug, "error", err)
		}
		return downloadDoneMsg{req: req, files: files}
	}
}

// tickProgress schedules the next progress redraw.
func tickProgress() tea.Cmd {
	return tea.Tick(progressInterval, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
