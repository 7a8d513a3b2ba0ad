package browse

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/steviee/modseek/internal/modrinth"
	"github.com/steviee/modseek/internal/query"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case searchDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.screen = errorScreen{parent: msg.origin, err: msg.err}
			return m, nil
		}
		m.screen = resultsScreen{rawQuery: msg.rawQuery, page: msg.page, result: msg.result}
		return m, nil

	case versionsDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.screen = errorScreen{parent: msg.parent, err: msg.err}
			return m, nil
		}
		m.screen = itemScreen{parent: msg.parent, project: msg.project, listing: msg.listing}
		return m, nil

	case depsDoneMsg:
		if msg.err != nil {
			m.loading = false
			m.screen = errorScreen{parent: msg.req.parent, err: msg.err}
			return m, nil
		}
		for id, title := range msg.titles {
			m.depTitles[id] = title
		}
		m.loadingLabel = "Downloading"
		m.tracker = newProgressTracker(len(msg.req.files))
		return m, tea.Batch(m.downloadCmd(msg.req), tickProgress())

	case downloadDoneMsg:
		m.loading = false
		m.tracker = nil
		if msg.err != nil {
			m.screen = errorScreen{parent: msg.req.origin, err: msg.err}
			return m, nil
		}
		m.screen = messageScreen{parent: msg.req.parent, text: m.downloadMessage(msg.req, msg.files)}
		return m, nil

	case progressTickMsg:
		if m.tracker != nil {
			return m, tickProgress()
		}
		return m, nil
	}

	return m, nil
}

// handleKey edits the input line and submits it on enter. While a command
// runs only ctrl+c gets through, so a slow request cannot be stacked.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input)
		m.input = ""
		return m.submit(input)
	case tea.KeyBackspace:
		if m.input != "" {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

// submit runs the typed line against the current screen.
func (m Model) submit(input string) (tea.Model, tea.Cmd) {
	switch s := m.screen.(type) {
	case searchScreen:
		if isQuit(input) {
			m.quitting = true
			return m, tea.Quit
		}
		m.loading = true
		m.loadingLabel = "Searching"
		return m, m.searchCmd(input, 0, s)

	case resultsScreen:
		return m.submitResults(s, input)

	case itemScreen:
		return m.submitItem(s, input)

	case releaseScreen:
		return m.submitRelease(s, input)

	case errorScreen:
		m.screen = s.parent
		return m, nil

	case messageScreen:
		m.screen = s.parent
		return m, nil
	}
	return m, nil
}

// submitResults handles input on a results page. Page turns rerun the
// stored query against the API; a numeric selection fetches the release
// listing of that hit.
func (m Model) submitResults(s resultsScreen, input string) (tea.Model, tea.Cmd) {
	if isQuit(input) {
		m.screen = searchScreen{}
		return m, nil
	}

	if page, ok := parsePageCommand(input, s.page, s.result.PageCount()); ok {
		m.loading = true
		m.loadingLabel = "Searching"
		return m, m.searchCmd(s.rawQuery, page, s)
	}

	index, err := parseIndex(input, len(s.result.Hits))
	if err != nil {
		m.screen = errorScreen{parent: s, err: err}
		return m, nil
	}

	m.loading = true
	m.loadingLabel = "Fetching releases"
	return m, m.versionsCmd(s.result.Hits[index], s)
}

// submitItem handles input on an item's release listing. Page turns move a
// local cursor over the already fetched listing. A quick request picks the
// best matching release across the whole listing and downloads its primary
// file right away; a numeric selection opens one release of the current
// page.
func (m Model) submitItem(s itemScreen, input string) (tea.Model, tea.Cmd) {
	if isQuit(input) {
		m.screen = s.parent
		return m, nil
	}

	if page, ok := parsePageCommand(input, s.page, s.pageCount()); ok {
		s.page = page
		m.screen = s
		return m, nil
	}

	if gameVersion, loader, ok := query.ParseQuickRequest(input); ok {
		version := modrinth.BestRelease(s.listing.Versions, gameVersion, loader)
		if version == nil {
			m.screen = messageScreen{parent: s, text: noMatchMessage(gameVersion, loader)}
			return m, nil
		}
		primary, err := modrinth.GetPrimaryFile(version)
		if err != nil {
			m.screen = errorScreen{parent: s, err: err}
			return m, nil
		}
		req := downloadRequest{parent: s, origin: s, version: *version, files: []modrinth.File{*primary}}
		m.loading = true
		m.loadingLabel = "Resolving dependencies"
		return m, m.resolveDepsCmd(req)
	}

	versions := s.pageVersions()
	index, err := parseIndex(input, len(versions))
	if err != nil {
		m.screen = errorScreen{parent: s, err: err}
		return m, nil
	}

	m.screen = releaseScreen{parent: s, version: versions[index]}
	return m, nil
}

// submitRelease handles input on a release. Enter downloads the primary
// file, "all" downloads every file, anything else returns to the listing.
func (m Model) submitRelease(s releaseScreen, input string) (tea.Model, tea.Cmd) {
	switch input {
	case "":
		primary, err := modrinth.GetPrimaryFile(&s.version)
		if err != nil {
			m.screen = errorScreen{parent: s.parent, err: err}
			return m, nil
		}
		return m.startDownload(downloadRequest{
			parent:  s.parent,
			origin:  s,
			version: s.version,
			files:   []modrinth.File{*primary},
		})
	case "all":
		return m.startDownload(downloadRequest{
			parent:  s.parent,
			origin:  s,
			version: s.version,
			files:   s.version.Files,
		})
	default:
		m.screen = s.parent
		return m, nil
	}
}

func (m Model) startDownload(req downloadRequest) (tea.Model, tea.Cmd) {
	m.loading = true
	m.loadingLabel = "Resolving dependencies"
	return m, m.resolveDepsCmd(req)
}

// downloadMessage summarizes a finished download, naming the required
// dependencies the user still has to install.
func (m Model) downloadMessage(req downloadRequest, files []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Downloaded %d file(s) of %s %s:\n", len(files), req.parent.project.Title, req.version.VersionNumber)
	for _, f := range files {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	if deps := req.version.RequiredDependencies(); len(deps) > 0 {
		b.WriteString("Requires: ")
		b.WriteString(strings.Join(m.dependencyNames(deps), ", "))
		b.WriteString("\n")
	}
	return b.String()
}

// dependencyNames renders dependencies by resolved title where one is
// cached, falling back to the file name or project ID the API sent.
func (m Model) dependencyNames(deps []modrinth.Dependency) []string {
	names := make([]string, 0, len(deps))
	for _, dep := range deps {
		switch {
		case dep.ProjectID != "" && m.depTitles[dep.ProjectID] != "":
			names = append(names, m.depTitles[dep.ProjectID])
		case dep.FileName != "":
			names = append(names, dep.FileName)
		case dep.ProjectID != "":
			names = append(names, dep.ProjectID)
		default:
			names = append(names, dep.VersionID)
		}
	}
	return names
}

func noMatchMessage(gameVersion, loader string) string {
	var wants []string
	if gameVersion != "" {
		wants = append(wants, "game version "+gameVersion)
	}
	if loader != "" {
		wants = append(wants, "loader "+loader)
	}
	return "No release matches " + strings.Join(wants, " and ") + "."
}

// isQuit reports whether input is one of the tokens that leave the current
// screen.
func isQuit(input string) bool {
	return input == "q" || input == "quit" || input == "exit"
}

// parsePageCommand recognizes the page navigation commands: "<" and ">"
// step backward and forward, "p<N>" jumps to the 1-based page N. The
// result always wraps, so paging past either end comes out on the other
// side.
func parsePageCommand(input string, current, pages int) (int, bool) {
	switch {
	case input == "<":
		return wrapPage(current-1, pages), true
	case input == ">":
		return wrapPage(current+1, pages), true
	case len(input) > 1 && input[0] == 'p':
		n, err := strconv.Atoi(input[1:])
		if err != nil {
			return 0, false
		}
		return wrapPage(n-1, pages), true
	}
	return 0, false
}

// wrapPage reduces page modulo pages with a non-negative result.
func wrapPage(page, pages int) int {
	if pages <= 0 {
		return 0
	}
	page %= pages
	if page < 0 {
		page += pages
	}
	return page
}

// parseIndex parses a 1-based selection into a 0-based index, rejecting
// anything outside the listed range.
func parseIndex(input string, n int) (int, error) {
	i, err := strconv.Atoi(input)
	if err != nil {
		return 0, &navError{msg: fmt.Sprintf("unrecognized input %q", input)}
	}
	if i < 1 || i > n {
		return 0, &navError{msg: fmt.Sprintf("selection %d is out of range 1-%d", i, n)}
	}
	return i - 1, nil
}
