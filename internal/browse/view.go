package browse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"

	"github.com/steviee/modseek/internal/query"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewTitle())
	b.WriteString("\n\n")

	switch s := m.screen.(type) {
	case searchScreen:
		b.WriteString(viewSearch())
	case resultsScreen:
		b.WriteString(viewResults(s))
	case itemScreen:
		b.WriteString(viewItem(s))
	case releaseScreen:
		b.WriteString(m.viewRelease(s))
	case errorScreen:
		b.WriteString(viewError(s))
	case messageScreen:
		b.WriteString(viewMessage(s))
	}

	b.WriteString("\n")
	if m.loading {
		b.WriteString(m.viewLoading())
		b.WriteString("\n")
	} else {
		b.WriteString(promptStyle.Render(promptLabel(m.screen)))
		b.WriteString(m.input)
		b.WriteString("▌\n")
		b.WriteString(footerStyle.Render(footerHints(m.screen)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewTitle() string {
	title := headerStyle.Render("modseek")
	switch s := m.screen.(type) {
	case resultsScreen:
		return title + " " + footerStyle.Render("results for "+strconv.Quote(truncate(s.rawQuery, 48)))
	case itemScreen:
		return title + " " + footerStyle.Render(truncate(s.project.Title, 60))
	case releaseScreen:
		return title + " " + footerStyle.Render(truncate(s.parent.project.Title+" "+s.version.VersionNumber, 60))
	}
	return title
}

func viewSearch() string {
	var b strings.Builder
	b.WriteString("Search Modrinth for mods, plugins, data packs, shaders and more.\n\n")
	b.WriteString("Free text matches names and descriptions. Add filters and a sorting rule:\n\n")
	b.WriteString("  +fabric  -forge      require or exclude a loader\n")
	b.WriteString("  +v1.21.1             require a game version\n")
	b.WriteString("  +tworldgen  -ttech   require or exclude a topic tag\n")
	b.WriteString("  +mod  +dp  -mp       require or exclude a project type\n")
	b.WriteString("  +client  -server     keep items usable on that side\n")
	b.WriteString("  /downloads           sort by relevance, downloads, follows, newest or updated\n")
	return b.String()
}

const resultsRowFormat = "%-4s %-8s %-12s %-30s %-20s %12s %8s  %s\n"

func viewResults(s resultsScreen) string {
	var b strings.Builder

	if len(s.result.Hits) == 0 {
		b.WriteString("No results. Try a different query.\n")
	} else {
		b.WriteString(tableHeaderStyle.Render(strings.TrimRight(fmt.Sprintf(resultsRowFormat,
			"#", "ID", "TYPE", "NAME", "AUTHOR", "DOWNLOADS", "FOLLOWS", "LOADERS"), "\n")))
		b.WriteString("\n")
		for i, hit := range s.result.Hits {
			b.WriteString(fmt.Sprintf(resultsRowFormat,
				strconv.Itoa(i+1),
				truncate(hit.ProjectID, 8),
				truncate(capitalize(hit.ProjectType), 12),
				truncate(hit.Title, 30),
				truncate(hit.Author, 20),
				"⤓"+groupDigits(int64(hit.Downloads)),
				"♥"+groupDigits(int64(hit.Follows)),
				truncate(joinCapitalized(hit.Loaders()), 40)))
		}
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("Page %d/%d @ %d items/page - %s results - Fetched in %sms",
		s.page+1, s.result.PageCount(), query.PageSize,
		groupDigits(int64(s.result.TotalHits)), groupDigits(s.result.Elapsed.Milliseconds()))))
	b.WriteString("\n")
	return b.String()
}

const releaseRowFormat = "%-4s %-20s %-8s %-30s %10s  %-20s %s\n"

func viewItem(s itemScreen) string {
	var b strings.Builder
	p := s.project

	b.WriteString(fmt.Sprintf("%s %s %s\n",
		tableHeaderStyle.Render(p.Title),
		accentStyle.Render("⤓"+groupDigits(int64(p.Downloads))),
		accentStyle.Render("♥"+groupDigits(int64(p.Follows)))))
	b.WriteString("by " + p.Author + "\n\n")
	b.WriteString(p.Description + "\n\n")

	b.WriteString(fmt.Sprintf("ID:          %s\n", p.ProjectID))
	b.WriteString(fmt.Sprintf("Slug:        %s\n", p.Slug))
	b.WriteString(fmt.Sprintf("URL:         %s\n", p.URL()))
	b.WriteString(fmt.Sprintf("Short URL:   %s\n", p.ShortURL()))
	b.WriteString(fmt.Sprintf("Created:     %s\n", p.DateCreated.Format(time.ANSIC)))
	b.WriteString(fmt.Sprintf("Updated:     %s\n", p.DateModified.Format(time.ANSIC)))
	b.WriteString(fmt.Sprintf("Type:        %s\n", capitalize(p.ProjectType)))
	b.WriteString(fmt.Sprintf("Client:      %-12s Server: %s\n", p.ClientSide, p.ServerSide))
	b.WriteString(fmt.Sprintf("License:     %s\n", p.License))
	b.WriteString(fmt.Sprintf("Loaders:     %s\n", joinCapitalized(p.Loaders())))
	b.WriteString(fmt.Sprintf("Tags:        %s\n", strings.Join(p.Tags(), " ")))
	b.WriteString(fmt.Sprintf("MC Versions: %s\n", gameVersionLine(p.Versions)))
	b.WriteString("\n")

	versions := s.pageVersions()
	if len(versions) == 0 {
		b.WriteString("No releases.\n")
	} else {
		b.WriteString(tableHeaderStyle.Render(strings.TrimRight(fmt.Sprintf(releaseRowFormat,
			"#", "VERSION", "TYPE", "NAME", "DOWNLOADS", "MC VERSIONS", "LOADERS"), "\n")))
		b.WriteString("\n")
		for i, v := range versions {
			b.WriteString(fmt.Sprintf(releaseRowFormat,
				strconv.Itoa(i+1),
				truncate(v.VersionNumber, 20),
				truncate(v.VersionType, 8),
				truncate(v.Name, 30),
				"⤓"+groupDigits(int64(v.Downloads)),
				truncate(strings.Join(v.GameVersions, " "), 20),
				truncate(joinCapitalized(v.Loaders), 30)))
		}
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("Page %d/%d @ %d items/page - %s releases - Fetched in %sms",
		s.page+1, s.pageCount(), query.PageSize,
		groupDigits(int64(len(s.listing.Versions))), groupDigits(s.listing.Elapsed.Milliseconds()))))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewRelease(s releaseScreen) string {
	var b strings.Builder
	v := s.version

	b.WriteString(tableHeaderStyle.Render(v.Name) + "\n\n")
	b.WriteString(fmt.Sprintf("Version:     %s\n", v.VersionNumber))
	b.WriteString(fmt.Sprintf("Type:        %s\n", v.VersionType))
	b.WriteString(fmt.Sprintf("Published:   %s\n", v.DatePublished.Format(time.ANSIC)))
	b.WriteString(fmt.Sprintf("Downloads:   %s\n", groupDigits(int64(v.Downloads))))
	b.WriteString(fmt.Sprintf("MC Versions: %s\n", strings.Join(v.GameVersions, " ")))
	b.WriteString(fmt.Sprintf("Loaders:     %s\n", joinCapitalized(v.Loaders)))
	b.WriteString("\n")

	b.WriteString("Files:\n")
	for i, f := range v.Files {
		marker := ""
		if f.Primary {
			marker = accentStyle.Render("  (primary)")
		}
		b.WriteString(fmt.Sprintf("  %d. %s  %s%s\n",
			i+1, f.LocalName(), units.HumanSize(float64(f.Size)), marker))
	}

	if deps := v.RequiredDependencies(); len(deps) > 0 {
		b.WriteString("\nRequires:\n")
		for _, name := range m.dependencyNames(deps) {
			b.WriteString("  " + name + "\n")
		}
	}
	return b.String()
}

func viewError(s errorScreen) string {
	sep := strings.Repeat("─", 64)
	var b strings.Builder
	b.WriteString(errorStyle.Render("ERROR:") + "\n")
	b.WriteString(sep + "\n")
	b.WriteString(s.err.Error() + "\n")
	b.WriteString(sep + "\n")
	return b.String()
}

func viewMessage(s messageScreen) string {
	return strings.TrimRight(s.text, "\n") + "\n"
}

func (m Model) viewLoading() string {
	if m.tracker != nil {
		return m.viewProgress()
	}
	return m.loadingLabel + "..."
}

func (m Model) viewProgress() string {
	snap := m.tracker.snapshot()
	if snap.name == "" {
		return "Starting download..."
	}

	head := fmt.Sprintf("Downloading %s (%d/%d)", snap.name, snap.index, snap.count)
	if snap.total <= 0 {
		return head + "\n" + units.HumanSize(float64(snap.received)) + " received"
	}

	percentage := float64(snap.received) / float64(snap.total) * 100
	return fmt.Sprintf("%s\n%s  %s / %s",
		head,
		renderProgressBarWithPercentage(percentage, 40),
		units.HumanSize(float64(snap.received)),
		units.HumanSize(float64(snap.total)))
}

func promptLabel(s screen) string {
	switch s.(type) {
	case searchScreen:
		return "search> "
	case resultsScreen:
		return "select> "
	case itemScreen:
		return "release> "
	case releaseScreen:
		return "download> "
	}
	return "> "
}

func footerHints(s screen) string {
	switch s.(type) {
	case searchScreen:
		return "[text +filters /sort] search  [q] quit"
	case resultsScreen:
		return "[#] open item  [<] [>] page  [p#] jump to page  [q] new search"
	case itemScreen:
		return "[#] open release  [v<mc> <loader>] quick download  [<] [>] page  [q] back"
	case releaseScreen:
		return "[enter] download file  [all] download all files  [q] back"
	}
	return "[enter] continue"
}

// renderProgressBar renders value (0-100) as a fixed-width bar.
func renderProgressBar(value float64, width int) string {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	filledWidth := int(math.Round(value / 100.0 * float64(width)))
	emptyWidth := width - filledWidth

	filled := strings.Repeat("█", filledWidth)
	empty := strings.Repeat("░", emptyWidth)

	return barStyle.Render(filled + empty)
}

// renderProgressBarWithPercentage renders a progress bar with percentage text.
func renderProgressBarWithPercentage(value float64, barWidth int) string {
	return fmt.Sprintf("%s % 3.0f%%", renderProgressBar(value, barWidth), value)
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 1 {
		return ""
	}
	return string(runes[:width-1]) + "…"
}

// capitalize uppercases the first letter, matching how the site renders
// project types and loader names.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func joinCapitalized(words []string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = capitalize(w)
	}
	return strings.Join(out, " ")
}

// groupDigits renders n with thousands separators.
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// gameVersionLine lists supported game versions newest first, capped so a
// long-lived project does not flood the card.
func gameVersionLine(versions []string) string {
	const maxShown = 40

	rev := make([]string, 0, len(versions))
	for i := len(versions) - 1; i >= 0; i-- {
		rev = append(rev, versions[i])
	}
	if len(rev) > maxShown {
		return strings.Join(rev[:maxShown], " ") + " …"
	}
	return strings.Join(rev, " ")
}
