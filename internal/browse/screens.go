package browse

import (
	"github.com/steviee/modseek/internal/modrinth"
	"github.com/steviee/modseek/internal/query"
)

// screen is one state of the interactive session. The set of screens is
// closed: every value carries the data its view needs plus the screen to
// return to, so going back never refetches anything. Screen values are
// immutable; navigation builds a new value instead of mutating the old one.
type screen interface {
	screenName() string
}

// searchScreen is the query prompt, the root of the session.
type searchScreen struct{}

func (searchScreen) screenName() string { return "search" }

// resultsScreen is one page of search hits. rawQuery is kept verbatim so
// page turns can recompile it with a different page index.
type resultsScreen struct {
	rawQuery string
	page     int
	result   *modrinth.SearchResult
}

func (resultsScreen) screenName() string { return "results" }

// itemScreen is one project with its full release listing, paged locally.
type itemScreen struct {
	parent  resultsScreen
	project modrinth.Project
	listing *modrinth.VersionList
	page    int
}

func (itemScreen) screenName() string { return "item" }

// pageCount returns how many listing pages the release list fills.
func (s itemScreen) pageCount() int {
	return modrinth.PageCount(len(s.listing.Versions), query.PageSize)
}

// pageVersions returns the releases on the current listing page.
func (s itemScreen) pageVersions() []modrinth.Version {
	start := s.page * query.PageSize
	if start >= len(s.listing.Versions) {
		return nil
	}
	end := min(start+query.PageSize, len(s.listing.Versions))
	return s.listing.Versions[start:end]
}

// releaseScreen is one selected release with its files and dependencies.
type releaseScreen struct {
	parent  itemScreen
	version modrinth.Version
}

func (releaseScreen) screenName() string { return "release" }

// errorScreen shows a failure and returns to parent on any input.
type errorScreen struct {
	parent screen
	err    error
}

func (errorScreen) screenName() string { return "error" }

// messageScreen shows a notice and returns to parent on any input.
type messageScreen struct {
	parent screen
	text   string
}

func (messageScreen) screenName() string { return "message" }
