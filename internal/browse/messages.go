package browse

import "github.com/steviee/modseek/internal/modrinth"

// Messages delivered back into Update by commands. Every remote operation
// reports through exactly one of these, error included, so the update loop
// stays the single place deciding which screen comes next.

// searchDoneMsg carries the outcome of compiling and running a search.
// origin is where a failure returns the user to: the search prompt for a
// fresh query, the results screen for a page turn.
type searchDoneMsg struct {
	rawQuery string
	page     int
	origin   screen
	result   *modrinth.SearchResult
	err      error
}

// versionsDoneMsg carries the release listing fetched for a selected hit.
type versionsDoneMsg struct {
	project modrinth.Project
	parent  resultsScreen
	listing *modrinth.VersionList
	err     error
}

// depsDoneMsg reports resolved titles of required dependencies, keyed by
// project ID. A failure here returns to the release listing, not the
// release, so the user keeps their place.
type depsDoneMsg struct {
	req    downloadRequest
	titles map[string]string
	err    error
}

// downloadDoneMsg reports the files written, or the first failure.
type downloadDoneMsg struct {
	req   downloadRequest
	files []string
	err   error
}

// progressTickMsg redraws the progress bar while a download runs.
type progressTickMsg struct{}
