package modrinth

import (
	"path"
	"slices"
	"time"

	"github.com/steviee/modseek/internal/query"
)

// SearchResult is the response from the search endpoint.
type SearchResult struct {
	Hits      []Project `json:"hits"`
	Offset    int       `json:"offset"`
	Limit     int       `json:"limit"`
	TotalHits int       `json:"total_hits"`

	// Elapsed is how long the round trip took. Not part of the API
	// response; filled in by Search.
	Elapsed time.Duration `json:"-"`
}

// PageCount returns how many result pages the search matched. A search
// with no hits still has one, empty, page.
func (r *SearchResult) PageCount() int {
	return PageCount(r.TotalHits, r.Limit)
}

// PageCount returns the number of pages needed for total items at perPage
// items each, never less than one.
func PageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// Project is one search hit.
type Project struct {
	ProjectID         string    `json:"project_id"`
	ProjectType       string    `json:"project_type"`
	Slug              string    `json:"slug"`
	Author            string    `json:"author"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Categories        []string  `json:"categories"`
	DisplayCategories []string  `json:"display_categories"`
	Versions          []string  `json:"versions"`
	LatestVersion     string    `json:"latest_version"`
	Downloads         int       `json:"downloads"`
	Follows           int       `json:"follows"`
	License           string    `json:"license"`
	ClientSide        string    `json:"client_side"`
	ServerSide        string    `json:"server_side"`
	DateCreated       time.Time `json:"date_created"`
	DateModified      time.Time `json:"date_modified"`
}

// Loaders returns the categories that name a loader, in listing order. The
// search API files loaders and topic tags in the same category list.
func (p *Project) Loaders() []string {
	var loaders []string
	for _, c := range p.Categories {
		if slices.Contains(query.Loaders, c) {
			loaders = append(loaders, c)
		}
	}
	return loaders
}

// Tags returns the categories that are topic tags rather than loaders.
func (p *Project) Tags() []string {
	var tags []string
	for _, c := range p.Categories {
		if !slices.Contains(query.Loaders, c) {
			tags = append(tags, c)
		}
	}
	return tags
}

// URL returns the canonical project page.
func (p *Project) URL() string {
	return "https://modrinth.com/" + p.ProjectType + "/" + p.Slug
}

// ShortURL returns the project page addressed by ID instead of slug.
func (p *Project) ShortURL() string {
	return "https://modrinth.com/" + p.ProjectType + "/" + p.ProjectID
}

// ProjectDetails is the response of the project endpoint. It carries the
// fields search hits lack, most importantly the canonical title for a bare
// project ID.
type ProjectDetails struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ProjectType string   `json:"project_type"`
	Categories  []string `json:"categories"`
	Loaders     []string `json:"loaders"`
	Versions    []string `json:"versions"`
	Downloads   int      `json:"downloads"`
	Followers   int      `json:"followers"`
}

// Version is one release of a project.
type Version struct {
	ID            string       `json:"id"`
	ProjectID     string       `json:"project_id"`
	Name          string       `json:"name"`
	VersionNumber string       `json:"version_number"`
	VersionType   string       `json:"version_type"` // release, beta, alpha
	GameVersions  []string     `json:"game_versions"`
	Loaders       []string     `json:"loaders"`
	Dependencies  []Dependency `json:"dependencies"`
	Files         []File       `json:"files"`
	Downloads     int          `json:"downloads"`
	DatePublished time.Time    `json:"date_published"`
}

// RequiredDependencies returns the dependencies a release cannot run
// without, in listing order.
func (v *Version) RequiredDependencies() []Dependency {
	var required []Dependency
	for _, dep := range v.Dependencies {
		if dep.DependencyType == "required" {
			required = append(required, dep)
		}
	}
	return required
}

// Dependency is a reference from one release to a project or release it
// relates to.
type Dependency struct {
	VersionID      string `json:"version_id,omitempty"`
	ProjectID      string `json:"project_id,omitempty"`
	FileName       string `json:"file_name,omitempty"`
	DependencyType string `json:"dependency_type"` // required, optional, incompatible, embedded
}

// File is a downloadable artifact of a release.
type File struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Primary  bool   `json:"primary"`
	Size     int64  `json:"size"`
	FileType string `json:"file_type"`
}

// LocalName returns the name the file is stored under on disk. Some
// filenames arrive with path separators in them; only the base name is
// kept.
func (f *File) LocalName() string {
	return path.Base(f.Filename)
}
