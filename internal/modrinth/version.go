package modrinth

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// VersionList is the full release listing of a project with the time the
// listing took to fetch.
type VersionList struct {
	Versions []Version
	Elapsed  time.Duration
}

// GetVersions fetches every release of a project, newest first. The API
// does not page this endpoint, so the caller pages the result locally.
func (c *Client) GetVersions(ctx context.Context, projectID string) (*VersionList, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project ID cannot be empty")
	}

	path := "/project/" + url.PathEscape(projectID) + "/version"

	slog.Debug("fetching project versions",
		"project_id", projectID)

	start := time.Now()

	var versions []Version
	if err := c.getJSON(ctx, "get versions", path, &versions); err != nil {
		return nil, err
	}

	list := &VersionList{
		Versions: versions,
		Elapsed:  time.Since(start),
	}

	slog.Debug("versions retrieved",
		"project_id", projectID,
		"count", len(versions),
		"elapsed", list.Elapsed)

	return list, nil
}

// GetPrimaryFile returns the file to download for a release: the one marked
// primary, or the first one when nothing is marked.
func GetPrimaryFile(version *Version) (*File, error) {
	if version == nil {
		return nil, fmt.Errorf("version cannot be nil")
	}

	if len(version.Files) == 0 {
		return nil, fmt.Errorf("release %s has no files", version.VersionNumber)
	}

	for i := range version.Files {
		if version.Files[i].Primary {
			return &version.Files[i], nil
		}
	}

	return &version.Files[0], nil
}
