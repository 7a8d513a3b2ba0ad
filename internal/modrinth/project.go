package modrinth

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// GetProject fetches project details by ID or slug.
func (c *Client) GetProject(ctx context.Context, idOrSlug string) (*ProjectDetails, error) {
	if idOrSlug == "" {
		return nil, fmt.Errorf("project ID or slug cannot be empty")
	}

	path := "/project/" + url.PathEscape(idOrSlug)

	slog.Debug("fetching project details",
		"id_or_slug", idOrSlug)

	var project ProjectDetails
	if err := c.getJSON(ctx, "get project", path, &project); err != nil {
		return nil, err
	}

	slog.Debug("project details retrieved",
		"id", project.ID,
		"title", project.Title)

	return &project, nil
}
