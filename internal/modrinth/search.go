package modrinth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/steviee/modseek/internal/query"
)

// Search runs a compiled query against the search endpoint. The query
// parameter is always sent, an empty term is a valid browse-everything
// search. The sorting index is only sent when the query names one, leaving
// the server default in place otherwise.
func (c *Client) Search(ctx context.Context, q query.Query) (*SearchResult, error) {
	params := url.Values{}
	params.Set("query", q.Term)
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("offset", strconv.Itoa(q.Offset))

	if q.Sort != "" {
		params.Set("index", q.Sort)
	}

	if len(q.Facets) > 0 {
		facetsJSON, err := json.Marshal(q.Facets)
		if err != nil {
			return nil, fmt.Errorf("marshal facets: %w", err)
		}
		params.Set("facets", string(facetsJSON))
	}

	path := "/search?" + params.Encode()

	slog.Debug("searching Modrinth",
		"term", q.Term,
		"facets", len(q.Facets),
		"sort", q.Sort,
		"offset", q.Offset)

	start := time.Now()

	var result SearchResult
	if err := c.getJSON(ctx, "search", path, &result); err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(start)

	slog.Debug("search completed",
		"hits", len(result.Hits),
		"total", result.TotalHits,
		"elapsed", result.Elapsed)

	return &result, nil
}
