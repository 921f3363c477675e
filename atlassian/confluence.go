package atlassian

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// ConfluenceSpaces lists spaces on the site's Confluence instance.
func (c *Client) ConfluenceSpaces(ctx context.Context, max int) (json.RawMessage, error) {
	if max == 0 {
		max = 25
	}
	q := url.Values{"limit": {strconv.Itoa(max)}}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/wiki/api/v2/spaces", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ConfluenceSpace(ctx context.Context, spaceID string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/wiki/api/v2/spaces/"+url.PathEscape(spaceID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfluenceSearch runs a CQL query against content.
func (c *Client) ConfluenceSearch(ctx context.Context, cql string, max int) (json.RawMessage, error) {
	if max == 0 {
		max = 25
	}
	q := url.Values{"cql": {cql}, "limit": {strconv.Itoa(max)}}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/wiki/rest/api/content/search", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfluencePage fetches a page. expand selects the representations to
// include; it defaults to the storage body and version.
func (c *Client) ConfluencePage(ctx context.Context, pageID, expand string) (json.RawMessage, error) {
	if expand == "" {
		expand = "body.storage,version"
	}
	q := url.Values{"expand": {expand}}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, contentPath(pageID), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfluenceCreatePage creates a page in a space. body is Confluence
// storage-format XHTML; parentID nests the page when given.
func (c *Client) ConfluenceCreatePage(ctx context.Context, spaceKey, title, body, parentID string) (json.RawMessage, error) {
	payload := map[string]any{
		"type":  "page",
		"title": title,
		"space": map[string]any{"key": spaceKey},
		"body": map[string]any{
			"storage": map[string]any{"value": body, "representation": "storage"},
		},
	}
	if parentID != "" {
		payload["ancestors"] = []any{map[string]any{"id": parentID}}
	}
	var out json.RawMessage
	if err := c.rest.PostJSON(ctx, "/wiki/rest/api/content", payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfluenceUpdatePage replaces a page's title and body. version must be
// the current version number plus one.
func (c *Client) ConfluenceUpdatePage(ctx context.Context, pageID, title, body string, version int) (json.RawMessage, error) {
	payload := map[string]any{
		"type":    "page",
		"title":   title,
		"version": map[string]any{"number": version},
		"body": map[string]any{
			"storage": map[string]any{"value": body, "representation": "storage"},
		},
	}
	var out json.RawMessage
	if err := c.rest.PutJSON(ctx, contentPath(pageID), payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func contentPath(pageID string) string {
	return "/wiki/rest/api/content/" + url.PathEscape(pageID)
}
