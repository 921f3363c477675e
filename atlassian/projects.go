package atlassian

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// ListProjects pages through the project search endpoint once.
func (c *Client) ListProjects(ctx context.Context, max int) (json.RawMessage, error) {
	if max == 0 {
		max = 50
	}
	var out json.RawMessage
	q := url.Values{"maxResults": {strconv.Itoa(max)}}
	if err := c.rest.GetJSON(ctx, "/rest/api/3/project/search", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, key string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, projectPath(key), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProjectComponents(ctx context.Context, key string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, projectPath(key)+"/components", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProjectVersions(ctx context.Context, key string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, projectPath(key)+"/versions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchUsers matches users by display name or email.
func (c *Client) SearchUsers(ctx context.Context, query string, max int) (json.RawMessage, error) {
	if max == 0 {
		max = 50
	}
	q := url.Values{"query": {query}, "maxResults": {strconv.Itoa(max)}}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/rest/api/3/user/search", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, accountID string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/rest/api/3/user", url.Values{"accountId": {accountID}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Myself returns the account the API token belongs to.
func (c *Client) Myself(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/rest/api/3/myself", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListFields(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/rest/api/3/field", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListIssueTypes lists issue types, scoped to a project when given.
func (c *Client) ListIssueTypes(ctx context.Context, project string) (json.RawMessage, error) {
	if project == "" {
		var out json.RawMessage
		if err := c.rest.GetJSON(ctx, "/rest/api/3/issuetype", nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var out struct {
		IssueTypes json.RawMessage `json:"issueTypes"`
	}
	if err := c.rest.GetJSON(ctx, projectPath(project), nil, &out); err != nil {
		return nil, err
	}
	return out.IssueTypes, nil
}

func (c *Client) ListPriorities(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/rest/api/3/priority", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListStatuses lists statuses, per-project (grouped by issue type) when a
// project is given.
func (c *Client) ListStatuses(ctx context.Context, project string) (json.RawMessage, error) {
	path := "/rest/api/3/status"
	if project != "" {
		path = projectPath(project) + "/statuses"
	}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListResolutions(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/rest/api/3/resolution", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func projectPath(key string) string {
	return "/rest/api/3/project/" + url.PathEscape(key)
}
