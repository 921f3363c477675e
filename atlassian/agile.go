package atlassian

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// BoardsOptions filter a board listing.
type BoardsOptions struct {
	Project string // project key or ID
	Type    string // "scrum" or "kanban"
	Max     int
}

func (c *Client) ListBoards(ctx context.Context, opts BoardsOptions) (json.RawMessage, error) {
	max := opts.Max
	if max == 0 {
		max = 50
	}
	q := url.Values{"maxResults": {strconv.Itoa(max)}}
	if opts.Project != "" {
		q.Set("projectKeyOrId", opts.Project)
	}
	if opts.Type != "" {
		q.Set("type", opts.Type)
	}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/rest/agile/1.0/board", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBoard(ctx context.Context, boardID string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/rest/agile/1.0/board/"+url.PathEscape(boardID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BoardSprints lists a board's sprints, optionally filtered by state
// ("active", "closed" or "future").
func (c *Client) BoardSprints(ctx context.Context, boardID, state string, max int) (json.RawMessage, error) {
	if max == 0 {
		max = 50
	}
	q := url.Values{"maxResults": {strconv.Itoa(max)}}
	if state != "" {
		q.Set("state", state)
	}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/rest/agile/1.0/board/"+url.PathEscape(boardID)+"/sprint", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSprint(ctx context.Context, sprintID string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, sprintPath(sprintID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SprintIssues(ctx context.Context, sprintID string, max int) (json.RawMessage, error) {
	if max == 0 {
		max = 50
	}
	q := url.Values{"maxResults": {strconv.Itoa(max)}}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, sprintPath(sprintID)+"/issue", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SprintFields carries the writable sprint fields; optional values are
// omitted when empty.
type SprintFields struct {
	Name  string
	Start string
	End   string
	Goal  string
	State string // update only: "active" or "closed"
}

func (c *Client) CreateSprint(ctx context.Context, boardID int, fields SprintFields) (json.RawMessage, error) {
	body := map[string]any{
		"originBoardId": boardID,
		"name":          fields.Name,
	}
	if fields.Start != "" {
		body["startDate"] = fields.Start
	}
	if fields.End != "" {
		body["endDate"] = fields.End
	}
	if fields.Goal != "" {
		body["goal"] = fields.Goal
	}
	var out json.RawMessage
	if err := c.rest.PostJSON(ctx, "/rest/agile/1.0/sprint", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSprint partially updates a sprint. An empty field set is a no-op.
func (c *Client) UpdateSprint(ctx context.Context, sprintID string, fields SprintFields) (json.RawMessage, error) {
	body := map[string]any{}
	if fields.Name != "" {
		body["name"] = fields.Name
	}
	if fields.State != "" {
		body["state"] = fields.State
	}
	if fields.Goal != "" {
		body["goal"] = fields.Goal
	}
	if len(body) == 0 {
		return nil, nil
	}
	var out json.RawMessage
	if err := c.rest.PostJSON(ctx, sprintPath(sprintID), body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MoveIssuesToSprint(ctx context.Context, sprintID string, issues []string) error {
	return c.rest.PostJSON(ctx, sprintPath(sprintID)+"/issue", map[string]any{"issues": issues}, nil)
}

func (c *Client) GetEpic(ctx context.Context, epicKey string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, epicPath(epicKey), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) EpicIssues(ctx context.Context, epicKey string, max int) (json.RawMessage, error) {
	if max == 0 {
		max = 50
	}
	q := url.Values{"maxResults": {strconv.Itoa(max)}}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, epicPath(epicKey)+"/issue", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MoveIssuesToEpic(ctx context.Context, epicKey string, issues []string) error {
	return c.rest.PostJSON(ctx, epicPath(epicKey)+"/issue", map[string]any{"issues": issues}, nil)
}

func sprintPath(sprintID string) string {
	return "/rest/agile/1.0/sprint/" + url.PathEscape(sprintID)
}

func epicPath(epicKey string) string {
	return "/rest/agile/1.0/epic/" + url.PathEscape(epicKey)
}
