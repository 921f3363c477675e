package atlassian

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// adf wraps plain text in the single-paragraph Atlassian Document Format
// body Jira Cloud requires for rich-text fields.
func adf(text string) map[string]any {
	return map[string]any{
		"type":    "doc",
		"version": 1,
		"content": []any{
			map[string]any{
				"type": "paragraph",
				"content": []any{
					map[string]any{"type": "text", "text": text},
				},
			},
		},
	}
}

// IssueFields carries the writable fields for create and update. Zero
// values are left out of the payload.
type IssueFields struct {
	Project     string
	Summary     string
	Type        string
	Description string
	Assignee    string // account ID; "none" unassigns on update
	Priority    string
	Labels      []string
	Components  []string
	Parent      string // parent issue key, for subtasks
	Custom      map[string]any
}

func (f IssueFields) payload() map[string]any {
	fields := map[string]any{}
	if f.Project != "" {
		fields["project"] = map[string]any{"key": f.Project}
	}
	if f.Summary != "" {
		fields["summary"] = f.Summary
	}
	if f.Type != "" {
		fields["issuetype"] = map[string]any{"name": f.Type}
	}
	if f.Description != "" {
		fields["description"] = adf(f.Description)
	}
	if f.Assignee != "" {
		if f.Assignee == "none" {
			fields["assignee"] = nil
		} else {
			fields["assignee"] = map[string]any{"accountId": f.Assignee}
		}
	}
	if f.Priority != "" {
		fields["priority"] = map[string]any{"name": f.Priority}
	}
	if len(f.Labels) > 0 {
		fields["labels"] = f.Labels
	}
	if len(f.Components) > 0 {
		components := make([]any, 0, len(f.Components))
		for _, name := range f.Components {
			components = append(components, map[string]any{"name": name})
		}
		fields["components"] = components
	}
	if f.Parent != "" {
		fields["parent"] = map[string]any{"key": f.Parent}
	}
	// Custom fields merge last so they can override the named ones.
	for k, v := range f.Custom {
		fields[k] = v
	}
	return fields
}

// GetIssue fetches an issue. expand adds rendered fields, transitions, and
// the changelog.
func (c *Client) GetIssue(ctx context.Context, key string, expand bool) (json.RawMessage, error) {
	q := url.Values{}
	if expand {
		q.Set("expand", "renderedFields,transitions,changelog")
	}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, issuePath(key), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateIssue(ctx context.Context, fields IssueFields) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.PostJSON(ctx, "/rest/api/3/issue", map[string]any{"fields": fields.payload()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateIssue edits an issue in place. An empty field set is a no-op.
func (c *Client) UpdateIssue(ctx context.Context, key string, fields IssueFields) error {
	payload := fields.payload()
	if len(payload) == 0 {
		return nil
	}
	return c.rest.PutJSON(ctx, issuePath(key), map[string]any{"fields": payload}, nil)
}

func (c *Client) DeleteIssue(ctx context.Context, key string) error {
	return c.rest.Delete(ctx, issuePath(key))
}

// SearchJQL runs a JQL search. fields limits the returned issue fields.
func (c *Client) SearchJQL(ctx context.Context, jql string, max int, fields []string) (json.RawMessage, error) {
	if max == 0 {
		max = 50
	}
	body := map[string]any{"jql": jql, "maxResults": max}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	var out json.RawMessage
	if err := c.rest.PostJSON(ctx, "/rest/api/3/search/jql", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Transition is one workflow step currently available on an issue.
type Transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetTransitions lists the transitions currently available on an issue.
func (c *Client) GetTransitions(ctx context.Context, key string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, issuePath(key)+"/transitions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TransitionIssue moves an issue through the transition named or identified
// by "to" (name matching is case-insensitive). An unknown transition
// returns an error listing the ones available.
func (c *Client) TransitionIssue(ctx context.Context, key, to, comment, resolution string) error {
	var available struct {
		Transitions []Transition `json:"transitions"`
	}
	if err := c.rest.GetJSON(ctx, issuePath(key)+"/transitions", nil, &available); err != nil {
		return err
	}

	var transitionID string
	for _, t := range available.Transitions {
		if t.ID == to || strings.EqualFold(t.Name, to) {
			transitionID = t.ID
			break
		}
	}
	if transitionID == "" {
		names := make([]string, 0, len(available.Transitions))
		for _, t := range available.Transitions {
			names = append(names, fmt.Sprintf("%s: %s", t.ID, t.Name))
		}
		return fmt.Errorf("transition %q not found, available: %s", to, strings.Join(names, ", "))
	}

	body := map[string]any{"transition": map[string]any{"id": transitionID}}
	if comment != "" {
		body["update"] = map[string]any{
			"comment": []any{map[string]any{"add": map[string]any{"body": adf(comment)}}},
		}
	}
	if resolution != "" {
		body["fields"] = map[string]any{"resolution": map[string]any{"name": resolution}}
	}
	return c.rest.PostJSON(ctx, issuePath(key)+"/transitions", body, nil)
}

// GetComments returns all comments on an issue.
func (c *Client) GetComments(ctx context.Context, key string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, issuePath(key)+"/comment", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddComment posts a plain-text comment.
func (c *Client) AddComment(ctx context.Context, key, text string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.PostJSON(ctx, issuePath(key)+"/comment", map[string]any{"body": adf(text)}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAttachments returns the attachment metadata for an issue.
func (c *Client) GetAttachments(ctx context.Context, key string) (json.RawMessage, error) {
	var out struct {
		Fields struct {
			Attachment json.RawMessage `json:"attachment"`
		} `json:"fields"`
	}
	if err := c.rest.GetJSON(ctx, issuePath(key), url.Values{"fields": {"attachment"}}, &out); err != nil {
		return nil, err
	}
	return out.Fields.Attachment, nil
}

// AddAttachment uploads a file to an issue. X-Atlassian-Token: no-check
// disables the XSRF guard Jira applies to multipart posts.
func (c *Client) AddAttachment(ctx context.Context, key, filename string, content io.Reader) (json.RawMessage, error) {
	extra := http.Header{"X-Atlassian-Token": {"no-check"}}
	var out json.RawMessage
	if err := c.rest.UploadFile(ctx, issuePath(key)+"/attachments", "file", filename, content, extra, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DownloadAttachment resolves the attachment's content URL and streams it.
// The caller closes the reader.
func (c *Client) DownloadAttachment(ctx context.Context, attachmentID string) (io.ReadCloser, error) {
	var meta struct {
		Content string `json:"content"`
	}
	if err := c.rest.GetJSON(ctx, "/rest/api/3/attachment/"+url.PathEscape(attachmentID), nil, &meta); err != nil {
		return nil, err
	}
	return c.rest.Download(ctx, meta.Content, nil)
}

// GetWorklogs returns the worklog entries for an issue.
func (c *Client) GetWorklogs(ctx context.Context, key string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, issuePath(key)+"/worklog", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddWorklog logs time against an issue. timeSpent uses Jira duration
// syntax ("1h 30m"); started is an optional Jira datetime.
func (c *Client) AddWorklog(ctx context.Context, key, timeSpent, comment, started string) (json.RawMessage, error) {
	body := map[string]any{"timeSpent": timeSpent}
	if comment != "" {
		body["comment"] = adf(comment)
	}
	if started != "" {
		body["started"] = started
	}
	var out json.RawMessage
	if err := c.rest.PostJSON(ctx, issuePath(key)+"/worklog", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func issuePath(key string) string {
	return "/rest/api/3/issue/" + url.PathEscape(key)
}
