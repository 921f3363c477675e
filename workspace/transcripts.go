package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strconv"
)

// Meet stores transcripts in Drive as Google Docs named "... - Transcript".
const transcriptQuery = "mimeType='application/vnd.google-apps.document' and name contains 'Transcript'"

// ErrNoTranscripts is returned by LatestTranscript when nothing matches.
var ErrNoTranscripts = errors.New("no transcripts found")

// ListTranscripts lists transcript documents, newest first.
func (c *Client) ListTranscripts(ctx context.Context, fromDate string, max int) (json.RawMessage, error) {
	if max == 0 {
		max = 20
	}
	query := transcriptQuery
	if fromDate != "" {
		query += " and createdTime >= '" + fromDate + "T00:00:00'"
	}
	q := url.Values{
		"pageSize": {strconv.Itoa(max)},
		"fields":   {"files(id,name,createdTime,modifiedTime,webViewLink)"},
		"q":        {query},
		"orderBy":  {"createdTime desc"},
	}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/drive/v3/files", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTranscript streams a transcript document as plain text.
func (c *Client) GetTranscript(ctx context.Context, fileID string) (io.ReadCloser, error) {
	return c.exportText(ctx, fileID)
}

// TranscriptInfo identifies the document LatestTranscript resolved.
type TranscriptInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime"`
}

// LatestTranscript finds the newest transcript, optionally filtered by
// meeting name, and streams its text. The caller closes the reader.
func (c *Client) LatestTranscript(ctx context.Context, meeting string) (*TranscriptInfo, io.ReadCloser, error) {
	query := transcriptQuery
	if meeting != "" {
		query += " and name contains '" + meeting + "'"
	}
	q := url.Values{
		"pageSize": {"1"},
		"fields":   {"files(id,name,createdTime)"},
		"q":        {query},
		"orderBy":  {"createdTime desc"},
	}
	var out struct {
		Files []TranscriptInfo `json:"files"`
	}
	if err := c.rest.GetJSON(ctx, "/drive/v3/files", q, &out); err != nil {
		return nil, nil, err
	}
	if len(out.Files) == 0 {
		return nil, nil, ErrNoTranscripts
	}
	content, err := c.exportText(ctx, out.Files[0].ID)
	if err != nil {
		return nil, nil, err
	}
	return &out.Files[0], content, nil
}
