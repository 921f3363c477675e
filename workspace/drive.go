package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

const docMimeType = "application/vnd.google-apps.document"

// FilesOptions filter a Drive file listing.
type FilesOptions struct {
	Query    string // raw Drive query term, ANDed with the others
	Folder   string // parent folder ID
	MimeType string
	Max      int
}

// ListFiles lists Drive files matching the options.
func (c *Client) ListFiles(ctx context.Context, opts FilesOptions) (json.RawMessage, error) {
	max := opts.Max
	if max == 0 {
		max = 50
	}
	q := url.Values{
		"pageSize": {strconv.Itoa(max)},
		"fields":   {"files(id,name,mimeType,createdTime,modifiedTime,webViewLink)"},
	}
	var terms []string
	if opts.Query != "" {
		terms = append(terms, opts.Query)
	}
	if opts.Folder != "" {
		terms = append(terms, fmt.Sprintf("'%s' in parents", opts.Folder))
	}
	if opts.MimeType != "" {
		terms = append(terms, fmt.Sprintf("mimeType='%s'", opts.MimeType))
	}
	if len(terms) > 0 {
		q.Set("q", strings.Join(terms, " and "))
	}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/drive/v3/files", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetFile returns the full metadata for a file.
func (c *Client) GetFile(ctx context.Context, fileID string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, filePath(fileID), url.Values{"fields": {"*"}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DownloadFile streams a file's raw content. The caller closes the reader.
func (c *Client) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error) {
	return c.rest.Download(ctx, filePath(fileID), url.Values{"alt": {"media"}})
}

// ReadFile streams a file's content as text. Google Docs are exported as
// text/plain; anything else is downloaded directly.
func (c *Client) ReadFile(ctx context.Context, fileID string) (io.ReadCloser, error) {
	var meta struct {
		MimeType string `json:"mimeType"`
		Name     string `json:"name"`
	}
	if err := c.rest.GetJSON(ctx, filePath(fileID), url.Values{"fields": {"mimeType,name"}}, &meta); err != nil {
		return nil, err
	}
	if meta.MimeType == docMimeType {
		return c.exportText(ctx, fileID)
	}
	return c.DownloadFile(ctx, fileID)
}

// SearchFiles matches files whose name or full text contains the query.
func (c *Client) SearchFiles(ctx context.Context, query string, max int) (json.RawMessage, error) {
	if max == 0 {
		max = 20
	}
	q := url.Values{
		"pageSize": {strconv.Itoa(max)},
		"fields":   {"files(id,name,mimeType,createdTime,modifiedTime)"},
		"q":        {fmt.Sprintf("fullText contains '%s' or name contains '%s'", query, query)},
	}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/drive/v3/files", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) exportText(ctx context.Context, fileID string) (io.ReadCloser, error) {
	return c.rest.Download(ctx, filePath(fileID)+"/export", url.Values{"mimeType": {"text/plain"}})
}

func filePath(fileID string) string {
	return "/drive/v3/files/" + url.PathEscape(fileID)
}
